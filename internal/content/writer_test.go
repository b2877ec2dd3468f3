package content

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"deskfolio/internal/model"
	"deskfolio/internal/web"
)

func newAPI(t *testing.T, token string) *HTTPSource {
	t.Helper()
	srv, err := web.NewServer(web.ServerConfig{Dir: t.TempDir(), AdminToken: token})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(srv.Close)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	src := NewHTTPSource(ts.URL)
	src.Client = ts.Client()
	src.AdminToken = token
	t.Cleanup(src.Client.CloseIdleConnections)
	return src
}

func TestHTTPSource_WritesThroughAPI(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	api := newAPI(t, "tok")

	if _, err := api.AddProject(ctx, model.Project{Name: "Remote"}); err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	photo, err := api.AddPhoto(ctx, "Dunes", "https://img/dunes.png", []string{"places"})
	if err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}
	if photo, err = api.ToggleFavorite(ctx, photo.ID); err != nil || !photo.IsFavorite {
		t.Fatalf("ToggleFavorite: %+v %v", photo, err)
	}
	if photo, err = api.AddTag(ctx, photo.ID, "road trip"); err != nil {
		t.Fatalf("AddTag: %v", err)
	}
	if photo, err = api.RemoveTag(ctx, photo.ID, "places"); err != nil {
		t.Fatalf("RemoveTag: %v", err)
	}
	if diff := cmp.Diff([]string{"road trip"}, photo.Tags); diff != "" {
		t.Fatalf("tags (-want +got):\n%s", diff)
	}
	ts, err := api.AddTechItem(ctx, "Backend", "Go")
	if err != nil || !cmp.Equal(ts.Items, []string{"Go"}) {
		t.Fatalf("AddTechItem: %+v %v", ts, err)
	}

	projects, err := api.Projects(ctx)
	if err != nil || len(projects) != 1 || projects[0].Name != "Remote" {
		t.Fatalf("Projects: %+v %v", projects, err)
	}
	if err := api.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
}

func TestHTTPSource_WriteWithoutTokenIsRejected(t *testing.T) {
	t.Parallel()

	api := newAPI(t, "tok")
	api.AdminToken = ""
	_, err := api.AddSocial(context.Background(), model.SocialProfile{Text: "Github", Link: "https://github.com"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 401 || apiErr.Method != "POST" {
		t.Fatalf("expected 401 APIError, got %v", err)
	}
}

func TestStoreSource_IsABackend(t *testing.T) {
	t.Parallel()

	var b Backend = NewStoreSource(t.TempDir())
	ctx := context.Background()
	if _, err := b.AddBlogPost(ctx, model.BlogPost{Title: "Local", Link: "https://blog/local"}); err != nil {
		t.Fatalf("AddBlogPost: %v", err)
	}
	posts, err := b.BlogPosts(ctx)
	if err != nil || len(posts) != 1 {
		t.Fatalf("BlogPosts: %+v %v", posts, err)
	}
}
