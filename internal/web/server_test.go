package web

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"deskfolio/internal/model"
	"deskfolio/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newTestServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()
	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func do(t *testing.T, h http.Handler, method, path, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

func TestServer_ListsInAPIOrder(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, ServerConfig{})
	h := s.Handler()
	for _, title := range []string{"first", "second"} {
		rr := do(t, h, "POST", "/api/blog-posts", `{"title":"`+title+`","link":"https://example.com/`+title+`"}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create post: %d %s", rr.Code, rr.Body.String())
		}
	}

	rr := do(t, h, "GET", "/api/blog-posts", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("GET blog-posts: %d", rr.Code)
	}
	posts := decode[[]model.BlogPost](t, rr)
	if len(posts) != 2 || posts[0].Title != "second" || posts[0].ID != 2 {
		t.Fatalf("blog posts should be newest first: %+v", posts)
	}

	for _, path := range []string{"/api/tech-stack", "/api/gallery", "/api/projects", "/api/socials"} {
		rr := do(t, h, "GET", path, "")
		if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
			t.Fatalf("GET %s: %d %q", path, rr.Code, rr.Body.String())
		}
	}
}

func TestServer_GalleryMutations(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, ServerConfig{})
	h := s.Handler()

	rr := do(t, h, "POST", "/api/gallery", `{"title":"Lake","url":"https://example.com/lake.png","tags":["places"]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create photo: %d %s", rr.Code, rr.Body.String())
	}
	photo := decode[model.GalleryPhoto](t, rr)

	rr = do(t, h, "POST", "/api/gallery/1/favorite", "")
	if got := decode[model.GalleryPhoto](t, rr); !got.IsFavorite {
		t.Fatalf("favorite: %+v", got)
	}
	rr = do(t, h, "POST", "/api/gallery/1/tags", `{"tag":"memories"}`)
	if got := decode[model.GalleryPhoto](t, rr); !cmp.Equal(got.Tags, []string{"places", "memories"}) {
		t.Fatalf("tag add: %+v", got)
	}
	rr = do(t, h, "DELETE", "/api/gallery/1/tags/places", "")
	if got := decode[model.GalleryPhoto](t, rr); !cmp.Equal(got.Tags, []string{"memories"}) {
		t.Fatalf("tag remove: %+v", got)
	}

	if rr := do(t, h, "POST", "/api/gallery/42/favorite", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("missing photo: %d", rr.Code)
	}
	if rr := do(t, h, "POST", "/api/gallery/abc/favorite", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", rr.Code)
	}
	if rr := do(t, h, "POST", "/api/gallery", `{"title":""}`); rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid photo: %d", rr.Code)
	}
	if photo.ID != 1 {
		t.Fatalf("photo id: %d", photo.ID)
	}
}

func TestServer_TechStackAddAndReplace(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, ServerConfig{})
	h := s.Handler()
	do(t, h, "POST", "/api/tech-stack", `{"category":"Backend","item":"Go"}`)
	do(t, h, "POST", "/api/tech-stack", `{"category":"Backend","item":"Go"}`)
	rr := do(t, h, "POST", "/api/tech-stack", `{"category":"Backend","item":"SQLite"}`)
	if got := decode[model.TechStack](t, rr); !cmp.Equal(got.Items, []string{"Go", "SQLite"}) {
		t.Fatalf("add: %+v", got)
	}
	rr = do(t, h, "POST", "/api/tech-stack", `{"category":"Backend","items":[]}`)
	if got := decode[model.TechStack](t, rr); len(got.Items) != 0 {
		t.Fatalf("replace: %+v", got)
	}
}

func TestServer_ReadOnlyRefusesMutations(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, ServerConfig{ReadOnly: true})
	h := s.Handler()
	for _, tc := range []struct{ method, path string }{
		{"POST", "/api/projects"},
		{"POST", "/api/gallery/1/favorite"},
		{"DELETE", "/api/gallery/1/tags/x"},
		{"POST", "/api/reset"},
	} {
		if rr := do(t, h, tc.method, tc.path, `{}`); rr.Code != http.StatusForbidden {
			t.Fatalf("%s %s: got %d want 403", tc.method, tc.path, rr.Code)
		}
	}
	if rr := do(t, h, "GET", "/api/projects", ""); rr.Code != http.StatusOK {
		t.Fatalf("reads must keep working: %d", rr.Code)
	}
}

func TestServer_AdminToken(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, ServerConfig{AdminToken: "s3cret"})
	h := s.Handler()
	body := `{"text":"Github","link":"https://github.com/x"}`
	if rr := do(t, h, "POST", "/api/socials", body); rr.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: %d", rr.Code)
	}
	if rr := do(t, h, "POST", "/api/socials", body, "Authorization", "Bearer nope"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token: %d", rr.Code)
	}
	if rr := do(t, h, "POST", "/api/socials", body, "Authorization", "bearer s3cret"); rr.Code != http.StatusCreated {
		t.Fatalf("valid token: %d %s", rr.Code, rr.Body.String())
	}
}

func TestServer_ResetRestoresDefaults(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, ServerConfig{})
	h := s.Handler()
	do(t, h, "POST", "/api/projects", `{"name":"Scratch"}`)
	if rr := do(t, h, "POST", "/api/reset", ""); rr.Code != http.StatusOK {
		t.Fatalf("reset: %d", rr.Code)
	}
	got := decode[[]model.Project](t, do(t, h, "GET", "/api/projects", ""))
	if diff := cmp.Diff(store.DefaultContent().Projects, got); diff != "" {
		t.Fatalf("projects after reset (-want +got):\n%s", diff)
	}
}

func TestServer_CORSAndRequestID(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, ServerConfig{})
	h := s.Handler()

	rr := do(t, h, "OPTIONS", "/api/projects", "")
	if rr.Code != http.StatusNoContent || rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("preflight: %d %v", rr.Code, rr.Header())
	}
	rr = do(t, h, "GET", "/health", "")
	if rr.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a generated request id")
	}
	rr = do(t, h, "GET", "/health", "", requestIDHeader, "abc")
	if rr.Header().Get(requestIDHeader) != "abc" {
		t.Fatalf("client request id should be echoed")
	}
}

func TestServer_EventsStreamContentVersion(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, ServerConfig{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	client := srv.Client()
	defer client.CloseIdleConnections()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("GET /api/events: %v", err)
	}
	defer resp.Body.Close()

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	waitFor := func(substr string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case l, ok := <-lines:
				if !ok {
					t.Fatalf("stream closed before %q", substr)
				}
				if strings.Contains(l, substr) {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", substr)
			}
		}
	}

	waitFor(`"contentVersion":1`)
	for s.bc.hub.subscribers() == 0 {
		time.Sleep(5 * time.Millisecond)
	}

	post, err := client.Post(srv.URL+"/api/projects", "application/json", strings.NewReader(`{"name":"Live"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	post.Body.Close()
	waitFor(`"contentVersion":2`)

	cancel()
	for range lines {
	}
}

func TestBroadcaster_SeesOutOfProcessWrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := newTestServer(t, ServerConfig{Dir: dir, Watch: true})
	before := s.bc.Version()

	if _, err := (store.Store{Dir: dir}).AddProject(context.Background(), model.Project{Name: "Elsewhere"}); err != nil {
		t.Fatalf("AddProject: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for s.bc.Version() == before {
		if time.Now().After(deadline) {
			t.Fatalf("watcher never noticed the write")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
