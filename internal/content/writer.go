package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"deskfolio/internal/model"
)

// Writer applies admin and gallery edits. StoreSource writes the local
// database; HTTPSource goes through the API.
type Writer interface {
	AddProject(ctx context.Context, p model.Project) (model.Project, error)
	AddBlogPost(ctx context.Context, b model.BlogPost) (model.BlogPost, error)
	AddPhoto(ctx context.Context, title, url string, tags []string) (model.GalleryPhoto, error)
	ToggleFavorite(ctx context.Context, id int) (model.GalleryPhoto, error)
	AddTag(ctx context.Context, id int, tag string) (model.GalleryPhoto, error)
	RemoveTag(ctx context.Context, id int, tag string) (model.GalleryPhoto, error)
	AddSocial(ctx context.Context, sp model.SocialProfile) (model.SocialProfile, error)
	AddTechItem(ctx context.Context, category, item string) (model.TechStack, error)
	Reset(ctx context.Context) error
}

// Backend is a Source that can also be written to.
type Backend interface {
	Source
	Writer
}

var (
	_ Backend = StoreSource{}
	_ Backend = (*HTTPSource)(nil)
)

func (h *HTTPSource) AddProject(ctx context.Context, p model.Project) (model.Project, error) {
	return sendJSON[model.Project](ctx, h, http.MethodPost, "/api/projects", p)
}

func (h *HTTPSource) AddBlogPost(ctx context.Context, b model.BlogPost) (model.BlogPost, error) {
	return sendJSON[model.BlogPost](ctx, h, http.MethodPost, "/api/blog-posts", b)
}

func (h *HTTPSource) AddPhoto(ctx context.Context, title, imgURL string, tags []string) (model.GalleryPhoto, error) {
	body := map[string]any{"title": title, "url": imgURL, "tags": tags}
	return sendJSON[model.GalleryPhoto](ctx, h, http.MethodPost, "/api/gallery", body)
}

func (h *HTTPSource) ToggleFavorite(ctx context.Context, id int) (model.GalleryPhoto, error) {
	return sendJSON[model.GalleryPhoto](ctx, h, http.MethodPost, fmt.Sprintf("/api/gallery/%d/favorite", id), nil)
}

func (h *HTTPSource) AddTag(ctx context.Context, id int, tag string) (model.GalleryPhoto, error) {
	return sendJSON[model.GalleryPhoto](ctx, h, http.MethodPost, fmt.Sprintf("/api/gallery/%d/tags", id), map[string]string{"tag": tag})
}

func (h *HTTPSource) RemoveTag(ctx context.Context, id int, tag string) (model.GalleryPhoto, error) {
	path := fmt.Sprintf("/api/gallery/%d/tags/%s", id, url.PathEscape(tag))
	return sendJSON[model.GalleryPhoto](ctx, h, http.MethodDelete, path, nil)
}

func (h *HTTPSource) AddSocial(ctx context.Context, sp model.SocialProfile) (model.SocialProfile, error) {
	return sendJSON[model.SocialProfile](ctx, h, http.MethodPost, "/api/socials", sp)
}

func (h *HTTPSource) AddTechItem(ctx context.Context, category, item string) (model.TechStack, error) {
	body := map[string]string{"category": category, "item": item}
	return sendJSON[model.TechStack](ctx, h, http.MethodPost, "/api/tech-stack", body)
}

func (h *HTTPSource) Reset(ctx context.Context) error {
	_, err := sendJSON[map[string]bool](ctx, h, http.MethodPost, "/api/reset", nil)
	return err
}
