// Package content fetches the portfolio collections and shapes them into the
// trees the desktop renders.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"deskfolio/internal/model"
	"deskfolio/internal/store"
)

// Source yields the five content collections.
type Source interface {
	TechStack(ctx context.Context) ([]model.TechStack, error)
	BlogPosts(ctx context.Context) ([]model.BlogPost, error)
	Gallery(ctx context.Context) ([]model.GalleryPhoto, error)
	Socials(ctx context.Context) ([]model.SocialProfile, error)
	Projects(ctx context.Context) ([]model.Project, error)
}

// StoreSource reads straight from a local data directory.
type StoreSource struct {
	store.Store
}

func NewStoreSource(dir string) StoreSource {
	return StoreSource{Store: store.Store{Dir: dir}}
}

// HTTPSource reads from and writes to a running API server.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
	// AdminToken is sent as a bearer token on writes.
	AdminToken string
}

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-2xx response. Message carries the server's
// {"error": "..."} body when present.
type APIError struct {
	Method  string
	Status  int
	Path    string
	Message string
}

func (e *APIError) Error() string {
	method := e.Method
	if method == "" {
		method = http.MethodGet
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", method, e.Path, e.Status)
}

func (h *HTTPSource) TechStack(ctx context.Context) ([]model.TechStack, error) {
	return getJSON[[]model.TechStack](ctx, h, "/api/tech-stack")
}

func (h *HTTPSource) BlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return getJSON[[]model.BlogPost](ctx, h, "/api/blog-posts")
}

func (h *HTTPSource) Gallery(ctx context.Context) ([]model.GalleryPhoto, error) {
	return getJSON[[]model.GalleryPhoto](ctx, h, "/api/gallery")
}

func (h *HTTPSource) Socials(ctx context.Context) ([]model.SocialProfile, error) {
	return getJSON[[]model.SocialProfile](ctx, h, "/api/socials")
}

func (h *HTTPSource) Projects(ctx context.Context) ([]model.Project, error) {
	return getJSON[[]model.Project](ctx, h, "/api/projects")
}

func getJSON[T any](ctx context.Context, h *HTTPSource, path string) (T, error) {
	return sendJSON[T](ctx, h, http.MethodGet, path, nil)
}

func sendJSON[T any](ctx context.Context, h *HTTPSource, method, path string, body any) (T, error) {
	var zero T
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, h.BaseURL+path, rd)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && h.AdminToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.AdminToken)
	}
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return zero, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Status: resp.StatusCode, Path: path}
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(b, &body) == nil {
			apiErr.Message = body.Error
		}
		return zero, apiErr
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}
