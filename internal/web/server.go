package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"

	"deskfolio/internal/model"
	"deskfolio/internal/store"
)

type ServerConfig struct {
	Addr     string
	Dir      string
	ReadOnly bool

	// AdminToken, when set, must be sent as a bearer token on mutations.
	AdminToken string

	// Watch enables the filesystem watcher so writes made by other processes
	// reach /api/events subscribers.
	Watch bool

	Log *zap.Logger
}

type Server struct {
	mu  sync.RWMutex
	cfg ServerConfig
	st  store.Store
	log *zap.Logger

	bc *contentBroadcaster
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Dir = strings.TrimSpace(cfg.Dir)
	cfg.AdminToken = strings.TrimSpace(cfg.AdminToken)
	if cfg.Dir == "" {
		return nil, errors.New("web: dir is empty")
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	st := store.Store{Dir: cfg.Dir}
	if err := st.Ensure(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg: cfg,
		st:  st,
		log: log,
		bc:  newContentBroadcaster(cfg.Dir, log),
	}
	if cfg.Watch {
		if err := s.bc.Start(); err != nil {
			log.Warn("content watcher disabled", zap.Error(err))
		}
	}
	return s, nil
}

// Close stops the content watcher.
func (s *Server) Close() {
	s.bc.Stop()
}

func (s *Server) readOnly() bool {
	s.mu.RLock()
	ro := s.cfg.ReadOnly
	s.mu.RUnlock()
	return ro
}

func (s *Server) adminToken() string {
	s.mu.RLock()
	t := s.cfg.AdminToken
	s.mu.RUnlock()
	return t
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/events", s.handleEvents)

	mux.HandleFunc("GET /api/tech-stack", s.handleTechStack)
	mux.HandleFunc("GET /api/blog-posts", s.handleBlogPosts)
	mux.HandleFunc("GET /api/gallery", s.handleGallery)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/socials", s.handleSocials)

	mux.HandleFunc("POST /api/projects", s.admin(s.handleProjectCreate))
	mux.HandleFunc("POST /api/gallery", s.admin(s.handlePhotoCreate))
	mux.HandleFunc("POST /api/gallery/{id}/favorite", s.admin(s.handlePhotoFavorite))
	mux.HandleFunc("POST /api/gallery/{id}/tags", s.admin(s.handlePhotoTagAdd))
	mux.HandleFunc("DELETE /api/gallery/{id}/tags/{tag}", s.admin(s.handlePhotoTagRemove))
	mux.HandleFunc("POST /api/blog-posts", s.admin(s.handleBlogPostCreate))
	mux.HandleFunc("POST /api/socials", s.admin(s.handleSocialCreate))
	mux.HandleFunc("POST /api/tech-stack", s.admin(s.handleTechStackUpdate))
	mux.HandleFunc("POST /api/reset", s.admin(s.handleReset))

	return withRequestLog(s.log, withCORS(mux))
}

// Serve runs the API on ln until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.Serve(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := hs.Shutdown(shutdownCtx)
	<-errCh
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps store sentinels to HTTP statuses.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("store write failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func listHandler[T any](s *Server, what string, list func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		xs, err := list(r.Context())
		if err != nil {
			s.log.Error("list failed", zap.String("what", what), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch "+what)
			return
		}
		writeJSON(w, http.StatusOK, xs)
	}
}

func (s *Server) handleTechStack(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "tech stack", s.st.TechStack)(w, r)
}

func (s *Server) handleBlogPosts(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "blog posts", s.st.BlogPosts)(w, r)
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "gallery", s.st.Gallery)(w, r)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "projects", s.st.Projects)(w, r)
}

func (s *Server) handleSocials(w http.ResponseWriter, r *http.Request) {
	listHandler(s, "socials", s.st.Socials)(w, r)
}

func decodeBody(r *http.Request, v any) error {
	b, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return errors.New("empty body")
	}
	return json.Unmarshal(b, v)
}

func photoID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(r.PathValue("id")))
	return id, err == nil && id > 0
}

func (s *Server) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	var in model.Project
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	p, err := s.st.AddProject(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("project.add")
	writeJSON(w, http.StatusCreated, p)
}

type photoCreateRequest struct {
	Title string   `json:"title"`
	URL   string   `json:"url"`
	Tags  []string `json:"tags"`
}

func (s *Server) handlePhotoCreate(w http.ResponseWriter, r *http.Request) {
	var in photoCreateRequest
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	g, err := s.st.AddPhoto(r.Context(), in.Title, in.URL, in.Tags)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("gallery.add")
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handlePhotoFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := photoID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid photo id")
		return
	}
	g, err := s.st.ToggleFavorite(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("gallery.favorite")
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handlePhotoTagAdd(w http.ResponseWriter, r *http.Request) {
	id, ok := photoID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid photo id")
		return
	}
	var in struct {
		Tag string `json:"tag"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	g, err := s.st.AddTag(r.Context(), id, in.Tag)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("gallery.tag")
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handlePhotoTagRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := photoID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid photo id")
		return
	}
	g, err := s.st.RemoveTag(r.Context(), id, r.PathValue("tag"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("gallery.untag")
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleBlogPostCreate(w http.ResponseWriter, r *http.Request) {
	var in model.BlogPost
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	b, err := s.st.AddBlogPost(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("blog.add")
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleSocialCreate(w http.ResponseWriter, r *http.Request) {
	var in model.SocialProfile
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	sp, err := s.st.AddSocial(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("social.add")
	writeJSON(w, http.StatusCreated, sp)
}

// techStackRequest adds Item to Category, or replaces the category's items
// when Items is present.
type techStackRequest struct {
	Category string    `json:"category"`
	Item     string    `json:"item,omitempty"`
	Items    *[]string `json:"items,omitempty"`
}

func (s *Server) handleTechStackUpdate(w http.ResponseWriter, r *http.Request) {
	var in techStackRequest
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}
	var (
		ts  model.TechStack
		err error
	)
	if in.Items != nil {
		ts, err = s.st.UpdateTechStack(r.Context(), in.Category, *in.Items)
	} else {
		ts, err = s.st.AddTechItem(r.Context(), in.Category, in.Item)
	}
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("tech.update")
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.st.Reset(r.Context()); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.bc.bump("reset")
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleEvents streams {contentVersion} signals; clients refetch when the
// version moves.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	_ = sse.MarshalAndPatchSignals(map[string]any{"contentVersion": s.bc.Version()})

	ch, cancel := s.bc.hub.subscribe()
	defer cancel()

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case <-ch:
			_ = sse.MarshalAndPatchSignals(map[string]any{"contentVersion": s.bc.Version()})
		}
	}
}
