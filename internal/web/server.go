package web

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/pagecraft/pagecraft/pkg/cache"
	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/errors"
	"github.com/pagecraft/pagecraft/pkg/observability"
	"github.com/pagecraft/pagecraft/pkg/session"
	"github.com/pagecraft/pagecraft/pkg/store"
)

// sessionCookie is the name of the editor session cookie.
const sessionCookie = "pagecraft_session"

// Server wires the document store, session store and cache behind the
// editor API routes.
type Server struct {
	store        store.Store
	sessions     session.Store
	cache        cache.Cache
	cacheTTL     time.Duration
	logger       *log.Logger
	authDisabled bool
}

// New assembles a server. cache may be nil, in which case published
// payloads are not cached.
func New(cfg Config, st store.Store, sessions session.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{
		store:        st,
		sessions:     sessions,
		cache:        c,
		cacheTTL:     time.Duration(cfg.Cache.TTLMinutes) * time.Minute,
		logger:       logger,
		authDisabled: cfg.Auth.Disabled,
	}
}

// Handler builds the chi route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)

		r.Get("/documents", s.handleListDocuments)
		r.Post("/documents", s.handleCreateDocument)

		r.Route("/documents/{docID}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Put("/", s.handlePutDocument)
			r.Delete("/", s.handleDeleteDocument)
			r.Get("/publish", s.handlePublish)

			r.Post("/layers/move", s.handleMove)
			r.Post("/layers/duplicate", s.handleDuplicate)
			r.Post("/layers/delete", s.handleDeleteLayers)
			r.Post("/layers/paste", s.handlePaste)
			r.Post("/drop/validate", s.handleValidateDrop)

			r.Post("/components/promote", s.handlePromoteComponent)
			r.Put("/components/{componentID}", s.handleUpdateComponent)
			r.Delete("/components/{componentID}", s.handleDeleteComponent)

			r.Post("/styles/promote", s.handlePromoteStyle)
			r.Put("/styles/{styleID}", s.handleUpdateStyle)
			r.Delete("/styles/{styleID}", s.handleDeleteStyle)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("editor API listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// observe emits HTTP hooks and logs each request.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, sw.status, time.Since(start))
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", sw.status, "dur", time.Since(start).Round(time.Millisecond))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requireSession rejects requests without a valid session cookie,
// unless the server runs with auth disabled.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authDisabled {
			next.ServeHTTP(w, r)
			return
		}

		c, err := r.Cookie(sessionCookie)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeUnauthorized, "missing session"))
			return
		}
		sess, err := s.sessions.Get(r.Context(), c.Value)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "load session"))
			return
		}
		if sess == nil {
			writeError(w, errors.New(errors.ErrCodeSessionExpired, "session expired"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the wire shape of an error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// writeError maps structured error codes to HTTP statuses. Unknown
// errors become 500s with a generic message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDrop, errors.ErrCodeInvalidTarget,
		errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidName:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeLayerNotFound, errors.ErrCodeComponentNotFound,
		errors.ErrCodeStyleNotFound, errors.ErrCodeDocumentNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeLayerLocked, errors.ErrCodeCircularReference:
		status = http.StatusConflict
	case errors.ErrCodeUnauthorized, errors.ErrCodeSessionExpired:
		status = http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		status = http.StatusForbidden
	case "":
		code = errors.ErrCodeInternal
	}

	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

// loadDocument fetches the routed document, translating store misses
// into DOCUMENT_NOT_FOUND.
func (s *Server) loadDocument(r *http.Request) (*document.Document, error) {
	id := chi.URLParam(r, "docID")
	if err := errors.ValidateID(id); err != nil {
		return nil, err
	}
	d, err := s.store.Get(r.Context(), id)
	if stderrors.Is(err, store.ErrNotFound) {
		return nil, errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load document %s", id)
	}
	return d, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// recordMutation emits the mutation hook for a completed operation.
func recordMutation(ctx context.Context, op string, nodes int, start time.Time, err error) {
	observability.Mutation().OnMutation(ctx, op, nodes, time.Since(start), err)
}
