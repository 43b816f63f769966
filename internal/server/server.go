// Package server exposes document sessions over HTTP. Each session holds one
// snapshot; commands posted to a session are applied in order under the
// session lock.
package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iw2rmb/doxx"
	"github.com/iw2rmb/doxx/document"
)

// DefaultMaxBodyBytes bounds request bodies when Options.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 1 << 20

type Options struct {
	// MaxReflowPasses bounds the reflow run after a batch that changed text.
	MaxReflowPasses int
	// MaxSessions caps live sessions. Zero means unlimited.
	MaxSessions  int
	MaxBodyBytes int64
}

// Server is the HTTP API for document sessions.
type Server struct {
	router   chi.Router
	engine   *document.Engine
	sessions *Store
	log      *slog.Logger
	opts     Options
}

// New creates and configures the server. The engine must carry a measurer
// for reflow requests.
func New(engine *document.Engine, log *slog.Logger, opts Options) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	s := &Server{
		engine:   engine,
		sessions: NewStore(opts.MaxSessions),
		log:      log,
		opts:     opts,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Sessions returns the session store.
func (s *Server) Sessions() *Store { return s.sessions }

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/commands", s.handleCommands)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  doxx.Version(),
		"sessions": s.sessions.Len(),
	})
}

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", doxx.Product())
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
