// ABOUTME: HTTP server struct with chi router, session store, and optional persistent diagram store.
// ABOUTME: Configures the JSON API routes and wires handler methods via functional options.
package wizard

import (
	"net/http"

	"github.com/erdsmith/erdsmith/store"
	"github.com/go-chi/chi/v5"
)

// ServerOption configures optional Server behavior.
type ServerOption func(*Server)

// WithDiagramStore enables the saved-diagram endpoints backed by the given store.
func WithDiagramStore(diagrams *store.DiagramStore) ServerOption {
	return func(s *Server) {
		s.diagrams = diagrams
	}
}

// Server holds the chi router, the in-memory session store, and, when
// configured, the persistent diagram store behind the /api/saved routes.
type Server struct {
	router   chi.Router
	sessions *SessionStore
	diagrams *store.DiagramStore
}

// NewServer creates a Server with all routes configured.
func NewServer(sessions *SessionStore, opts ...ServerOption) *Server {
	s := &Server{
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)

	// Session lifecycle
	r.Post("/api/diagrams", s.handleCreateDiagram)
	r.Get("/api/diagrams/{id}", s.handleGetDiagram)
	r.Put("/api/diagrams/{id}", s.handleUpdateDiagram)
	r.Get("/api/diagrams/{id}/source", s.handleSource)
	r.Get("/api/diagrams/{id}/corrected", s.handleCorrected)
	r.Get("/api/diagrams/{id}/export.yaml", s.handleExportYAML)
	r.Get("/api/diagrams/{id}/report", s.handleReport)

	// Saved diagrams (persistent)
	r.Post("/api/saved", s.handleSaveDiagram)
	r.Get("/api/saved", s.handleListSaved)
	r.Get("/api/saved/{id}", s.handleGetSaved)
	r.Delete("/api/saved/{id}", s.handleDeleteSaved)

	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
