// ABOUTME: HTTP handler methods for all wizard endpoints
// ABOUTME: Covers diagram session CRUD, corrected output, YAML export, reports, and saved diagrams
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/erdsmith/erdsmith/erd"
	"github.com/erdsmith/erdsmith/export"
	"github.com/erdsmith/erdsmith/report"
	"github.com/go-chi/chi/v5"
)

// maxBodySize caps uploaded diagram sources. Diagrams are hand-written text;
// anything past 1MB is not a diagram.
const maxBodySize = 1 << 20

type diagramRequest struct {
	Name   string `json:"name,omitempty"`
	Source string `json:"source"`
}

type sessionResponse struct {
	ID     string      `json:"id"`
	Result *erd.Result `json:"result"`
}

type savedResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}

func writeError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, errorResponse{Error: fmt.Sprintf(format, args...)})
}

// decodeDiagramRequest reads a capped JSON body into a diagramRequest.
func decodeDiagramRequest(w http.ResponseWriter, r *http.Request) (diagramRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req diagramRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, fmt.Errorf("request body too large (max 1MB)")
		}
		return req, fmt.Errorf("invalid JSON body: %v", err)
	}
	return req, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreateDiagram creates a new session from posted diagram source.
func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	req, err := decodeDiagramRequest(w, r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}

	sess, err := s.sessions.Create(req.Source)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}

	sess.RLock()
	defer sess.RUnlock()
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, Result: sess.Result})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session %s not found", id)
		return nil, false
	}
	return sess, true
}

// handleGetDiagram returns the current validation result for a session.
func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.RLock()
	defer sess.RUnlock()
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Result: sess.Result})
}

// handleUpdateDiagram replaces the session's source and re-validates.
func (s *Server) handleUpdateDiagram(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	req, err := decodeDiagramRequest(w, r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	if err := sess.Update(req.Source); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}

	sess.RLock()
	defer sess.RUnlock()
	writeJSON(w, http.StatusOK, sessionResponse{ID: sess.ID, Result: sess.Result})
}

// handleSource returns the raw diagram source as plain text.
func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.RLock()
	source := sess.Source
	sess.RUnlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(source))
}

// handleCorrected regenerates the diagram with fixable warnings applied.
func (s *Server) handleCorrected(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.RLock()
	corrected := erd.GenerateCorrected(sess.Model, sess.Result.Warnings)
	sess.RUnlock()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(corrected))
}

// handleExportYAML returns the session's schema as a YAML document.
func (s *Server) handleExportYAML(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.RLock()
	out, err := export.ExportYAML(sess.Result)
	sess.RUnlock()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed: %v", err)
		return
	}

	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="schema.yaml"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

// handleReport renders the validation report, as Markdown by default or as
// HTML when format=html is requested.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))

	sess.RLock()
	defer sess.RUnlock()

	switch format {
	case "", "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(report.Markdown(sess.Result)))
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(report.HTML(sess.Result)))
	default:
		writeError(w, http.StatusBadRequest, "unknown report format %q", format)
	}
}

// handleSaveDiagram persists a named diagram with its validation status.
func (s *Server) handleSaveDiagram(w http.ResponseWriter, r *http.Request) {
	if s.diagrams == nil {
		writeError(w, http.StatusServiceUnavailable, "diagram persistence is not configured")
		return
	}

	req, err := decodeDiagramRequest(w, r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "%v", err)
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		writeError(w, http.StatusUnprocessableEntity, "diagram source is required")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "diagram name is required")
		return
	}

	res := validateSource(req.Source)
	id, err := s.diagrams.Save(name, req.Source, res.Validation.Status)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "save failed: %v", err)
		return
	}

	writeJSON(w, http.StatusCreated, savedResponse{ID: id, Name: name, Status: res.Validation.Status})
}

// handleListSaved lists all persisted diagrams.
func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request) {
	if s.diagrams == nil {
		writeError(w, http.StatusServiceUnavailable, "diagram persistence is not configured")
		return
	}

	diagrams, err := s.diagrams.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list failed: %v", err)
		return
	}
	writeJSON(w, http.StatusOK, diagrams)
}

// handleGetSaved returns one persisted diagram by ID.
func (s *Server) handleGetSaved(w http.ResponseWriter, r *http.Request) {
	if s.diagrams == nil {
		writeError(w, http.StatusServiceUnavailable, "diagram persistence is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	d, err := s.diagrams.Get(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "get failed: %v", err)
		return
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "diagram %s not found", id)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleDeleteSaved removes one persisted diagram by ID.
func (s *Server) handleDeleteSaved(w http.ResponseWriter, r *http.Request) {
	if s.diagrams == nil {
		writeError(w, http.StatusServiceUnavailable, "diagram persistence is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.diagrams.Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete failed: %v", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
