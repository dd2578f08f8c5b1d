// Package http exposes a renderer's introspection surface over HTTP for
// debugging test runs from outside the process.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/aretw0/perch/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// Renderer defines the narrow surface the debug server needs. The server
// depends on this contract, never on the concrete renderer.
type Renderer interface {
	Report() string
	Flush()
	Snapshot() []domain.NodeSnapshot
}

// Server serves the debug routes.
type Server struct {
	Renderer Renderer
}

// NewHandler creates the HTTP handler for the renderer.
func NewHandler(renderer Renderer) http.Handler {
	server := &Server{Renderer: renderer}
	r := chi.NewRouter()
	r.Get("/tree", server.Tree)
	r.Get("/children", server.Children)
	r.Post("/flush", server.Flush)
	return r
}

// Tree handles GET /tree: the plain-text dump report.
func (s *Server) Tree(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.Renderer.Report()))
}

// Children handles GET /children: the committed tree snapshot as JSON.
func (s *Server) Children(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	snap := s.Renderer.Snapshot()
	if snap == nil {
		snap = []domain.NodeSnapshot{}
	}
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		http.Error(w, "failed to encode snapshot", http.StatusInternalServerError)
	}
}

// Flush handles POST /flush: flush both classes once, return the fresh dump.
func (s *Server) Flush(w http.ResponseWriter, r *http.Request) {
	s.Renderer.Flush()
	s.Tree(w, r)
}
