// Package server exposes the planner document over a small HTTP API.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"dayplan/internal/normalize"
	"dayplan/internal/service"
)

// Server serves the state API backed by the planner service.
type Server struct {
	svc    *service.PlannerService
	logger *log.Logger
	env    string
}

func New(svc *service.PlannerService, logger *log.Logger, env string) *Server {
	return &Server{svc: svc, logger: logger, env: env}
}

// Handler builds the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("PUT /api/state", s.handlePutState)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return withHeaders(mux)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	state, err := s.svc.Load(r.Context())
	if err != nil {
		s.logger.Error("load state", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "storage unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "body must be JSON"})
		return
	}
	doc, ok := body.(map[string]any)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "body must be a JSON object"})
		return
	}

	state := normalize.Document(doc)
	if err := s.svc.Save(r.Context(), state); err != nil {
		s.logger.Error("save state", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "storage unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "env": s.env})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func withHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
