package server

import (
	"net/http"

	"github.com/ternarybob/deckcheck/internal/handlers"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Review pipeline
	mux.HandleFunc("/api/review", s.app.ReviewHandler.ReviewHandler)

	// Feedback capture and listing
	mux.HandleFunc("/api/feedback", s.app.FeedbackHandler.FeedbackHandler)

	// Service introspection
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/status", s.app.APIHandler.StatusHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			handlers.NotFoundHandler(w, r)
			return
		}
		s.app.APIHandler.HealthHandler(w, r)
	})
}
