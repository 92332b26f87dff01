package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.system.Health)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Post("/analyze", s.deck.AnalyzeDeck)
		})

		r.Route("/players/{tag}", func(r chi.Router) {
			r.Get("/profile", s.player.GetProfile)
			r.Get("/suggestions", s.player.GetSuggestions)
			r.Get("/model", s.player.GetModel)
			r.Delete("/model", s.player.DeleteModel)
			r.Get("/report", s.player.GetReport)
		})
	})
}
