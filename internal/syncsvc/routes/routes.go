package routes

import (
	"github.com/cardlink/cardlink-services/internal/syncsvc/handlers"
	"github.com/cardlink/cardlink-services/internal/syncsvc/ws"
	"github.com/go-chi/chi"
)

func SetRoutes(r *chi.Mux, ws *ws.Ws) {
	h := handlers.NewHandler(ws)
	r.Route("/api", func(r chi.Router) {
		r.Get("/ws", h.HandleWebSocket)
		r.Get("/health", h.HealthHandler)
	})
}
