package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"archsandbox/internal/handler"
)

func NewRouter(
	chatHandler *handler.ChatHandler,
	costHandler *handler.CostHandler,
	sandboxHandler *handler.SandboxHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", handler.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.HandleChat)
		r.Get("/chat/ws", chatHandler.HandleChatWS)
		r.Get("/chat/sessions/{sessionID}", chatHandler.HandleHistory)
		r.Delete("/chat/sessions/{sessionID}", chatHandler.HandleDeleteSession)

		r.Post("/architecture/cost", costHandler.HandleEstimate)

		r.Post("/sandboxes", sandboxHandler.HandlePublish)
		r.Get("/sandboxes", sandboxHandler.HandleList)
		r.Get("/sandboxes/{sandboxID}", sandboxHandler.HandleGet)
	})

	return r
}
