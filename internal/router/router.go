package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"slidechat-backend/internal/handlers"
	"slidechat-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	sessionHandler *handlers.SessionHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Generation rate limiter (20 req/min per IP)
	generateLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Stateless Generation ────
		r.Group(func(r chi.Router) {
			r.Use(generateLimiter.Middleware)
			r.Post("/chat", chatHandler.Generate)
		})

		// ──── Conversation Sessions ────
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Get("/{id}", sessionHandler.Get)
			r.With(generateLimiter.Middleware).Post("/{id}/messages", sessionHandler.SendMessage)
			r.Get("/{id}/export", sessionHandler.Export)
		})
	})

	return r
}
