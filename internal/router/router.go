package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"skillpath-backend/internal/handlers"
	"skillpath-backend/internal/middleware"
	"skillpath-backend/internal/websocket"
)

func New(
	sessionAuth *middleware.SessionAuth,
	generateLimiter *middleware.RateLimiter,
	legacyHandler *handlers.LegacyHandler,
	sessionHandler *handlers.SessionHandler,
	pathHandler *handlers.PathHandler,
	quizHandler *handlers.QuizHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Original form endpoint ────
	r.Route("/api/generate-path", func(r chi.Router) {
		r.MethodNotAllowed(legacyNotFound)
		r.With(generateLimiter.Middleware).Post("/", legacyHandler.GeneratePath)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", sessionHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(sessionAuth.Middleware)

			// ──── Path Routes ────
			r.Route("/paths", func(r chi.Router) {
				r.With(generateLimiter.Middleware).Post("/generate", pathHandler.Generate)
				r.Get("/", pathHandler.List)
				r.Get("/current", pathHandler.Current)
				r.Get("/{id}", pathHandler.Get)
				r.Get("/{id}/document", pathHandler.Document)
				r.Get("/{id}/attempts", quizHandler.Attempts)

				// ──── Quiz Routes ────
				r.Route("/{id}/quizzes/{index}", func(r chi.Router) {
					r.Get("/", quizHandler.View)
					r.Put("/answers", quizHandler.Select)
					r.Post("/submit", quizHandler.Submit)
					r.Post("/reset", quizHandler.Reset)
				})
			})

			// ──── Job Routes ────
			r.Get("/jobs/{id}", pathHandler.Job)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}

// legacyNotFound keeps the original answer for anything but POST.
func legacyNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
}
