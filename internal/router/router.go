package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bookbot-backend/internal/handlers"
	"bookbot-backend/internal/middleware"
	"bookbot-backend/internal/websocket"
)

func New(
	chatHandler *handlers.ChatHandler,
	dailyBookHandler *handlers.DailyBookHandler,
	feedbackHandler *handlers.FeedbackHandler,
	bookHandler *handlers.BookHandler,
	wsHub *websocket.Hub,
	corsOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. Recover sits inside AccessLog and Metrics so a
	// recovered panic is logged and counted as a 500.
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", chatHandler.Chat)
		r.Get("/daily_book", dailyBookHandler.Get)

		r.Post("/feedback", feedbackHandler.Submit)
		r.Get("/feedback/stream", wsHub.HandleWebSocket)

		r.Route("/books", func(r chi.Router) {
			r.Get("/search", bookHandler.Search)
			r.Get("/title/{title}", bookHandler.ByTitle)
			r.Get("/mood/{mood}", bookHandler.ByMood)
		})
	})

	return r
}
