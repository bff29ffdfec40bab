package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/user/bookmark-service/internal/delivery/http/handler"
	"github.com/user/bookmark-service/internal/delivery/http/middleware"
	"github.com/user/bookmark-service/internal/repository"
)

func New(h *handler.Handler, sessions repository.SessionRepository, allowedOrigins []string) http.Handler {
	authenticated := middleware.Auth(sessions)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", h.HandleHealthCheck)
	mux.Handle("POST /api/bookmarks", authenticated(http.HandlerFunc(h.HandleSubmitBookmark)))
	mux.Handle("GET /api/bookmarks/{id}", authenticated(http.HandlerFunc(h.HandleGetBookmark)))
	mux.Handle("GET /api/ingest/history", authenticated(http.HandlerFunc(h.HandleIngestHistory)))
	mux.Handle("GET /api/dashboard", authenticated(http.HandlerFunc(h.HandleDashboard)))

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middlewares
	var chainedHandler http.Handler = mux
	chainedHandler = middleware.Metrics(chainedHandler)
	chainedHandler = middleware.Logging(chainedHandler)

	// Mobile and web clients call from other origins; credentials carry the
	// session cookie, so allowed origins must be explicit.
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(chainedHandler)
}
