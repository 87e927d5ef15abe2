package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zapponejosh/igbo-calendar-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health
//	GET    /api/v1/weekdays
//	GET    /api/v1/months
//	GET    /api/v1/lunar/{day}
//	GET    /api/v1/convert/{date}?year_start=&label=
//	GET    /api/v1/today
//	GET    /api/v1/grid?year_start=&label=
//	GET    /api/v1/years
//	GET    /api/v1/years/{label}
//	GET    /api/v1/years/{label}/grid
//	GET    /api/v1/years/{label}/months/{month}
//	GET    /api/v1/years/{label}/calendar.ics?market_days=true
//	POST   /api/v1/admin/years          (API key)
//	DELETE /api/v1/admin/years/{label}  (API key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.CleanPath)
	r.Use(ChainMiddleware(
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// ======================================================================
		// Engine routes
		// ======================================================================
		r.Get("/weekdays", handlers.ListWeekdays)
		r.Get("/months", handlers.ListMonths)
		r.Get("/lunar/{day}", handlers.GetLunarStage)
		r.Get("/convert/{date}", handlers.ConvertDate)
		r.Get("/today", handlers.GetToday)
		r.Get("/grid", handlers.GetGrid)

		// ======================================================================
		// Registry routes
		// ======================================================================
		r.Route("/years", func(r chi.Router) {
			r.Get("/", handlers.ListYears)
			r.Route("/{label}", func(r chi.Router) {
				r.Get("/", handlers.GetYear)
				r.Get("/grid", handlers.GetYearGrid)
				r.Get("/months/{month}", handlers.GetYearMonth)
				r.Get("/calendar.ics", handlers.GetYearICS)
			})
		})

		// ======================================================================
		// Admin routes (API key)
		// ======================================================================
		r.Route("/admin", func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Post("/years", handlers.CreateYear)
			r.Delete("/years/{label}", handlers.DeleteYear)
		})
	})

	return r
}
