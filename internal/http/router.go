package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"symptom-checker/internal/analysis"
	"symptom-checker/internal/handlers"
	"symptom-checker/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AnalysisService analysis.Service
	History         storage.HistoryStore // nil when persistence is disabled
	DB              *sql.DB              // nil when persistence is disabled
	Model           string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	checkHandler := handlers.NewCheckHandler(deps.AnalysisService, deps.History)
	historyHandler := handlers.NewHistoryHandler(deps.History)
	viewHandler := handlers.NewViewHandler(deps.History)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Model)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/check-symptoms", checkHandler)
		r.Get("/history", historyHandler.List)
		r.Get("/query/{id}", historyHandler.Get)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	r.Get("/history/{id}", viewHandler.ServeHTTP)

	return r
}
