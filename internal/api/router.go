package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/meridian/salesreport/internal/pipeline"
	"github.com/meridian/salesreport/internal/repository"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(
	pipelineSvc *pipeline.Service,
	runRepo *repository.RunRepo,
	txnRepo *repository.TransactionRepo,
	rejRepo *repository.RejectionRepo,
	enrRepo *repository.EnrichedRepo,
	log zerolog.Logger,
) http.Handler {
	h := &Handlers{
		pipelineSvc: pipelineSvc,
		runRepo:     runRepo,
		txnRepo:     txnRepo,
		rejRepo:     rejRepo,
		enrRepo:     enrRepo,
		log:         log,
	}

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		// Pipeline runs.
		r.Post("/runs", h.RunPipeline)
		r.Get("/report", h.GetReport)

		// Stored run records.
		r.Get("/transactions", h.ListTransactions)
		r.Get("/rejections", h.ListRejections)
		r.Get("/enriched", h.ListEnriched)

		// Dashboard.
		r.Get("/dashboard", h.GetDashboard)
	})

	return r
}
