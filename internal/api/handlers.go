package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/meridian/salesreport/internal/domain"
	"github.com/meridian/salesreport/internal/filter"
	"github.com/meridian/salesreport/internal/ingestion"
	"github.com/meridian/salesreport/internal/pipeline"
	"github.com/meridian/salesreport/internal/repository"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	pipelineSvc *pipeline.Service
	runRepo     *repository.RunRepo
	txnRepo     *repository.TransactionRepo
	rejRepo     *repository.RejectionRepo
	enrRepo     *repository.EnrichedRepo
	log         zerolog.Logger
}

// --- helpers ---

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

func parseBound(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// --- RunPipeline ---

// RunPipeline ingests an uploaded sales export, runs the full pipeline with
// the optional criteria from the form fields, stores the run and returns the
// report.
func (h *Handlers) RunPipeline(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	criteria := domain.FilterCriteria{Region: r.FormValue("region")}
	if criteria.MinAmount, err = parseBound(r.FormValue("min_amount")); err != nil {
		h.writeError(w, http.StatusBadRequest, "min_amount is not a number")
		return
	}
	if criteria.MaxAmount, err = parseBound(r.FormValue("max_amount")); err != nil {
		h.writeError(w, http.StatusBadRequest, "max_amount is not a number")
		return
	}

	records, err := ingestion.Read(file)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, "parse sales file: "+err.Error())
		return
	}

	report, err := h.pipelineSvc.Run(r.Context(), records, criteria)
	if err != nil {
		if errors.Is(err, filter.ErrBadCriteria) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.runRepo.Store(report); err != nil {
		h.log.Error().Err(err).Str("run_id", report.RunID).Msg("store run")
		h.writeError(w, http.StatusInternalServerError, "store run: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

// --- GetReport ---

func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.runRepo.LatestReport()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "no run stored yet")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

// --- ListTransactions ---

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	minAmount, err := parseBound(q.Get("min_amount"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "min_amount is not a number")
		return
	}
	maxAmount, err := parseBound(q.Get("max_amount"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "max_amount is not a number")
		return
	}

	f := repository.TransactionFilter{
		Region:     q.Get("region"),
		ProductID:  q.Get("product_id"),
		CustomerID: q.Get("customer_id"),
		MinAmount:  minAmount,
		MaxAmount:  maxAmount,
		Page:       parseIntDefault(q.Get("page"), 1),
		Limit:      parseIntDefault(q.Get("limit"), 50),
	}

	txns, total, err := h.txnRepo.List(f)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txns,
		"total":        total,
		"page":         f.Page,
		"limit":        f.Limit,
	})
}

// --- ListRejections ---

func (h *Handlers) ListRejections(w http.ResponseWriter, r *http.Request) {
	rejections, err := h.rejRepo.List(r.URL.Query().Get("rule"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"rejections": rejections,
		"total":      len(rejections),
	})
}

// --- ListEnriched ---

func (h *Handlers) ListEnriched(w http.ResponseWriter, r *http.Request) {
	enriched, err := h.enrRepo.List(r.URL.Query().Get("status"))
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"enriched": enriched,
		"total":    len(enriched),
	})
}

// --- GetDashboard ---

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.runRepo.LatestReport()
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.writeError(w, http.StatusNotFound, "no run stored yet")
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	regions, err := h.txnRepo.GetVolumeByRegion()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	enrichSummary, err := h.enrRepo.GetSummary()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"run_id":       report.RunID,
		"generated_at": report.GeneratedAt,
		"records": map[string]int{
			"processed": report.RecordsProcessed,
			"accepted":  report.Validation.Accepted,
			"rejected":  report.Validation.Rejected,
		},
		"revenue": map[string]any{
			"total":           report.Analytics.TotalRevenue,
			"avg_order_value": report.Analytics.AvgOrderValue,
		},
		"by_region":  regions,
		"enrichment": enrichSummary,
	})
}
