package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meridian/salesreport/internal/analytics"
	"github.com/meridian/salesreport/internal/domain"
	"github.com/meridian/salesreport/internal/enrichment"
	"github.com/meridian/salesreport/internal/filter"
	"github.com/meridian/salesreport/internal/report"
	"github.com/meridian/salesreport/internal/validation"
)

// ProductFetcher is the external catalog collaborator. It may resolve only a
// subset of the requested ids; a total failure surfaces as an error and the
// pipeline degrades to an empty mapping instead of aborting.
type ProductFetcher interface {
	FetchProductInfo(ctx context.Context, productIDs []string) (map[string]domain.ProductInfo, error)
}

// Service runs the full single-pass pipeline:
// validate -> optional filter -> analytics + enrichment -> report.
// Every stage consumes immutable inputs and produces a new structure, so a
// run can be repeated on the same input with identical results.
type Service struct {
	validator *validation.Validator
	engine    *analytics.Engine
	fetcher   ProductFetcher
	log       zerolog.Logger
}

// NewService wires the pipeline stages together.
func NewService(validator *validation.Validator, engine *analytics.Engine, fetcher ProductFetcher, log zerolog.Logger) *Service {
	return &Service{
		validator: validator,
		engine:    engine,
		fetcher:   fetcher,
		log:       log,
	}
}

// Run processes one raw record sequence under the given criteria. Malformed
// criteria are the only error: record-level problems become rejections and a
// catalog outage degrades to all-UNMATCHED, neither fails the run.
func (s *Service) Run(ctx context.Context, records []domain.RawRecord, criteria domain.FilterCriteria) (domain.Report, error) {
	if err := filter.ValidateCriteria(criteria); err != nil {
		return domain.Report{}, fmt.Errorf("refusing run: %w", err)
	}

	outcome := s.validator.Validate(records)
	s.log.Info().
		Int("input", outcome.Summary.Input).
		Int("accepted", outcome.Summary.Accepted).
		Int("rejected", outcome.Summary.Rejected).
		Msg("validation complete")

	accepted, filterSummary := filter.Apply(outcome.Accepted, criteria)
	if filterSummary.Applied {
		s.log.Info().
			Int("kept", filterSummary.Output).
			Int("removed_by_region", filterSummary.RemovedByRegion).
			Int("removed_by_amount", filterSummary.RemovedByAmount).
			Msg("filter applied")
	}

	summary := s.engine.Summarize(accepted, outcome.Summary.Rejected)

	catalog, sourceNote := s.fetchCatalog(ctx, accepted)
	enriched, enrichSummary := enrichment.Enrich(accepted, catalog)
	enrichSummary.SourceNote = sourceNote

	return report.Build(report.Inputs{
		RunID:            uuid.NewString(),
		GeneratedAt:      time.Now().UTC(),
		RecordsProcessed: len(records),
		Validation:       outcome.Summary,
		Rejections:       outcome.Rejected,
		Filter:           &filterSummary,
		Analytics:        summary,
		Enrichment:       enrichSummary,
		Enriched:         enriched,
	}), nil
}

// fetchCatalog resolves product info for the accepted set. A fetch failure is
// recovered locally: empty mapping, note in the summary, run continues.
func (s *Service) fetchCatalog(ctx context.Context, accepted []domain.Transaction) (map[string]domain.ProductInfo, string) {
	ids := distinctProductIDs(accepted)
	if len(ids) == 0 || s.fetcher == nil {
		return map[string]domain.ProductInfo{}, ""
	}

	catalog, err := s.fetcher.FetchProductInfo(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Msg("catalog unavailable, continuing unenriched")
		return map[string]domain.ProductInfo{}, "catalog source unavailable: " + err.Error()
	}
	return catalog, ""
}

// distinctProductIDs preserves first-appearance order.
func distinctProductIDs(txns []domain.Transaction) []string {
	seen := make(map[string]bool, len(txns))
	var ids []string
	for _, t := range txns {
		if !seen[t.ProductID] {
			seen[t.ProductID] = true
			ids = append(ids, t.ProductID)
		}
	}
	return ids
}
