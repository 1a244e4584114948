package report

import (
	"time"

	"github.com/meridian/salesreport/internal/domain"
)

// Inputs carries everything the builder assembles. Each field is produced by
// exactly one upstream component and arrives here immutable.
type Inputs struct {
	RunID            string
	GeneratedAt      time.Time
	RecordsProcessed int
	Validation       domain.ValidationSummary
	Rejections       []domain.ValidationResult
	Filter           *domain.FilterSummary
	Analytics        domain.AnalyticsSummary
	Enrichment       domain.EnrichmentSummary
	Enriched         []domain.EnrichedTransaction
}

// Build assembles the consolidated report. It is a pure function of its
// inputs: nothing is recomputed or re-derived here, the builder only composes
// and orders what the validator, engine and enricher already produced.
func Build(in Inputs) domain.Report {
	return domain.Report{
		RunID:            in.RunID,
		GeneratedAt:      in.GeneratedAt,
		RecordsProcessed: in.RecordsProcessed,
		NoData:           in.Analytics.AcceptedCount == 0,
		Validation:       in.Validation,
		Rejections:       in.Rejections,
		Filter:           in.Filter,
		Analytics:        in.Analytics,
		Enrichment:       in.Enrichment,
		Enriched:         in.Enriched,
	}
}
