package enrichment

import (
	"github.com/meridian/salesreport/internal/domain"
)

// Enrich joins accepted transactions with the externally fetched catalog.
// It is total: every transaction yields exactly one EnrichedTransaction, for
// any catalog including the empty one (total API miss, all UNMATCHED).
//
// Match policy, using the shared price tolerance:
//   - id in catalog, list price absent or within tolerance of the unit
//     price: MATCHED
//   - id in catalog, list price beyond tolerance: CONFLICTING; the
//     transaction's own price stays authoritative, the delta is surfaced
//   - id not in catalog: UNMATCHED with "unknown" placeholders
func Enrich(txns []domain.Transaction, catalog map[string]domain.ProductInfo) ([]domain.EnrichedTransaction, domain.EnrichmentSummary) {
	enriched := make([]domain.EnrichedTransaction, 0, len(txns))
	var summary domain.EnrichmentSummary

	for _, t := range txns {
		e := domain.EnrichedTransaction{Transaction: t}

		info, ok := catalog[t.ProductID]
		switch {
		case !ok:
			e.EnrichmentStatus = domain.EnrichmentUnmatched
			e.Product = domain.UnknownProduct(t.ProductID)
			summary.Unmatched++
		case info.ListPrice != nil && !domain.WithinTolerance(t.UnitPrice, *info.ListPrice):
			e.EnrichmentStatus = domain.EnrichmentConflicting
			e.Product = info
			e.ListPriceDelta = *info.ListPrice - t.UnitPrice
			summary.Conflicting++
		default:
			e.EnrichmentStatus = domain.EnrichmentMatched
			e.Product = info
			summary.Matched++
		}

		enriched = append(enriched, e)
	}

	return enriched, summary
}
