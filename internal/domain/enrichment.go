package domain

type EnrichmentStatus string

const (
	EnrichmentMatched     EnrichmentStatus = "MATCHED"
	EnrichmentUnmatched   EnrichmentStatus = "UNMATCHED"
	EnrichmentConflicting EnrichmentStatus = "CONFLICTING"
)

// UnknownField is the placeholder used for catalog fields of an UNMATCHED
// record, so downstream consumers never have to branch on nulls.
const UnknownField = "unknown"

// ProductInfo is the normalized shape of one external catalog entry. The
// catalog client converts whatever the remote API returns into this before
// the enricher ever sees it.
type ProductInfo struct {
	ProductID string   `json:"product_id"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	Supplier  string   `json:"supplier"`
	Rating    float64  `json:"rating,omitempty"`
	ListPrice *float64 `json:"list_price,omitempty"`
}

// UnknownProduct returns the placeholder ProductInfo for an unmatched id.
func UnknownProduct(productID string) ProductInfo {
	return ProductInfo{
		ProductID: productID,
		Title:     UnknownField,
		Category:  UnknownField,
		Supplier:  UnknownField,
	}
}

// EnrichedTransaction is an accepted transaction plus its catalog match.
// ListPriceDelta is only set for CONFLICTING records (catalog list price minus
// the transaction's unit price); the transaction's own price remains the
// source of truth for analytics either way.
type EnrichedTransaction struct {
	Transaction
	EnrichmentStatus EnrichmentStatus `json:"enrichment_status"`
	Product          ProductInfo      `json:"product"`
	ListPriceDelta   float64          `json:"list_price_delta,omitempty"`
}

// EnrichmentSummary counts match outcomes for a run. SourceNote is set when
// the catalog fetch failed and the run degraded to an empty mapping.
type EnrichmentSummary struct {
	Matched     int    `json:"matched"`
	Unmatched   int    `json:"unmatched"`
	Conflicting int    `json:"conflicting"`
	SourceNote  string `json:"source_note,omitempty"`
}
