package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegionStat aggregates accepted transactions for one region.
type RegionStat struct {
	Region       Region          `json:"region"`
	Count        int             `json:"transaction_count"`
	Revenue      decimal.Decimal `json:"revenue"`
	ShareOfTotal float64         `json:"share_of_total_pct"`
}

// ProductStat aggregates accepted transactions for one product.
type ProductStat struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// CustomerStat aggregates purchases for one customer.
type CustomerStat struct {
	CustomerID    string          `json:"customer_id"`
	Orders        int             `json:"orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	Products      []string        `json:"products"`
}

// TrendPoint is one bucket of the revenue trend. Bucket is "2006-01" for the
// monthly series and "2006-01-02" for the daily one; points sort ascending by
// that key.
type TrendPoint struct {
	Bucket          string          `json:"bucket"`
	Count           int             `json:"transaction_count"`
	Revenue         decimal.Decimal `json:"revenue"`
	UniqueCustomers int             `json:"unique_customers,omitempty"`
}

// AnalyticsSummary is the full analytics output for one run. It is computed
// once from the (optionally filtered) accepted set and never mutated after.
// All slices are sorted deterministically, so identical inputs produce
// identical summaries.
type AnalyticsSummary struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalQuantity int             `json:"total_quantity"`
	AcceptedCount int             `json:"accepted_count"`
	RejectedCount int             `json:"rejected_count"`
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
	FirstDate     string          `json:"first_date,omitempty"`
	LastDate      string          `json:"last_date,omitempty"`

	ByRegion   []RegionStat   `json:"by_region"`
	ByProduct  []ProductStat  `json:"by_product"`
	ByCustomer []CustomerStat `json:"by_customer"`

	MonthlyTrend []TrendPoint `json:"monthly_trend"`
	DailyTrend   []TrendPoint `json:"daily_trend"`
	PeakDay      *TrendPoint  `json:"peak_day,omitempty"`

	TopProducts []ProductStat `json:"top_products"`
	LowProducts []ProductStat `json:"low_performing_products"`
}

// Report is the consolidated run output handed to the writers and the API.
// The builder only assembles and orders values produced upstream; nothing in
// here is recomputed.
type Report struct {
	RunID            string    `json:"run_id"`
	GeneratedAt      time.Time `json:"generated_at"`
	RecordsProcessed int       `json:"records_processed"`
	NoData           bool      `json:"no_data,omitempty"`

	Validation ValidationSummary  `json:"validation"`
	Rejections []ValidationResult `json:"rejections,omitempty"`
	Filter     *FilterSummary     `json:"filter,omitempty"`
	Analytics  AnalyticsSummary   `json:"analytics"`
	Enrichment EnrichmentSummary  `json:"enrichment"`
	Enriched   []EnrichedTransaction `json:"enriched_transactions"`
}
