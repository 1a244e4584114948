package domain

import (
	"math"
	"time"
)

type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

// Regions lists the recognized sales territories in display order.
var Regions = []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}

// KnownRegion reports whether r is a member of the recognized region set.
func KnownRegion(r string) bool {
	for _, known := range Regions {
		if Region(r) == known {
			return true
		}
	}
	return false
}

// PriceTolerance is the relative deviation allowed before two money values
// are considered inconsistent. It is applied uniformly: the validator uses it
// to check amount against quantity*unit price, the enricher uses it to compare
// the catalog list price against the transaction's unit price.
const PriceTolerance = 0.01

// priceToleranceAbs keeps the relative check meaningful near zero.
const priceToleranceAbs = 0.01

// WithinTolerance reports whether actual deviates from expected by no more
// than the shared tolerance.
func WithinTolerance(expected, actual float64) bool {
	limit := math.Abs(expected) * PriceTolerance
	if limit < priceToleranceAbs {
		limit = priceToleranceAbs
	}
	return math.Abs(actual-expected) <= limit
}

// DateOnly is the calendar-date layout used by the source file, the trend
// buckets and the report.
const DateOnly = "2006-01-02"

// RawRecord is one line of the source file split into columns but otherwise
// untouched. Field-level problems are for the validator to report, so every
// column stays a string here.
type RawRecord struct {
	Line          int    `json:"line"`
	TransactionID string `json:"transaction_id"`
	Date          string `json:"date"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      string `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	Amount        string `json:"amount"`
	CustomerID    string `json:"customer_id"`
	Region        string `json:"region"`
}

// Transaction is an accepted sales record with typed fields. Amount is always
// present and consistent with Quantity*UnitPrice within PriceTolerance; the
// validator derives it when the source column is empty.
type Transaction struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	CustomerID  string    `json:"customer_id"`
	Region      Region    `json:"region"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	Amount      float64   `json:"amount"`
}
