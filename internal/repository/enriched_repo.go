package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/meridian/salesreport/internal/domain"
)

// EnrichedRepo reads the stored run's enriched transactions.
type EnrichedRepo struct {
	db *sql.DB
}

func NewEnrichedRepo(db *sql.DB) *EnrichedRepo {
	return &EnrichedRepo{db: db}
}

// List returns enriched transactions, optionally restricted to one
// enrichment status.
func (r *EnrichedRepo) List(status string) ([]domain.EnrichedTransaction, error) {
	query := `
		SELECT t.id, t.date, t.product_id, t.product_name, t.customer_id,
		       t.region, t.quantity, t.unit_price, t.amount,
		       e.status, e.title, e.category, e.supplier, e.rating,
		       e.list_price, e.list_price_delta
		FROM enriched e
		JOIN transactions t ON t.id = e.transaction_id
	`
	var args []any
	if status != "" {
		query += " WHERE e.status = ?"
		args = append(args, status)
	}
	query += " ORDER BY t.date, t.id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var result []domain.EnrichedTransaction
	for rows.Next() {
		e, err := scanEnriched(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetSummary recounts match outcomes from the stored rows.
func (r *EnrichedRepo) GetSummary() (domain.EnrichmentSummary, error) {
	var s domain.EnrichmentSummary
	err := r.db.QueryRow(`
		SELECT
			COALESCE(SUM(CASE WHEN status = 'MATCHED' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'UNMATCHED' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'CONFLICTING' THEN 1 ELSE 0 END), 0)
		FROM enriched
	`).Scan(&s.Matched, &s.Unmatched, &s.Conflicting)
	return s, err
}

func scanEnriched(rows *sql.Rows) (domain.EnrichedTransaction, error) {
	var e domain.EnrichedTransaction
	var date, region, status string
	var listPrice sql.NullFloat64

	err := rows.Scan(
		&e.ID, &date, &e.ProductID, &e.ProductName, &e.CustomerID,
		&region, &e.Quantity, &e.UnitPrice, &e.Amount,
		&status, &e.Product.Title, &e.Product.Category, &e.Product.Supplier,
		&e.Product.Rating, &listPrice, &e.ListPriceDelta,
	)
	if err != nil {
		return e, err
	}

	e.Region = domain.Region(region)
	e.EnrichmentStatus = domain.EnrichmentStatus(status)
	e.Product.ProductID = e.ProductID
	if listPrice.Valid {
		v := listPrice.Float64
		e.Product.ListPrice = &v
	}
	e.Date, err = time.Parse(domain.DateOnly, date)
	if err != nil {
		return e, fmt.Errorf("parse date %q: %w", date, err)
	}
	return e, nil
}
