package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/meridian/salesreport/internal/domain"
)

// TransactionRepo reads the stored run's accepted transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

type TransactionFilter struct {
	Region     string
	ProductID  string
	CustomerID string
	MinAmount  *float64
	MaxAmount  *float64
	Page       int
	Limit      int
}

// List returns a page of transactions plus the total match count.
func (r *TransactionRepo) List(f TransactionFilter) ([]domain.Transaction, int, error) {
	where, args := buildTransactionWhere(f)

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	offset := (f.Page - 1) * f.Limit

	query := `SELECT id, date, product_id, product_name, customer_id, region,
		quantity, unit_price, amount FROM transactions` + where +
		" ORDER BY date, id LIMIT ? OFFSET ?"
	args = append(args, f.Limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, total, rows.Err()
}

func (r *TransactionRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}

// RegionVolume is one row of the by-region rollup used by the dashboard.
type RegionVolume struct {
	Region  string  `json:"region"`
	Count   int     `json:"transaction_count"`
	Revenue float64 `json:"revenue"`
}

func (r *TransactionRepo) GetVolumeByRegion() ([]RegionVolume, error) {
	rows, err := r.db.Query(`
		SELECT region, COUNT(*), COALESCE(SUM(amount), 0)
		FROM transactions GROUP BY region ORDER BY SUM(amount) DESC, region
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RegionVolume
	for rows.Next() {
		var rv RegionVolume
		if err := rows.Scan(&rv.Region, &rv.Count, &rv.Revenue); err != nil {
			return nil, err
		}
		result = append(result, rv)
	}
	return result, rows.Err()
}

func buildTransactionWhere(f TransactionFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.Region != "" {
		clauses = append(clauses, "region = ?")
		args = append(args, f.Region)
	}
	if f.ProductID != "" {
		clauses = append(clauses, "product_id = ?")
		args = append(args, f.ProductID)
	}
	if f.CustomerID != "" {
		clauses = append(clauses, "customer_id = ?")
		args = append(args, f.CustomerID)
	}
	if f.MinAmount != nil {
		clauses = append(clauses, "amount >= ?")
		args = append(args, *f.MinAmount)
	}
	if f.MaxAmount != nil {
		clauses = append(clauses, "amount <= ?")
		args = append(args, *f.MaxAmount)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanTransaction(rows *sql.Rows) (domain.Transaction, error) {
	var t domain.Transaction
	var date, region string

	err := rows.Scan(
		&t.ID, &date, &t.ProductID, &t.ProductName, &t.CustomerID,
		&region, &t.Quantity, &t.UnitPrice, &t.Amount,
	)
	if err != nil {
		return t, err
	}

	t.Region = domain.Region(region)
	t.Date, err = time.Parse(domain.DateOnly, date)
	if err != nil {
		return t, fmt.Errorf("parse date %q: %w", date, err)
	}
	return t, nil
}
