package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/meridian/salesreport/internal/domain"
)

// RunRepo stores whole pipeline runs. The store holds one run at a time:
// storing a new run replaces the previous one, which is all the single-run
// pipeline needs and keeps the process free of durable state.
type RunRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Store replaces the current run with the given report and its records.
func (r *RunRepo) Store(report domain.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"enriched", "rejections", "transactions", "runs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO runs (id, generated_at, records_processed, report_json)
		 VALUES (?,?,?,?)`,
		report.RunID, report.GeneratedAt.Format(time.RFC3339),
		report.RecordsProcessed, string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err := insertEnriched(tx, report.RunID, report.Enriched); err != nil {
		return err
	}
	if err := insertRejections(tx, report.RunID, report.Rejections); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LatestReport returns the stored report, or sql.ErrNoRows when no run has
// happened yet.
func (r *RunRepo) LatestReport() (*domain.Report, error) {
	var payload string
	err := r.db.QueryRow(
		"SELECT report_json FROM runs ORDER BY generated_at DESC LIMIT 1",
	).Scan(&payload)
	if err != nil {
		return nil, err
	}

	var report domain.Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

func (r *RunRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

func insertEnriched(tx *sql.Tx, runID string, enriched []domain.EnrichedTransaction) error {
	txnStmt, err := tx.Prepare(
		`INSERT INTO transactions
		(id, run_id, date, product_id, product_name, customer_id, region,
		 quantity, unit_price, amount)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare transactions: %w", err)
	}
	defer txnStmt.Close()

	enrStmt, err := tx.Prepare(
		`INSERT INTO enriched
		(transaction_id, run_id, status, title, category, supplier, rating,
		 list_price, list_price_delta)
		VALUES (?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare enriched: %w", err)
	}
	defer enrStmt.Close()

	for i := range enriched {
		e := &enriched[i]
		_, err := txnStmt.Exec(
			e.ID, runID, e.Date.Format(domain.DateOnly), e.ProductID,
			e.ProductName, e.CustomerID, string(e.Region),
			e.Quantity, e.UnitPrice, e.Amount,
		)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", e.ID, err)
		}

		var listPrice any
		if e.Product.ListPrice != nil {
			listPrice = *e.Product.ListPrice
		}
		_, err = enrStmt.Exec(
			e.ID, runID, string(e.EnrichmentStatus), e.Product.Title,
			e.Product.Category, e.Product.Supplier, e.Product.Rating,
			listPrice, e.ListPriceDelta,
		)
		if err != nil {
			return fmt.Errorf("insert enriched %s: %w", e.ID, err)
		}
	}
	return nil
}

func insertRejections(tx *sql.Tx, runID string, rejections []domain.ValidationResult) error {
	stmt, err := tx.Prepare(
		`INSERT INTO rejections (run_id, line, transaction_id, violations)
		 VALUES (?,?,?,?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare rejections: %w", err)
	}
	defer stmt.Close()

	for _, rej := range rejections {
		rules := make([]string, len(rej.Violations))
		for i, v := range rej.Violations {
			rules[i] = string(v)
		}
		if _, err := stmt.Exec(runID, rej.Line, rej.TransactionID, strings.Join(rules, ",")); err != nil {
			return fmt.Errorf("insert rejection line %d: %w", rej.Line, err)
		}
	}
	return nil
}
