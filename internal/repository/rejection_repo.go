package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/meridian/salesreport/internal/domain"
)

// RejectionRepo reads the stored run's rejected records.
type RejectionRepo struct {
	db *sql.DB
}

func NewRejectionRepo(db *sql.DB) *RejectionRepo {
	return &RejectionRepo{db: db}
}

// List returns rejections in source order, optionally only those violating
// the given rule.
func (r *RejectionRepo) List(rule string) ([]domain.ValidationResult, error) {
	query := "SELECT line, transaction_id, violations FROM rejections"
	var args []any
	if rule != "" {
		// violations is a comma-joined rule list.
		query += " WHERE ',' || violations || ',' LIKE ?"
		args = append(args, "%,"+rule+",%")
	}
	query += " ORDER BY line"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var result []domain.ValidationResult
	for rows.Next() {
		var rej domain.ValidationResult
		var txnID sql.NullString
		var violations string
		if err := rows.Scan(&rej.Line, &txnID, &violations); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rej.Status = domain.StatusRejected
		rej.TransactionID = txnID.String
		for _, v := range strings.Split(violations, ",") {
			if v != "" {
				rej.Violations = append(rej.Violations, domain.RuleID(v))
			}
		}
		result = append(result, rej)
	}
	return result, rows.Err()
}

func (r *RejectionRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM rejections").Scan(&count)
	return count, err
}
