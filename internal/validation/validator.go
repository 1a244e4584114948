package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/meridian/salesreport/internal/domain"
)

// Outcome partitions one validation pass. Every input record lands in exactly
// one of Accepted or Rejected; Results keeps the full per-record trail in
// input order.
type Outcome struct {
	Accepted []domain.Transaction
	Rejected []domain.ValidationResult
	Results  []domain.ValidationResult
	Summary  domain.ValidationSummary
}

// Validator applies the business rules to raw records. Malformed fields are
// rule violations, never errors: Validate cannot fail and never mutates its
// input.
type Validator struct {
	now func() time.Time
}

// New creates a validator using the wall clock for the future-date rule.
func New() *Validator {
	return NewWithClock(time.Now)
}

// NewWithClock creates a validator with a fixed clock, used by tests.
func NewWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Validate checks every record against the full rule set and partitions the
// input. A record failing any rule is rejected with all failing rules
// recorded in precedence order, not just the first.
func (v *Validator) Validate(records []domain.RawRecord) Outcome {
	out := Outcome{
		Results: make([]domain.ValidationResult, 0, len(records)),
	}
	reasons := make(map[domain.RuleID]int)

	for _, rec := range records {
		txn, violations := v.check(rec)

		result := domain.ValidationResult{
			Line:          rec.Line,
			TransactionID: rec.TransactionID,
			Status:        domain.StatusAccepted,
		}
		if len(violations) > 0 {
			result.Status = domain.StatusRejected
			result.Violations = violations
			for _, rule := range violations {
				reasons[rule]++
			}
			out.Rejected = append(out.Rejected, result)
		} else {
			out.Accepted = append(out.Accepted, txn)
		}
		out.Results = append(out.Results, result)
	}

	out.Summary = domain.ValidationSummary{
		Input:    len(records),
		Accepted: len(out.Accepted),
		Rejected: len(out.Rejected),
		Reasons:  histogram(reasons),
	}
	return out
}

// check evaluates one record. The returned transaction is only meaningful
// when the violation list is empty.
func (v *Validator) check(rec domain.RawRecord) (domain.Transaction, []domain.RuleID) {
	var violations []domain.RuleID
	add := func(rule domain.RuleID) { violations = append(violations, rule) }

	if rec.TransactionID == "" || rec.Date == "" || rec.Region == "" ||
		rec.ProductID == "" || rec.Quantity == "" || rec.UnitPrice == "" ||
		rec.CustomerID == "" {
		add(domain.RuleMissingField)
	}

	quantity, qtyOK := parseQuantity(rec.Quantity)
	if rec.Quantity != "" && (!qtyOK || quantity <= 0) {
		add(domain.RuleQuantityNotPositive)
	}

	unitPrice, priceOK := parseMoney(rec.UnitPrice)
	if rec.UnitPrice != "" && (!priceOK || unitPrice < 0) {
		add(domain.RuleUnitPriceNegative)
	}

	// Amount is derived when absent; when present it must agree with
	// quantity*unit price. The check needs both operands, so a record with a
	// broken quantity or price is rejected for those, not for the amount.
	amount := float64(quantity) * unitPrice
	if rec.Amount != "" {
		given, ok := parseMoney(rec.Amount)
		if !ok {
			add(domain.RuleAmountInconsistent)
		} else if qtyOK && priceOK && quantity > 0 && unitPrice >= 0 {
			if !domain.WithinTolerance(amount, given) {
				add(domain.RuleAmountInconsistent)
			} else {
				amount = given
			}
		}
	}

	if rec.Region != "" && !domain.KnownRegion(rec.Region) {
		add(domain.RuleUnknownRegion)
	}

	date, dateErr := time.Parse(domain.DateOnly, rec.Date)
	if rec.Date != "" {
		if dateErr != nil {
			add(domain.RuleInvalidDate)
		} else if date.After(v.today()) {
			add(domain.RuleFutureDate)
		}
	}

	if rec.TransactionID != "" && !strings.HasPrefix(rec.TransactionID, "T") {
		add(domain.RuleTxnIDFormat)
	}
	if rec.ProductID != "" && !strings.HasPrefix(rec.ProductID, "P") {
		add(domain.RuleProductIDFormat)
	}
	if rec.CustomerID != "" && !strings.HasPrefix(rec.CustomerID, "C") {
		add(domain.RuleCustomerIDFormat)
	}

	if len(violations) > 0 {
		return domain.Transaction{}, violations
	}

	return domain.Transaction{
		ID:          rec.TransactionID,
		Date:        date,
		ProductID:   rec.ProductID,
		ProductName: rec.ProductName,
		CustomerID:  rec.CustomerID,
		Region:      domain.Region(rec.Region),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      amount,
	}, nil
}

// today is midnight of the current processing day. Parsed dates are midnight
// too, so anything after it is tomorrow or later.
func (v *Validator) today() time.Time {
	now := v.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseQuantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n, err == nil
}

// parseMoney parses a money field, tolerating thousands separators from
// legacy exports ("45,000.50").
func parseMoney(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	return f, err == nil
}

// histogram orders reason counts by rule precedence, dropping empty rows.
func histogram(reasons map[domain.RuleID]int) []domain.ReasonCount {
	var rows []domain.ReasonCount
	for _, rule := range domain.RulePrecedence {
		if n := reasons[rule]; n > 0 {
			rows = append(rows, domain.ReasonCount{Rule: rule, Count: n})
		}
	}
	return rows
}
