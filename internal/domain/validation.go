package domain

type ValidationStatus string

const (
	StatusAccepted ValidationStatus = "ACCEPTED"
	StatusRejected ValidationStatus = "REJECTED"
)

// RuleID identifies a business rule a record can violate. The declaration
// order below is the rule precedence: when a record breaks several rules, the
// first-declared one leads its violation list.
type RuleID string

const (
	RuleMissingField        RuleID = "MISSING_FIELD"
	RuleQuantityNotPositive RuleID = "QUANTITY_NOT_POSITIVE"
	RuleUnitPriceNegative   RuleID = "UNIT_PRICE_NEGATIVE"
	RuleAmountInconsistent  RuleID = "AMOUNT_INCONSISTENT"
	RuleUnknownRegion       RuleID = "UNKNOWN_REGION"
	RuleInvalidDate         RuleID = "INVALID_DATE"
	RuleFutureDate          RuleID = "FUTURE_DATE"
	RuleTxnIDFormat         RuleID = "TXN_ID_FORMAT"
	RuleProductIDFormat     RuleID = "PRODUCT_ID_FORMAT"
	RuleCustomerIDFormat    RuleID = "CUSTOMER_ID_FORMAT"
)

// RulePrecedence is the full rule set in precedence order.
var RulePrecedence = []RuleID{
	RuleMissingField,
	RuleQuantityNotPositive,
	RuleUnitPriceNegative,
	RuleAmountInconsistent,
	RuleUnknownRegion,
	RuleInvalidDate,
	RuleFutureDate,
	RuleTxnIDFormat,
	RuleProductIDFormat,
	RuleCustomerIDFormat,
}

// ValidationResult tags one raw record as accepted or rejected. Rejected
// records carry every violated rule, ordered by precedence, so the rejection
// report is complete rather than first-failure-only.
type ValidationResult struct {
	Line          int              `json:"line"`
	TransactionID string           `json:"transaction_id,omitempty"`
	Status        ValidationStatus `json:"status"`
	Violations    []RuleID         `json:"violations,omitempty"`
}

// ReasonCount is one row of the rejection-reasons histogram.
type ReasonCount struct {
	Rule  RuleID `json:"rule"`
	Count int    `json:"count"`
}

// ValidationSummary covers a whole validation pass.
// Input = Accepted + Rejected always holds.
type ValidationSummary struct {
	Input    int           `json:"input"`
	Accepted int           `json:"accepted"`
	Rejected int           `json:"rejected"`
	Reasons  []ReasonCount `json:"reasons,omitempty"`
}
