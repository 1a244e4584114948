package filter

import (
	"errors"
	"fmt"

	"github.com/meridian/salesreport/internal/domain"
)

// ErrBadCriteria marks malformed filter criteria. Runs are refused rather
// than silently proceeding unfiltered; callers translate this into an exit
// code or a 400.
var ErrBadCriteria = errors.New("invalid filter criteria")

// ValidateCriteria rejects criteria that can never match anything sensible.
func ValidateCriteria(c domain.FilterCriteria) error {
	if c.Region != "" && !domain.KnownRegion(c.Region) {
		return fmt.Errorf("%w: unknown region %q", ErrBadCriteria, c.Region)
	}
	if c.MinAmount != nil && c.MaxAmount != nil && *c.MinAmount > *c.MaxAmount {
		return fmt.Errorf("%w: min amount %.2f exceeds max amount %.2f",
			ErrBadCriteria, *c.MinAmount, *c.MaxAmount)
	}
	return nil
}

// Apply subsets the accepted transactions by the given criteria, preserving
// the original relative order. An empty result is valid. Criteria must have
// passed ValidateCriteria first.
func Apply(txns []domain.Transaction, c domain.FilterCriteria) ([]domain.Transaction, domain.FilterSummary) {
	summary := domain.FilterSummary{
		Input:  len(txns),
		Output: len(txns),
	}
	if c.IsZero() {
		return txns, summary
	}
	summary.Applied = true

	kept := txns
	if c.Region != "" {
		var byRegion []domain.Transaction
		for _, t := range kept {
			if t.Region == domain.Region(c.Region) {
				byRegion = append(byRegion, t)
			}
		}
		summary.RemovedByRegion = len(kept) - len(byRegion)
		kept = byRegion
	}

	if c.MinAmount != nil || c.MaxAmount != nil {
		var byAmount []domain.Transaction
		for _, t := range kept {
			if c.MinAmount != nil && t.Amount < *c.MinAmount {
				continue
			}
			if c.MaxAmount != nil && t.Amount > *c.MaxAmount {
				continue
			}
			byAmount = append(byAmount, t)
		}
		summary.RemovedByAmount = len(kept) - len(byAmount)
		kept = byAmount
	}

	summary.Output = len(kept)
	return kept, summary
}
