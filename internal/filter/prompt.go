package filter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/meridian/salesreport/internal/domain"
)

// Prompt interactively collects optional criteria. It first shows what there
// is to filter on: the regions present in the accepted set and the observed
// amount range. Blank answers mean "no filter" for that dimension. The
// returned criteria still go through ValidateCriteria.
func Prompt(in io.Reader, out io.Writer, accepted []domain.Transaction) (domain.FilterCriteria, error) {
	var criteria domain.FilterCriteria
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Regions present: %s\n", strings.Join(presentRegions(accepted), ", "))
	if lo, hi, ok := amountRange(accepted); ok {
		fmt.Fprintf(out, "Amount range: %.2f to %.2f\n", lo, hi)
	}

	region, err := ask(scanner, out, "Filter by region (blank for all): ")
	if err != nil {
		return criteria, err
	}
	criteria.Region = region

	minStr, err := ask(scanner, out, "Minimum amount (blank for none): ")
	if err != nil {
		return criteria, err
	}
	if criteria.MinAmount, err = parseBound(minStr, "minimum amount"); err != nil {
		return criteria, err
	}

	maxStr, err := ask(scanner, out, "Maximum amount (blank for none): ")
	if err != nil {
		return criteria, err
	}
	if criteria.MaxAmount, err = parseBound(maxStr, "maximum amount"); err != nil {
		return criteria, err
	}

	return criteria, nil
}

func ask(scanner *bufio.Scanner, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
		return "", nil // EOF means "no answer"
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func parseBound(s, name string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q is not a number", ErrBadCriteria, name, s)
	}
	return &v, nil
}

func presentRegions(txns []domain.Transaction) []string {
	seen := make(map[domain.Region]bool)
	for _, t := range txns {
		seen[t.Region] = true
	}
	var regions []string
	for _, r := range domain.Regions {
		if seen[r] {
			regions = append(regions, string(r))
		}
	}
	if len(regions) == 0 {
		return []string{"(none)"}
	}
	return regions
}

func amountRange(txns []domain.Transaction) (lo, hi float64, ok bool) {
	for i, t := range txns {
		if i == 0 || t.Amount < lo {
			lo = t.Amount
		}
		if i == 0 || t.Amount > hi {
			hi = t.Amount
		}
	}
	return lo, hi, len(txns) > 0
}
