package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/meridian/salesreport/internal/domain"
)

// Default artifact names inside the output directory.
const (
	TextReportName   = "sales_report.txt"
	EnrichedFileName = "enriched_sales_data.txt"
	CleanedCSVName   = "cleaned_sales_data.csv"
)

var enrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName", "Quantity",
	"UnitPrice", "Amount", "CustomerID", "Region",
	"Category", "Supplier", "Rating", "ListPrice", "EnrichmentStatus",
}

var cleanedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName", "Quantity",
	"UnitPrice", "Amount", "CustomerID", "Region",
}

// WriteEnriched writes the enriched records in the pipe-delimited export
// format, original columns first, catalog columns appended.
func WriteEnriched(w io.Writer, enriched []domain.EnrichedTransaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = '|'

	if err := cw.Write(enrichedHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range enriched {
		listPrice := ""
		if e.Product.ListPrice != nil {
			listPrice = formatMoney(*e.Product.ListPrice)
		}
		row := append(transactionRow(e.Transaction),
			e.Product.Category,
			e.Product.Supplier,
			strconv.FormatFloat(e.Product.Rating, 'f', 2, 64),
			listPrice,
			string(e.EnrichmentStatus),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCleanedCSV writes the validated (and filtered) transactions as a plain
// comma-separated file.
func WriteCleanedCSV(w io.Writer, txns []domain.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(cleanedHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range txns {
		if err := cw.Write(transactionRow(t)); err != nil {
			return fmt.Errorf("write record %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveAll writes the three run artifacts into dir, creating it if needed,
// and returns the written paths.
func SaveAll(dir string, r domain.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	cleaned := make([]domain.Transaction, len(r.Enriched))
	for i, e := range r.Enriched {
		cleaned[i] = e.Transaction
	}

	writes := []struct {
		name  string
		write func(io.Writer) error
	}{
		{TextReportName, func(w io.Writer) error { return WriteText(w, r) }},
		{EnrichedFileName, func(w io.Writer) error { return WriteEnriched(w, r.Enriched) }},
		{CleanedCSVName, func(w io.Writer) error { return WriteCleanedCSV(w, cleaned) }},
	}

	paths := make([]string, 0, len(writes))
	for _, art := range writes {
		path := filepath.Join(dir, art.name)
		if err := writeFile(path, art.write); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func transactionRow(t domain.Transaction) []string {
	return []string{
		t.ID,
		t.Date.Format(domain.DateOnly),
		t.ProductID,
		t.ProductName,
		strconv.Itoa(t.Quantity),
		formatMoney(t.UnitPrice),
		formatMoney(t.Amount),
		t.CustomerID,
		string(t.Region),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
