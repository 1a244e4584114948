package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meridian/salesreport/internal/domain"
)

// The sales export is pipe-delimited with this header:
//
//	TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|Amount|CustomerID|Region
//
// Amount may be empty; the validator derives it from quantity and unit price.
const expectedColumns = 9

// ReadFile reads a sales export from disk.
func ReadFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sales file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a pipe-delimited sales export into an ordered RawRecord
// sequence. Only the framing is handled here: blank lines and the header row
// are dropped, rows with too few columns are padded with empty fields so the
// validator can reject them with concrete reasons instead of this reader
// silently discarding data.
func Read(r io.Reader) ([]domain.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = '|'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var records []domain.RawRecord
	lineNum := 0

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if isHeader(row) || isBlank(row) {
			continue
		}

		for len(row) < expectedColumns {
			row = append(row, "")
		}

		records = append(records, domain.RawRecord{
			Line:          lineNum,
			TransactionID: strings.TrimSpace(row[0]),
			Date:          strings.TrimSpace(row[1]),
			ProductID:     strings.TrimSpace(row[2]),
			ProductName:   cleanName(row[3]),
			Quantity:      strings.TrimSpace(row[4]),
			UnitPrice:     strings.TrimSpace(row[5]),
			Amount:        strings.TrimSpace(row[6]),
			CustomerID:    strings.TrimSpace(row[7]),
			Region:        strings.TrimSpace(row[8]),
		})
	}

	return records, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "TransactionID")
}

func isBlank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// cleanName normalizes a product name: legacy exports embed commas that the
// downstream pipe format cannot carry.
func cleanName(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, ",", " ")), " ")
}
