package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

type product struct {
	id    string
	name  string
	price float64
}

var products = []product{
	{"P1", "Essence Mascara Lash Princess", 9.99},
	{"P2", "Eyeshadow Palette with Mirror", 19.99},
	{"P5", "Red Nail Polish", 8.99},
	{"P9", "Dior J'adore", 89.99},
	{"P11", "Annibale Colombo Bed", 1899.99},
	{"P16", "Apple", 1.99},
	{"P30", "Kiwi", 2.49},
	{"P77", "Laptop Sleeve", 24.99},
	{"P404", "Legacy Widget", 49.50}, // outside the catalog, stays unmatched
}

var regions = []string{"North", "South", "East", "West"}

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	// Date range: 2024-11-01 to 2024-12-15.
	startDate := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)
	dayRange := int(endDate.Sub(startDate).Hours() / 24)

	filePath := filepath.Join(baseDir, "sales_data.txt")
	f, err := os.Create(filePath)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '|'
	defer w.Flush()

	w.Write([]string{
		"TransactionID", "Date", "ProductID", "ProductName",
		"Quantity", "UnitPrice", "Amount", "CustomerID", "Region",
	})

	count := 0
	for i := 1; i <= 90; i++ {
		p := products[rng.Intn(len(products))]
		qty := rng.Intn(8) + 1
		amount := math.Round(float64(qty)*p.price*100) / 100
		date := startDate.AddDate(0, 0, rng.Intn(dayRange))

		w.Write([]string{
			fmt.Sprintf("T%03d", i),
			date.Format("2006-01-02"),
			p.id,
			p.name,
			fmt.Sprintf("%d", qty),
			fmt.Sprintf("%.2f", p.price),
			fmt.Sprintf("%.2f", amount),
			fmt.Sprintf("C%03d", rng.Intn(25)+1),
			regions[rng.Intn(len(regions))],
		})
		count++
	}

	// One bad row per rule so a single file exercises the whole validator.
	bad := [][]string{
		{"T091", "2024-11-12", "P5", "Red Nail Polish", "-2", "8.99", "-17.98", "C003", "North"},
		{"T092", "2024-11-13", "P2", "Eyeshadow Palette with Mirror", "3", "-19.99", "", "C004", "South"},
		{"T093", "2024-11-14", "P1", "Essence Mascara Lash Princess", "2", "9.99", "99.99", "C005", "East"},
		{"T094", "2024-11-15", "P9", "Dior J'adore", "1", "89.99", "89.99", "C006", "Midlands"},
		{"T095", "31-11-2024", "P16", "Apple", "4", "1.99", "7.96", "C007", "West"},
		{"T096", "2031-01-01", "P30", "Kiwi", "2", "2.49", "4.98", "C008", "North"},
		{"X097", "2024-11-18", "P77", "Laptop Sleeve", "1", "24.99", "24.99", "C009", "South"},
		{"T098", "2024-11-19", "Q77", "Laptop Sleeve", "1", "24.99", "24.99", "C010", "East"},
		{"T099", "2024-11-20", "P77", "Laptop Sleeve", "1", "24.99", "24.99", "K011", "West"},
		{"T100", "", "P77", "Laptop Sleeve", "1", "24.99", "24.99", "C012", "North"},
	}
	for _, row := range bad {
		w.Write(row)
		count++
	}

	fmt.Printf("Generated %d sales records -> sales_data.txt\n", count)
}

func findTestdataDir() string {
	// Look for the testdata directory relative to common locations.
	candidates := []string{
		"testdata",
		"./testdata",
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	// Fallback.
	return "testdata"
}
