package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/salesreport/internal/domain"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(InMemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(v float64) *float64 { return &v }

func storedReport() domain.Report {
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	txn := func(id string, d int, productID, customerID string, region domain.Region, amount float64) domain.Transaction {
		return domain.Transaction{
			ID: id, Date: day(d), ProductID: productID, ProductName: "Widget",
			CustomerID: customerID, Region: region, Quantity: 1,
			UnitPrice: amount, Amount: amount,
		}
	}

	return domain.Report{
		RunID:            "run-1",
		GeneratedAt:      time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		RecordsProcessed: 4,
		Validation:       domain.ValidationSummary{Input: 4, Accepted: 3, Rejected: 1},
		Rejections: []domain.ValidationResult{{
			Line:          5,
			TransactionID: "T004",
			Status:        domain.StatusRejected,
			Violations:    []domain.RuleID{domain.RuleMissingField, domain.RuleUnknownRegion},
		}},
		Analytics: domain.AnalyticsSummary{
			TotalRevenue:  decimal.NewFromInt(175),
			AcceptedCount: 3,
			RejectedCount: 1,
		},
		Enrichment: domain.EnrichmentSummary{Matched: 2, Unmatched: 1},
		Enriched: []domain.EnrichedTransaction{
			{
				Transaction:      txn("T001", 1, "P1", "C001", domain.RegionEast, 25),
				EnrichmentStatus: domain.EnrichmentMatched,
				Product:          domain.ProductInfo{ProductID: "P1", Title: "Widget", Category: "tools", Supplier: "Acme", Rating: 4.5, ListPrice: ptr(25.0)},
			},
			{
				Transaction:      txn("T002", 2, "P2", "C002", domain.RegionWest, 50),
				EnrichmentStatus: domain.EnrichmentMatched,
				Product:          domain.ProductInfo{ProductID: "P2", Title: "Gadget", Category: "tools", Supplier: "Acme", Rating: 4.0, ListPrice: ptr(50.0)},
			},
			{
				Transaction:      txn("T003", 3, "P404", "C001", domain.RegionEast, 100),
				EnrichmentStatus: domain.EnrichmentUnmatched,
				Product:          domain.UnknownProduct("P404"),
			},
		},
	}
}

func TestStoreAndLatestReport(t *testing.T) {
	db := newTestDB(t)
	repo := NewRunRepo(db)

	require.NoError(t, repo.Store(storedReport()))

	got, err := repo.LatestReport()
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 4, got.RecordsProcessed)
	assert.Equal(t, 3, got.Validation.Accepted)
	assert.True(t, got.Analytics.TotalRevenue.Equal(decimal.NewFromInt(175)))
	require.Len(t, got.Enriched, 3)
	assert.Equal(t, domain.EnrichmentMatched, got.Enriched[0].EnrichmentStatus)
}

func TestLatestReportEmptyStore(t *testing.T) {
	repo := NewRunRepo(newTestDB(t))

	_, err := repo.LatestReport()
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStoreReplacesPreviousRun(t *testing.T) {
	db := newTestDB(t)
	repo := NewRunRepo(db)

	require.NoError(t, repo.Store(storedReport()))

	second := storedReport()
	second.RunID = "run-2"
	require.NoError(t, repo.Store(second))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "the store holds one run at a time")

	got, err := repo.LatestReport()
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
}

func TestTransactionList(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewRunRepo(db).Store(storedReport()))
	repo := NewTransactionRepo(db)

	txns, total, err := repo.List(TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, txns, 3)
	assert.Equal(t, "T001", txns[0].ID, "ordered by date")
	assert.Equal(t, domain.RegionEast, txns[0].Region)
	assert.Equal(t, "2024-06-01", txns[0].Date.Format(domain.DateOnly))
}

func TestTransactionListFilters(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewRunRepo(db).Store(storedReport()))
	repo := NewTransactionRepo(db)

	txns, total, err := repo.List(TransactionFilter{Region: "East"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, txns, 2)

	txns, total, err = repo.List(TransactionFilter{MinAmount: ptr(40), MaxAmount: ptr(60)})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "T002", txns[0].ID)

	txns, total, err = repo.List(TransactionFilter{CustomerID: "C001", Region: "East"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, txns, 2)
}

func TestTransactionListPaging(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewRunRepo(db).Store(storedReport()))
	repo := NewTransactionRepo(db)

	txns, total, err := repo.List(TransactionFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total, "total counts all matches, not the page")
	require.Len(t, txns, 1)
	assert.Equal(t, "T003", txns[0].ID)
}

func TestGetVolumeByRegion(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewRunRepo(db).Store(storedReport()))
	repo := NewTransactionRepo(db)

	volumes, err := repo.GetVolumeByRegion()
	require.NoError(t, err)
	require.Len(t, volumes, 2)

	assert.Equal(t, "East", volumes[0].Region)
	assert.Equal(t, 2, volumes[0].Count)
	assert.Equal(t, 125.0, volumes[0].Revenue)
	assert.Equal(t, "West", volumes[1].Region)
}

func TestRejectionList(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewRunRepo(db).Store(storedReport()))
	repo := NewRejectionRepo(db)

	all, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 5, all[0].Line)
	assert.Equal(t, []domain.RuleID{domain.RuleMissingField, domain.RuleUnknownRegion}, all[0].Violations)

	matching, err := repo.List("UNKNOWN_REGION")
	require.NoError(t, err)
	assert.Len(t, matching, 1)

	none, err := repo.List("FUTURE_DATE")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEnrichedListAndSummary(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, NewRunRepo(db).Store(storedReport()))
	repo := NewEnrichedRepo(db)

	all, err := repo.List("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Widget", all[0].Product.Title)
	require.NotNil(t, all[0].Product.ListPrice)
	assert.Equal(t, 25.0, *all[0].Product.ListPrice)

	unmatched, err := repo.List("UNMATCHED")
	require.NoError(t, err)
	require.Len(t, unmatched, 1)
	assert.Equal(t, "T003", unmatched[0].ID)
	assert.Nil(t, unmatched[0].Product.ListPrice)
	assert.Equal(t, domain.UnknownField, unmatched[0].Product.Title)

	summary, err := repo.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, domain.EnrichmentSummary{Matched: 2, Unmatched: 1}, summary)
}
