package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/meridian/salesreport/internal/domain"
)

const (
	defaultTopN         = 5
	defaultLowThreshold = 10
)

// Engine computes an AnalyticsSummary from the accepted (and possibly
// filtered) set. It is pure: the same input always yields an identical
// summary, and the input is never mutated. Revenue accumulation is done in
// decimals so a long run of small additions cannot drift.
type Engine struct {
	topN         int // size of the top-products list
	lowThreshold int // products selling fewer units are low performers
}

// New creates an engine with the default report knobs.
func New() *Engine {
	return NewWithOptions(defaultTopN, defaultLowThreshold)
}

// NewWithOptions creates an engine with explicit top-N and low-performer
// settings. Non-positive values fall back to the defaults.
func NewWithOptions(topN, lowThreshold int) *Engine {
	if topN <= 0 {
		topN = defaultTopN
	}
	if lowThreshold <= 0 {
		lowThreshold = defaultLowThreshold
	}
	return &Engine{topN: topN, lowThreshold: lowThreshold}
}

type regionAcc struct {
	count   int
	revenue decimal.Decimal
}

type productAcc struct {
	name     string
	quantity int
	revenue  decimal.Decimal
}

type customerAcc struct {
	orders   int
	spent    decimal.Decimal
	products map[string]bool
}

type bucketAcc struct {
	count     int
	revenue   decimal.Decimal
	customers map[string]bool
}

// Summarize aggregates the accepted set in a single pass and assembles the
// summary with every section deterministically ordered. rejectedCount is
// carried through for the report; the engine never sees rejected records
// themselves. An empty input is valid and produces zero-value aggregates.
func (e *Engine) Summarize(txns []domain.Transaction, rejectedCount int) domain.AnalyticsSummary {
	total := decimal.Zero
	totalQuantity := 0
	byRegion := make(map[domain.Region]*regionAcc)
	byProduct := make(map[string]*productAcc)
	byCustomer := make(map[string]*customerAcc)
	byMonth := make(map[string]*bucketAcc)
	byDay := make(map[string]*bucketAcc)
	firstDate, lastDate := "", ""

	for _, t := range txns {
		revenue := decimal.NewFromFloat(t.Amount)
		total = total.Add(revenue)
		totalQuantity += t.Quantity

		r := byRegion[t.Region]
		if r == nil {
			r = &regionAcc{}
			byRegion[t.Region] = r
		}
		r.count++
		r.revenue = r.revenue.Add(revenue)

		p := byProduct[t.ProductID]
		if p == nil {
			p = &productAcc{name: t.ProductName}
			byProduct[t.ProductID] = p
		}
		p.quantity += t.Quantity
		p.revenue = p.revenue.Add(revenue)

		c := byCustomer[t.CustomerID]
		if c == nil {
			c = &customerAcc{products: make(map[string]bool)}
			byCustomer[t.CustomerID] = c
		}
		c.orders++
		c.spent = c.spent.Add(revenue)
		c.products[t.ProductName] = true

		day := t.Date.Format(domain.DateOnly)
		month := t.Date.Format("2006-01")
		accumulateBucket(byDay, day, revenue, t.CustomerID)
		accumulateBucket(byMonth, month, revenue, t.CustomerID)

		if firstDate == "" || day < firstDate {
			firstDate = day
		}
		if day > lastDate {
			lastDate = day
		}
	}

	summary := domain.AnalyticsSummary{
		TotalRevenue:  total,
		TotalQuantity: totalQuantity,
		AcceptedCount: len(txns),
		RejectedCount: rejectedCount,
		AvgOrderValue: safeDiv(total, len(txns)),
		FirstDate:     firstDate,
		LastDate:      lastDate,
		ByRegion:      regionStats(byRegion, total),
		ByProduct:     productStats(byProduct),
		ByCustomer:    customerStats(byCustomer),
		MonthlyTrend:  trend(byMonth),
		DailyTrend:    trend(byDay),
	}

	summary.PeakDay = peakDay(summary.DailyTrend)
	summary.TopProducts = topN(summary.ByProduct, e.topN)
	summary.LowProducts = lowPerformers(summary.ByProduct, e.lowThreshold)
	return summary
}

func accumulateBucket(buckets map[string]*bucketAcc, key string, revenue decimal.Decimal, customerID string) {
	b := buckets[key]
	if b == nil {
		b = &bucketAcc{customers: make(map[string]bool)}
		buckets[key] = b
	}
	b.count++
	b.revenue = b.revenue.Add(revenue)
	b.customers[customerID] = true
}

// safeDiv returns total/count rounded to cents, or zero for an empty set.
func safeDiv(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// regionStats orders regions by revenue descending, ties by name, and
// attaches each region's share of total revenue.
func regionStats(acc map[domain.Region]*regionAcc, total decimal.Decimal) []domain.RegionStat {
	stats := make([]domain.RegionStat, 0, len(acc))
	for region, a := range acc {
		share := 0.0
		if total.IsPositive() {
			share = a.revenue.Div(total).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
		}
		stats = append(stats, domain.RegionStat{
			Region:       region,
			Count:        a.count,
			Revenue:      a.revenue,
			ShareOfTotal: share,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].Revenue.Equal(stats[j].Revenue) {
			return stats[i].Revenue.GreaterThan(stats[j].Revenue)
		}
		return stats[i].Region < stats[j].Region
	})
	return stats
}

// productStats orders products by quantity sold descending, ties by id.
func productStats(acc map[string]*productAcc) []domain.ProductStat {
	stats := make([]domain.ProductStat, 0, len(acc))
	for id, a := range acc {
		stats = append(stats, domain.ProductStat{
			ProductID:   id,
			ProductName: a.name,
			Quantity:    a.quantity,
			Revenue:     a.revenue,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Quantity != stats[j].Quantity {
			return stats[i].Quantity > stats[j].Quantity
		}
		return stats[i].ProductID < stats[j].ProductID
	})
	return stats
}

// customerStats orders customers by total spent descending, ties by id.
func customerStats(acc map[string]*customerAcc) []domain.CustomerStat {
	stats := make([]domain.CustomerStat, 0, len(acc))
	for id, a := range acc {
		products := make([]string, 0, len(a.products))
		for name := range a.products {
			products = append(products, name)
		}
		sort.Strings(products)
		stats = append(stats, domain.CustomerStat{
			CustomerID:    id,
			Orders:        a.orders,
			TotalSpent:    a.spent,
			AvgOrderValue: safeDiv(a.spent, a.orders),
			Products:      products,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if !stats[i].TotalSpent.Equal(stats[j].TotalSpent) {
			return stats[i].TotalSpent.GreaterThan(stats[j].TotalSpent)
		}
		return stats[i].CustomerID < stats[j].CustomerID
	})
	return stats
}

// trend orders buckets chronologically. Bucket keys are fixed-width date
// layouts, so lexical order is chronological order.
func trend(acc map[string]*bucketAcc) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(acc))
	for key, a := range acc {
		points = append(points, domain.TrendPoint{
			Bucket:          key,
			Count:           a.count,
			Revenue:         a.revenue,
			UniqueCustomers: len(a.customers),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket < points[j].Bucket })
	return points
}

// peakDay picks the highest-revenue day; ties go to the earliest day.
func peakDay(daily []domain.TrendPoint) *domain.TrendPoint {
	var peak *domain.TrendPoint
	for i := range daily {
		if peak == nil || daily[i].Revenue.GreaterThan(peak.Revenue) {
			peak = &daily[i]
		}
	}
	if peak == nil {
		return nil
	}
	p := *peak
	return &p
}

func topN(products []domain.ProductStat, n int) []domain.ProductStat {
	if len(products) < n {
		n = len(products)
	}
	top := make([]domain.ProductStat, n)
	copy(top, products[:n])
	return top
}

// lowPerformers returns products under the quantity threshold, slowest first.
func lowPerformers(products []domain.ProductStat, threshold int) []domain.ProductStat {
	var low []domain.ProductStat
	for _, p := range products {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	sort.Slice(low, func(i, j int) bool {
		if low[i].Quantity != low[j].Quantity {
			return low[i].Quantity < low[j].Quantity
		}
		return low[i].ProductID < low[j].ProductID
	})
	return low
}
