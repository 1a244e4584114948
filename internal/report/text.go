package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/meridian/salesreport/internal/domain"
)

const (
	heavyRule = "============================================"
	lightRule = "--------------------------------------------"
)

// WriteText renders the comprehensive human-readable report. Formatting only:
// every number printed here was computed upstream.
func WriteText(w io.Writer, r domain.Report) error {
	p := &printer{w: w}

	p.line(heavyRule)
	p.line("        SALES ANALYTICS REPORT")
	p.linef("     Generated: %s", r.GeneratedAt.UTC().Format("2006-01-02 15:04:05"))
	p.linef("     Run: %s", r.RunID)
	p.linef("     Records Processed: %d", r.RecordsProcessed)
	p.line(heavyRule)
	p.line("")

	writeOverall(p, r)
	writeRegions(p, r.Analytics)
	writeTopProducts(p, r.Analytics)
	writeTopCustomers(p, r.Analytics)
	writeTrend(p, "MONTHLY SALES TREND", r.Analytics.MonthlyTrend)
	writeTrend(p, "DAILY SALES TREND", r.Analytics.DailyTrend)
	writePerformance(p, r.Analytics)
	writeRejections(p, r)
	writeEnrichment(p, r.Enrichment)

	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, s)
	}
}

func (p *printer) linef(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

func writeOverall(p *printer, r domain.Report) {
	a := r.Analytics
	p.line("OVERALL SUMMARY")
	p.line(lightRule)
	if r.NoData {
		p.line("No data: zero accepted transactions after validation and filtering.")
		p.line("")
		return
	}
	p.linef("Total Revenue:        %s", money(a.TotalRevenue))
	p.linef("Total Quantity:       %d", a.TotalQuantity)
	p.linef("Transactions:         %d accepted, %d rejected", a.AcceptedCount, a.RejectedCount)
	p.linef("Average Order Value:  %s", money(a.AvgOrderValue))
	p.linef("Date Range:           %s to %s", a.FirstDate, a.LastDate)
	if f := r.Filter; f != nil && f.Applied {
		p.linef("Filter:               %d in, %d removed by region, %d by amount, %d kept",
			f.Input, f.RemovedByRegion, f.RemovedByAmount, f.Output)
	}
	p.line("")
}

func writeRegions(p *printer, a domain.AnalyticsSummary) {
	p.line("REGION-WISE PERFORMANCE")
	p.line(lightRule)
	if len(a.ByRegion) == 0 {
		p.line("No data.")
		p.line("")
		return
	}
	p.linef("%-10s %18s %12s %14s", "Region", "Revenue", "% of Total", "Transactions")
	for _, rs := range a.ByRegion {
		p.linef("%-10s %18s %11.2f%% %14d", rs.Region, money(rs.Revenue), rs.ShareOfTotal, rs.Count)
	}
	p.line("")
}

func writeTopProducts(p *printer, a domain.AnalyticsSummary) {
	p.linef("TOP %d PRODUCTS", len(a.TopProducts))
	p.line(lightRule)
	if len(a.TopProducts) == 0 {
		p.line("No data.")
		p.line("")
		return
	}
	p.linef("%-5s %-12s %-28s %10s %18s", "Rank", "Product ID", "Product Name", "Qty Sold", "Revenue")
	for i, ps := range a.TopProducts {
		p.linef("%-5d %-12s %-28s %10d %18s", i+1, ps.ProductID, clip(ps.ProductName, 28), ps.Quantity, money(ps.Revenue))
	}
	p.line("")
}

func writeTopCustomers(p *printer, a domain.AnalyticsSummary) {
	n := len(a.ByCustomer)
	if n > 5 {
		n = 5
	}
	p.linef("TOP %d CUSTOMERS", n)
	p.line(lightRule)
	if n == 0 {
		p.line("No data.")
		p.line("")
		return
	}
	p.linef("%-5s %-14s %18s %12s %18s", "Rank", "Customer ID", "Total Spent", "Orders", "Avg Order")
	for i, cs := range a.ByCustomer[:n] {
		p.linef("%-5d %-14s %18s %12d %18s", i+1, cs.CustomerID, money(cs.TotalSpent), cs.Orders, money(cs.AvgOrderValue))
	}
	p.line("")
}

func writeTrend(p *printer, title string, points []domain.TrendPoint) {
	p.line(title)
	p.line(lightRule)
	if len(points) == 0 {
		p.line("No data.")
		p.line("")
		return
	}
	p.linef("%-12s %18s %14s %18s", "Bucket", "Revenue", "Transactions", "Unique Customers")
	for _, tp := range points {
		p.linef("%-12s %18s %14d %18d", tp.Bucket, money(tp.Revenue), tp.Count, tp.UniqueCustomers)
	}
	p.line("")
}

func writePerformance(p *printer, a domain.AnalyticsSummary) {
	p.line("PRODUCT PERFORMANCE ANALYSIS")
	p.line(lightRule)
	if a.PeakDay != nil {
		p.linef("Peak Sales Day: %s with revenue %s across %d transactions",
			a.PeakDay.Bucket, money(a.PeakDay.Revenue), a.PeakDay.Count)
	} else {
		p.line("Peak Sales Day: no data")
	}
	if len(a.LowProducts) == 0 {
		p.line("No low performing products.")
	} else {
		p.line("Low Performing Products:")
		for _, ps := range a.LowProducts {
			p.linef("  - %s (%s): %d sold, revenue %s", ps.ProductID, ps.ProductName, ps.Quantity, money(ps.Revenue))
		}
	}
	p.line("")
}

func writeRejections(p *printer, r domain.Report) {
	p.line("REJECTION SUMMARY")
	p.line(lightRule)
	p.linef("Rejected Records: %d of %d", r.Validation.Rejected, r.Validation.Input)
	for _, reason := range r.Validation.Reasons {
		p.linef("  %-24s %d", reason.Rule, reason.Count)
	}
	for _, rej := range r.Rejections {
		p.linef("  line %d (%s): %s", rej.Line, orDash(rej.TransactionID), joinRules(rej.Violations))
	}
	p.line("")
}

func writeEnrichment(p *printer, e domain.EnrichmentSummary) {
	total := e.Matched + e.Unmatched + e.Conflicting
	p.line("ENRICHMENT SUMMARY")
	p.line(lightRule)
	p.linef("Matched:     %d", e.Matched)
	p.linef("Unmatched:   %d", e.Unmatched)
	p.linef("Conflicting: %d", e.Conflicting)
	if total > 0 {
		rate := float64(e.Matched+e.Conflicting) / float64(total) * 100
		p.linef("Catalog Hit Rate: %.2f%%", rate)
	}
	if e.SourceNote != "" {
		p.linef("Note: %s", e.SourceNote)
	}
}

// money renders a decimal with cents and thousands separators.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	out := grouped.String() + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinRules(rules []domain.RuleID) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
