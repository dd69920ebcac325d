// Package report renders the fixed-section sales analytics report from the
// computed aggregates. It consumes statistics only and never recomputes or
// mutates the underlying transactions beyond calling the pure analytics
// functions.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshsymonds/sift/internal/analytics"
	"github.com/joshsymonds/sift/internal/config"
	"github.com/joshsymonds/sift/internal/enrich"
	"github.com/joshsymonds/sift/internal/model"
)

// DefaultTopCustomers bounds the customer ranking section.
const DefaultTopCustomers = 5

// Options parameterizes the ranked report sections. Zero values fall back
// to the defaults.
type Options struct {
	TopProducts          int
	TopCustomers         int
	LowQuantityThreshold int
}

// Meta carries run identity and degradation notices into the report header
// and the enrichment section.
type Meta struct {
	GeneratedAt    time.Time
	RunID          string
	CatalogSkipped bool
}

func (o Options) withDefaults() Options {
	if o.TopProducts == 0 {
		o.TopProducts = analytics.DefaultTopProducts
	}
	if o.TopCustomers == 0 {
		o.TopCustomers = DefaultTopCustomers
	}
	if o.LowQuantityThreshold == 0 {
		o.LowQuantityThreshold = analytics.DefaultLowQuantityThreshold
	}
	return o
}

// WriteFile renders the report to path, creating the parent directory.
func WriteFile(path string, transactions []model.Transaction, summary enrich.Summary, opts Options, meta Meta) error {
	if err := config.EnsureParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close report file", "path", path, "error", cerr)
		}
	}()

	if err := Render(f, transactions, summary, opts, meta); err != nil {
		return err
	}

	slog.Info("Generated sales report", "path", path, "records", len(transactions))
	return nil
}

// Render writes the full fixed-section report to w.
func Render(w io.Writer, transactions []model.Transaction, summary enrich.Summary, opts Options, meta Meta) error {
	opts = opts.withDefaults()

	// The English printer gives us thousands separators in money columns.
	r := &reportWriter{w: w, printer: message.NewPrinter(language.English)}

	r.header(transactions, meta)
	r.overallSummary(transactions)
	r.regionPerformance(transactions)
	r.topProducts(transactions, opts.TopProducts)
	r.topCustomers(transactions, opts.TopCustomers)
	r.dailyTrend(transactions)
	r.productPerformance(transactions, opts.LowQuantityThreshold)
	r.enrichmentSummary(summary, meta)

	if r.err != nil {
		return fmt.Errorf("failed to write report: %w", r.err)
	}
	return nil
}

// reportWriter holds the first write error so each section can render
// without per-line error plumbing.
type reportWriter struct {
	w       io.Writer
	printer *message.Printer
	err     error
}

func (r *reportWriter) line(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// money formats a monetary value with thousands separators.
func (r *reportWriter) money(v float64) string {
	return r.printer.Sprintf("%.2f", v)
}

func (r *reportWriter) header(transactions []model.Transaction, meta Meta) {
	r.line("SALES ANALYTICS REPORT\n")
	r.line("Generated: %s\n", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	if meta.RunID != "" {
		r.line("Run ID: %s\n", meta.RunID)
	}
	r.line("Records Processed: %d\n", len(transactions))
	r.line("%s\n\n", strings.Repeat("=", 50))
}

func (r *reportWriter) overallSummary(transactions []model.Transaction) {
	totalRev := analytics.TotalRevenue(transactions)
	totalTx := len(transactions)

	var avgOrder float64
	if totalTx > 0 {
		avgOrder = totalRev / float64(totalTx)
	}

	dateRange := "N/A"
	if totalTx > 0 {
		first, last := transactions[0].Date, transactions[0].Date
		for _, t := range transactions[1:] {
			if t.Date < first {
				first = t.Date
			}
			if t.Date > last {
				last = t.Date
			}
		}
		dateRange = fmt.Sprintf("%s to %s", first, last)
	}

	r.line("OVERALL SUMMARY\n")
	r.line("Total Revenue: %s\n", r.money(totalRev))
	r.line("Total Transactions: %d\n", totalTx)
	r.line("Average Order Value: %s\n", r.money(avgOrder))
	r.line("Date Range: %s\n\n", dateRange)
}

func (r *reportWriter) regionPerformance(transactions []model.Transaction) {
	r.line("REGION-WISE PERFORMANCE\n")
	r.line("%-15s %-15s %-15s %-15s\n", "Region", "Sales", "% of Total", "Transactions")
	r.line("%s\n", strings.Repeat("-", 60))
	for _, reg := range analytics.RegionSales(transactions) {
		r.line("%-15s %-15s %-15.2f %-15d\n",
			reg.Region, r.money(reg.TotalSales), reg.Percentage, reg.TransactionCount)
	}
	r.line("\n")
}

func (r *reportWriter) topProducts(transactions []model.Transaction, n int) {
	r.line("TOP %d PRODUCTS\n", n)
	r.line("%-5s %-30s %-10s %-15s\n", "Rank", "Product Name", "Quantity", "Revenue")
	for i, p := range analytics.TopProducts(transactions, n) {
		r.line("%-5d %-30s %-10d %-15s\n", i+1, p.Name, p.Quantity, r.money(p.Revenue))
	}
	r.line("\n")
}

func (r *reportWriter) topCustomers(transactions []model.Transaction, n int) {
	customers := analytics.CustomerAnalysis(transactions)
	if n < len(customers) {
		customers = customers[:n]
	}

	r.line("TOP %d CUSTOMERS\n", n)
	r.line("%-5s %-15s %-15s %-10s\n", "Rank", "Customer ID", "Total Spent", "Orders")
	for i, c := range customers {
		r.line("%-5d %-15s %-15s %-10d\n", i+1, c.CustomerID, r.money(c.TotalSpent), c.PurchaseCount)
	}
	r.line("\n")
}

func (r *reportWriter) dailyTrend(transactions []model.Transaction) {
	r.line("DAILY SALES TREND\n")
	r.line("%-15s %-15s %-10s %-10s\n", "Date", "Revenue", "Tx Count", "Unique Cust")
	for _, d := range analytics.DailyTrend(transactions) {
		r.line("%-15s %-15s %-10d %-10d\n", d.Date, r.money(d.Revenue), d.TransactionCount, d.UniqueCustomers)
	}
	r.line("\n")
}

func (r *reportWriter) productPerformance(transactions []model.Transaction, threshold int) {
	peakDate, peakRevenue, _ := analytics.PeakDay(transactions)

	r.line("PRODUCT PERFORMANCE ANALYSIS\n")
	if peakDate == "" {
		r.line("Best Selling Day: N/A\n")
	} else {
		r.line("Best Selling Day: %s (Revenue: %s)\n", peakDate, r.money(peakRevenue))
	}
	r.line("Low Performing Products:\n")
	for _, p := range analytics.LowPerformers(transactions, threshold) {
		r.line("- %s: %d sold\n", p.Name, p.Quantity)
	}
	r.line("\n")
}

func (r *reportWriter) enrichmentSummary(summary enrich.Summary, meta Meta) {
	r.line("API ENRICHMENT SUMMARY\n")
	if meta.CatalogSkipped {
		r.line("Enrichment skipped: catalog service unavailable\n")
	}
	r.line("Total Enriched: %d\n", summary.Matched)
	r.line("Success Rate: %.2f%%\n", summary.SuccessRate())
	r.line("Unmatched (no numeric ID): %d\n", summary.NoNumericID)
	r.line("Unmatched (no catalog entry): %d\n", summary.NotFound)
}
