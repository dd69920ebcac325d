package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshsymonds/sift/internal/model"
)

func tx(id, date, product, customer, region string, qty int, price float64) model.Transaction {
	return model.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     "P0",
		ProductName:   product,
		CustomerID:    customer,
		Region:        region,
		Quantity:      qty,
		UnitPrice:     price,
	}
}

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		tx("T001", "2024-01-05", "Widget", "C001", "East", 10, 2.50), // 25.00
		tx("T002", "2024-01-05", "Gadget", "C002", "West", 3, 10.00), // 30.00
		tx("T003", "2024-01-06", "Widget", "C001", "East", 5, 2.50),  // 12.50
		tx("T004", "2024-01-06", "Gizmo", "C003", "North", 2, 20.00), // 40.00
		tx("T005", "2024-01-07", "Gadget", "C002", "West", 1, 10.00), // 10.00
	}
}

func TestTotalRevenue(t *testing.T) {
	assert.InDelta(t, 117.50, TotalRevenue(sampleTransactions()), 0.001)
	assert.Zero(t, TotalRevenue(nil))
}

func TestRegionSales(t *testing.T) {
	stats := RegionSales(sampleTransactions())
	require.Len(t, stats, 3)

	// Ordered by total sales descending. West and North tie at 40.00;
	// West appeared first in the input (T002 vs T004) so the stable sort
	// keeps it ahead. East follows with 37.50.
	assert.Equal(t, "West", stats[0].Region)
	assert.InDelta(t, 40.00, stats[0].TotalSales, 0.001)
	assert.Equal(t, 2, stats[0].TransactionCount)

	assert.Equal(t, "North", stats[1].Region)
	assert.InDelta(t, 40.00, stats[1].TotalSales, 0.001)
	assert.Equal(t, 1, stats[1].TransactionCount)

	assert.Equal(t, "East", stats[2].Region)
	assert.InDelta(t, 37.50, stats[2].TotalSales, 0.001)

	// Per-region totals sum to total revenue, percentages to ~100.
	var salesSum, pctSum float64
	for _, s := range stats {
		salesSum += s.TotalSales
		pctSum += s.Percentage
	}
	assert.InDelta(t, TotalRevenue(sampleTransactions()), salesSum, 0.001)
	assert.InDelta(t, 100.0, pctSum, 0.05)
}

func TestRegionSales_ZeroRevenue(t *testing.T) {
	assert.Empty(t, RegionSales(nil))
}

func TestTopProducts(t *testing.T) {
	txns := sampleTransactions()

	top := TopProducts(txns, 2)
	require.Len(t, top, 2)

	// Widget 15 units, Gadget 4, Gizmo 2.
	assert.Equal(t, "Widget", top[0].Name)
	assert.Equal(t, 15, top[0].Quantity)
	assert.InDelta(t, 37.50, top[0].Revenue, 0.001)

	assert.Equal(t, "Gadget", top[1].Name)
	assert.Equal(t, 4, top[1].Quantity)

	// n larger than the product count returns everything.
	assert.Len(t, TopProducts(txns, 10), 3)
}

func TestTopProducts_StableTies(t *testing.T) {
	txns := []model.Transaction{
		tx("T001", "2024-01-05", "Alpha", "C001", "East", 5, 1),
		tx("T002", "2024-01-05", "Beta", "C001", "East", 5, 1),
		tx("T003", "2024-01-05", "Gamma", "C001", "East", 5, 1),
	}

	top := TopProducts(txns, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "Alpha", top[0].Name)
	assert.Equal(t, "Beta", top[1].Name)
	assert.Equal(t, "Gamma", top[2].Name)
}

func TestCustomerAnalysis(t *testing.T) {
	stats := CustomerAnalysis(sampleTransactions())
	require.Len(t, stats, 3)

	// C002 spent 40, C003 spent 40, C001 spent 37.50. C002 appeared first.
	assert.Equal(t, "C002", stats[0].CustomerID)
	assert.InDelta(t, 40.00, stats[0].TotalSpent, 0.001)
	assert.Equal(t, 2, stats[0].PurchaseCount)
	assert.InDelta(t, 20.00, stats[0].AvgOrderValue, 0.001)
	assert.Equal(t, 1, stats[0].DistinctProducts)

	assert.Equal(t, "C003", stats[1].CustomerID)

	assert.Equal(t, "C001", stats[2].CustomerID)
	assert.Equal(t, 2, stats[2].PurchaseCount)
	assert.InDelta(t, 18.75, stats[2].AvgOrderValue, 0.001)
	assert.Equal(t, 1, stats[2].DistinctProducts)
}

func TestDailyTrend(t *testing.T) {
	stats := DailyTrend(sampleTransactions())
	require.Len(t, stats, 3)

	// Lexicographic date ascending.
	assert.Equal(t, "2024-01-05", stats[0].Date)
	assert.InDelta(t, 55.00, stats[0].Revenue, 0.001)
	assert.Equal(t, 2, stats[0].TransactionCount)
	assert.Equal(t, 2, stats[0].UniqueCustomers)

	assert.Equal(t, "2024-01-06", stats[1].Date)
	assert.InDelta(t, 52.50, stats[1].Revenue, 0.001)

	assert.Equal(t, "2024-01-07", stats[2].Date)
	assert.Equal(t, 1, stats[2].UniqueCustomers)
}

func TestPeakDay(t *testing.T) {
	date, revenue, count := PeakDay(sampleTransactions())
	assert.Equal(t, "2024-01-05", date)
	assert.InDelta(t, 55.00, revenue, 0.001)
	assert.Equal(t, 2, count)
}

func TestPeakDay_Empty(t *testing.T) {
	date, revenue, count := PeakDay(nil)
	assert.Empty(t, date)
	assert.Zero(t, revenue)
	assert.Zero(t, count)
}

func TestPeakDay_TieKeepsEarliestDate(t *testing.T) {
	txns := []model.Transaction{
		tx("T001", "2024-01-09", "Widget", "C001", "East", 1, 10),
		tx("T002", "2024-01-02", "Widget", "C001", "East", 1, 10),
	}

	date, revenue, _ := PeakDay(txns)
	assert.Equal(t, "2024-01-02", date)
	assert.InDelta(t, 10.00, revenue, 0.001)
}

func TestLowPerformers(t *testing.T) {
	// Widget 15, Gadget 4, Gizmo 2.
	low := LowPerformers(sampleTransactions(), 10)
	require.Len(t, low, 2)

	// Quantity ascending.
	assert.Equal(t, "Gizmo", low[0].Name)
	assert.Equal(t, 2, low[0].Quantity)
	assert.Equal(t, "Gadget", low[1].Name)
	assert.Equal(t, 4, low[1].Quantity)

	// Threshold is exclusive.
	assert.Len(t, LowPerformers(sampleTransactions(), 4), 1)
	assert.Empty(t, LowPerformers(sampleTransactions(), 1))
}

func TestAggregationsArePureAndIdempotent(t *testing.T) {
	input := sampleTransactions()
	snapshot := sampleTransactions()

	first := RegionSales(input)
	second := RegionSales(input)
	assert.Equal(t, first, second)

	assert.Equal(t, TopProducts(input, 5), TopProducts(input, 5))
	assert.Equal(t, CustomerAnalysis(input), CustomerAnalysis(input))
	assert.Equal(t, DailyTrend(input), DailyTrend(input))

	// The source slice is never mutated.
	assert.Equal(t, snapshot, input)
}

func TestRegions(t *testing.T) {
	regions := Regions(sampleTransactions())
	assert.Equal(t, []string{"East", "West", "North"}, regions)
}
