// Package analytics computes derived sales statistics. Every function is
// pure: it takes a transaction slice, never mutates it, and returns freshly
// allocated results, so repeated calls over the same input are identical.
package analytics

import (
	"math"
	"sort"

	"github.com/joshsymonds/sift/internal/model"
)

// Default parameters for the ranked views.
const (
	DefaultTopProducts          = 5
	DefaultLowQuantityThreshold = 10
)

// RegionStat summarizes sales for one region.
type RegionStat struct {
	Region           string
	TotalSales       float64
	Percentage       float64 // share of total revenue, rounded to 2 decimals
	TransactionCount int
}

// ProductStat summarizes quantity and revenue for one product.
type ProductStat struct {
	Name     string
	Quantity int
	Revenue  float64
}

// CustomerStat summarizes purchasing behavior for one customer.
type CustomerStat struct {
	CustomerID       string
	TotalSpent       float64
	AvgOrderValue    float64
	PurchaseCount    int
	DistinctProducts int
}

// DailyStat summarizes sales for one date token.
type DailyStat struct {
	Date             string
	Revenue          float64
	TransactionCount int
	UniqueCustomers  int
}

// TotalRevenue sums Quantity × UnitPrice over all transactions.
func TotalRevenue(transactions []model.Transaction) float64 {
	var total float64
	for _, t := range transactions {
		total += t.Amount()
	}
	return total
}

// Regions returns the distinct regions in encounter order.
func Regions(transactions []model.Transaction) []string {
	seen := make(map[string]struct{})
	var regions []string
	for _, t := range transactions {
		if _, ok := seen[t.Region]; ok {
			continue
		}
		seen[t.Region] = struct{}{}
		regions = append(regions, t.Region)
	}
	return regions
}

// RegionSales groups transactions by region and ranks regions by total
// sales descending. Ties keep the encounter order of first appearance.
// Percentages are 0 when total revenue is 0.
func RegionSales(transactions []model.Transaction) []RegionStat {
	total := TotalRevenue(transactions)

	index := make(map[string]int)
	var stats []RegionStat
	for _, t := range transactions {
		i, ok := index[t.Region]
		if !ok {
			i = len(stats)
			index[t.Region] = i
			stats = append(stats, RegionStat{Region: t.Region})
		}
		stats[i].TotalSales += t.Amount()
		stats[i].TransactionCount++
	}

	for i := range stats {
		if total > 0 {
			stats[i].Percentage = round2(stats[i].TotalSales / total * 100)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})
	return stats
}

// TopProducts ranks products by total quantity sold descending (stable on
// ties) and returns the first n.
func TopProducts(transactions []model.Transaction, n int) []ProductStat {
	stats := productStats(transactions)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	if n >= 0 && n < len(stats) {
		stats = stats[:n]
	}
	return stats
}

// CustomerAnalysis groups transactions by customer and ranks customers by
// total spend descending, stable on ties.
func CustomerAnalysis(transactions []model.Transaction) []CustomerStat {
	index := make(map[string]int)
	products := make(map[string]map[string]struct{})
	var stats []CustomerStat

	for _, t := range transactions {
		i, ok := index[t.CustomerID]
		if !ok {
			i = len(stats)
			index[t.CustomerID] = i
			stats = append(stats, CustomerStat{CustomerID: t.CustomerID})
			products[t.CustomerID] = make(map[string]struct{})
		}
		stats[i].TotalSpent += t.Amount()
		stats[i].PurchaseCount++
		products[t.CustomerID][t.ProductName] = struct{}{}
	}

	for i := range stats {
		stats[i].DistinctProducts = len(products[stats[i].CustomerID])
		if stats[i].PurchaseCount > 0 {
			stats[i].AvgOrderValue = round2(stats[i].TotalSpent / float64(stats[i].PurchaseCount))
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})
	return stats
}

// DailyTrend groups transactions by date token, ordered by lexicographic
// date ascending. Dates are opaque sortable strings, not calendar values.
func DailyTrend(transactions []model.Transaction) []DailyStat {
	index := make(map[string]int)
	customers := make(map[string]map[string]struct{})
	var stats []DailyStat

	for _, t := range transactions {
		i, ok := index[t.Date]
		if !ok {
			i = len(stats)
			index[t.Date] = i
			stats = append(stats, DailyStat{Date: t.Date})
			customers[t.Date] = make(map[string]struct{})
		}
		stats[i].Revenue += t.Amount()
		stats[i].TransactionCount++
		customers[t.Date][t.CustomerID] = struct{}{}
	}

	for i := range stats {
		stats[i].UniqueCustomers = len(customers[stats[i].Date])
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})
	return stats
}

// PeakDay returns the date with maximum revenue from the daily trend,
// ties broken by the first maximum in date-ascending order. Returns
// ("", 0, 0) when there are no transactions.
func PeakDay(transactions []model.Transaction) (string, float64, int) {
	daily := DailyTrend(transactions)
	if len(daily) == 0 {
		return "", 0, 0
	}

	peak := daily[0]
	for _, d := range daily[1:] {
		if d.Revenue > peak.Revenue {
			peak = d
		}
	}
	return peak.Date, peak.Revenue, peak.TransactionCount
}

// LowPerformers returns products whose total quantity sold is strictly
// below threshold, ordered by quantity ascending.
func LowPerformers(transactions []model.Transaction, threshold int) []ProductStat {
	var low []ProductStat
	for _, p := range productStats(transactions) {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

// productStats groups transactions by product name in encounter order.
func productStats(transactions []model.Transaction) []ProductStat {
	index := make(map[string]int)
	var stats []ProductStat
	for _, t := range transactions {
		i, ok := index[t.ProductName]
		if !ok {
			i = len(stats)
			index[t.ProductName] = i
			stats = append(stats, ProductStat{Name: t.ProductName})
		}
		stats[i].Quantity += t.Quantity
		stats[i].Revenue += t.Amount()
	}
	return stats
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
