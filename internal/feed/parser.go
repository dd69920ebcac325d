package feed

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/joshsymonds/sift/internal/model"
)

const (
	// fieldCount is the exact number of pipe-separated fields per feed line.
	fieldCount = 8

	// transactionIDPrefix marks a well-formed transaction identifier.
	transactionIDPrefix = "T"
)

// ParseStats reports how many feed lines were accepted and rejected.
type ParseStats struct {
	TotalParsed  int
	InvalidCount int
	ValidCount   int
}

// ParseTransactions converts raw feed lines into validated transactions,
// preserving input order. Malformed lines are counted and skipped; no
// individual line can fail the whole parse.
func ParseTransactions(lines []string) ([]model.Transaction, ParseStats) {
	stats := ParseStats{TotalParsed: len(lines)}
	transactions := make([]model.Transaction, 0, len(lines))

	for _, line := range lines {
		tx, ok := parseLine(line)
		if !ok {
			stats.InvalidCount++
			continue
		}
		transactions = append(transactions, tx)
	}

	stats.ValidCount = len(transactions)
	slog.Info("Parsed sales feed",
		"total", stats.TotalParsed,
		"invalid", stats.InvalidCount,
		"valid", stats.ValidCount)

	return transactions, stats
}

// parseLine parses and validates a single feed line.
func parseLine(line string) (model.Transaction, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != fieldCount {
		return model.Transaction{}, false
	}

	// Thousands-separator commas in the numeric fields and stray commas in
	// the product name are data-corruption artifacts in this feed.
	qtyStr := strings.TrimSpace(strings.ReplaceAll(parts[4], ",", ""))
	priceStr := strings.TrimSpace(strings.ReplaceAll(parts[5], ",", ""))

	quantity, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Transaction{}, false
	}
	unitPrice, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return model.Transaction{}, false
	}

	tx := model.Transaction{
		TransactionID: parts[0],
		Date:          parts[1],
		ProductID:     parts[2],
		ProductName:   strings.ReplaceAll(parts[3], ",", ""),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    parts[6],
		Region:        strings.TrimSpace(parts[7]),
	}

	if !strings.HasPrefix(tx.TransactionID, transactionIDPrefix) ||
		tx.Quantity <= 0 ||
		tx.UnitPrice <= 0 ||
		tx.CustomerID == "" ||
		tx.Region == "" {
		return model.Transaction{}, false
	}

	return tx, true
}
