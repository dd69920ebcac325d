package feed

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joshsymonds/sift/internal/config"
	"github.com/joshsymonds/sift/internal/model"
)

// EnrichedHeader is the fixed 12-column header of the enriched snapshot file.
const EnrichedHeader = "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region|API_Category|API_Brand|API_Rating|API_Match"

// noneToken serializes an absent annotation value.
const noneToken = "None"

// WriteEnriched persists the enriched dataset as a pipe-delimited snapshot.
// Unmatched records serialize their annotation columns as the None token.
func WriteEnriched(path string, enriched []model.EnrichedTransaction) error {
	if err := config.EnsureParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create enriched file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close enriched file", "path", path, "error", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(w, EnrichedHeader); err != nil {
		return fmt.Errorf("failed to write enriched header: %w", err)
	}

	for _, e := range enriched {
		category, brand, rating := noneToken, noneToken, noneToken
		if e.Matched {
			category = e.Category
			brand = e.Brand
			rating = formatFloat(e.Rating)
		}

		_, err := fmt.Fprintf(w, "%s|%s|%s|%s|%d|%s|%s|%s|%s|%s|%s|%t\n",
			e.TransactionID, e.Date, e.ProductID, e.ProductName,
			e.Quantity, formatFloat(e.UnitPrice), e.CustomerID, e.Region,
			category, brand, rating, e.Matched)
		if err != nil {
			return fmt.Errorf("failed to write enriched record %s: %w", e.TransactionID, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush enriched file: %w", err)
	}

	slog.Info("Saved enriched snapshot", "path", path, "records", len(enriched))
	return nil
}

// formatFloat renders a float as shortest plain decimal, e.g. 2.5 not
// 2.50, and never scientific notation.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
