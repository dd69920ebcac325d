// Package enrich annotates transactions with catalog metadata by matching
// the numeric part of each ProductID against the catalog's ID space.
//
// The feed's derived IDs and the catalog's ID space are not guaranteed to
// overlap, so a high unmatched rate is an expected data-mismatch outcome,
// not a fault. The mapping is a direct integer key lookup; no modulo or
// offset remapping is applied.
package enrich

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/joshsymonds/sift/internal/model"
)

// Summary breaks down how the batch matched against the catalog.
type Summary struct {
	Total       int
	Matched     int
	NoNumericID int // ProductID had no digits, or they did not parse
	NotFound    int // derived ID had no catalog entry
}

// SuccessRate returns the matched percentage of the batch, 0 for an
// empty batch.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Matched) / float64(s.Total) * 100
}

type options struct {
	onRecord func()
}

// Option configures an Enrich call.
type Option func(*options)

// WithProgress registers a callback invoked after each record, used to
// drive progress reporting in the CLI.
func WithProgress(fn func()) Option {
	return func(o *options) {
		o.onRecord = fn
	}
}

// Enrich annotates every transaction against the catalog, preserving input
// order: exactly one EnrichedTransaction per input. A transaction whose
// ProductID yields no usable numeric ID is annotated as unmatched; no
// per-record failure is ever fatal to the batch.
func Enrich(transactions []model.Transaction, catalog model.Catalog, opts ...Option) ([]model.EnrichedTransaction, Summary) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	summary := Summary{Total: len(transactions)}
	enriched := make([]model.EnrichedTransaction, 0, len(transactions))

	for _, t := range transactions {
		e := model.EnrichedTransaction{Transaction: t}

		if id, ok := extractNumericID(t.ProductID); !ok {
			summary.NoNumericID++
		} else if entry, found := catalog[id]; found {
			e.Category = entry.Category
			e.Brand = entry.Brand
			e.Rating = entry.Rating
			e.Matched = true
			summary.Matched++
		} else {
			summary.NotFound++
		}

		enriched = append(enriched, e)
		if o.onRecord != nil {
			o.onRecord()
		}
	}

	slog.Info("Enriched transactions",
		"total", summary.Total,
		"matched", summary.Matched,
		"no_numeric_id", summary.NoNumericID,
		"not_found", summary.NotFound)

	return enriched, summary
}

// extractNumericID strips all non-digit characters from a product ID and
// parses the remainder, e.g. "P101" yields 101.
func extractNumericID(productID string) (int, bool) {
	var digits strings.Builder
	for _, r := range productID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}

	id, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return id, true
}
