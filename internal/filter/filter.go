// Package filter applies optional region and amount predicates to a
// transaction set.
package filter

import (
	"fmt"
	"strings"

	"github.com/joshsymonds/sift/internal/model"
)

// Criteria holds the optional filter predicates. A zero value matches
// every transaction. Amount bounds apply to Quantity × UnitPrice.
type Criteria struct {
	Region    string // case-insensitive exact match; empty means unset
	MinAmount *float64
	MaxAmount *float64
}

// IsZero reports whether no predicate is set.
func (c Criteria) IsZero() bool {
	return c.Region == "" && c.MinAmount == nil && c.MaxAmount == nil
}

// String renders the criteria for logs and user-facing summaries.
func (c Criteria) String() string {
	var parts []string
	if c.Region != "" {
		parts = append(parts, fmt.Sprintf("region=%s", c.Region))
	}
	if c.MinAmount != nil {
		parts = append(parts, fmt.Sprintf("min=%.2f", *c.MinAmount))
	}
	if c.MaxAmount != nil {
		parts = append(parts, fmt.Sprintf("max=%.2f", *c.MaxAmount))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}

// Summary counts how filtering disposed of each input record.
// The region predicate is evaluated first and short-circuits, so a record
// failing both predicates is counted under FilteredByRegion only.
type Summary struct {
	TotalInput       int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}

// Apply filters transactions against the criteria, preserving input order.
// The input slice is never mutated.
func Apply(transactions []model.Transaction, c Criteria) ([]model.Transaction, Summary) {
	summary := Summary{TotalInput: len(transactions)}
	filtered := make([]model.Transaction, 0, len(transactions))

	for _, t := range transactions {
		if c.Region != "" && !strings.EqualFold(t.Region, c.Region) {
			summary.FilteredByRegion++
			continue
		}

		amount := t.Amount()
		if c.MinAmount != nil && amount < *c.MinAmount {
			summary.FilteredByAmount++
			continue
		}
		if c.MaxAmount != nil && amount > *c.MaxAmount {
			summary.FilteredByAmount++
			continue
		}

		filtered = append(filtered, t)
	}

	summary.FinalCount = len(filtered)
	return filtered, summary
}
