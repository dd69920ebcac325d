// Package model defines the core domain models used throughout the application.
package model

// Transaction represents a single validated sales record from the feed.
// Instances are built by the feed parser and never mutated afterwards.
type Transaction struct {
	TransactionID string
	Date          string // opaque grouping token, sorted lexicographically
	ProductID     string
	ProductName   string
	CustomerID    string
	Region        string
	Quantity      int
	UnitPrice     float64
}

// Amount returns the monetary value of the transaction.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}
