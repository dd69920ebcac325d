package model

// CatalogEntry is one product record from the external catalog service.
type CatalogEntry struct {
	Title    string
	Category string
	Brand    string
	ID       int
	Rating   float64
}

// Catalog maps external product IDs to their catalog entries.
// It is built once per run from the service response and read-only afterwards.
type Catalog map[int]CatalogEntry
