package model

// EnrichedTransaction is a transaction annotated with catalog metadata.
// When Matched is false the annotation fields are zero and must be
// treated as absent by consumers.
type EnrichedTransaction struct {
	Transaction
	Category string
	Brand    string
	Rating   float64
	Matched  bool
}
