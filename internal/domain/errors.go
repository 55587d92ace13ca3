package domain

import "errors"

var (
	// ErrInvalidRequest signals invalid ranking weights, thresholds, or limits.
	ErrInvalidRequest = errors.New("invalid search request")
	// ErrEmptyQuery signals a query with no usable criteria.
	ErrEmptyQuery = errors.New("query carries no usable criteria")
	// ErrEmbeddingUnavailable signals that the embedding provider could not produce a vector.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	// ErrItemNotFound signals a missing catalog item.
	ErrItemNotFound = errors.New("catalog item not found")
	// ErrInvalidItem signals a catalog item violating its invariants.
	ErrInvalidItem = errors.New("invalid catalog item")
)
