package search

import (
	"context"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/query"
)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Parser turns free-text user input into a structured query.
// Implemented by the LLM query agent; consumed by the transport layer.
type Parser interface {
	Parse(ctx context.Context, text string) (query.Query, error)
}
