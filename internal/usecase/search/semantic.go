package search

import (
	"context"
	"fmt"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
)

// semanticScore computes the clamped cosine similarity between the query
// vector and the item's description vector. When the item carries no
// precomputed embedding, one is requested from the embedder on demand and
// not written back: caching vectors is the catalog owner's responsibility.
func (s *Service) semanticScore(
	ctx context.Context, queryVec []float32, item catalog.Item,
) (float64, error) {
	if len(queryVec) == 0 {
		return 0, nil
	}

	itemVec := item.Embedding()
	if len(itemVec) == 0 {
		if item.Description() == "" {
			return 0, nil
		}
		res, err := s.embed.Embed(ctx, item.Description())
		if err != nil {
			return 0, fmt.Errorf("%w: embed item %s: %w", domain.ErrEmbeddingUnavailable, item.ID(), err)
		}
		itemVec = res.Embedding
	}

	return clampUnit(domain.CosineSimilarity(queryVec, itemVec)), nil
}

// clampUnit floors negative similarities to 0 and caps at 1 so the semantic
// score shares the keyword score's scale.
func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
