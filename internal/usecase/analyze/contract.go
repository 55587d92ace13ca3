package analyze

import (
	"context"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
)

// Analyzer extracts a structured room record from one image.
type Analyzer interface {
	Analyze(ctx context.Context, imageURL string) (catalog.Item, error)
}

// Store persists analyzed items.
type Store interface {
	Get(id string) (catalog.Item, bool)
	Put(ctx context.Context, item catalog.Item) error
}
