package catalog

import (
	"fmt"
	"strings"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
)

// Item is one analyzed room record. The id is the stable key (typically the
// image URL). Attribute strings and features are lower-cased at construction
// so matching is case-insensitive.
type Item struct {
	id          string
	roomType    string
	maxCapacity int
	viewType    string
	features    []string
	description string
	embedding   []float32
}

// New creates a validated catalog item.
func New(
	id, roomType string, maxCapacity int, viewType string,
	features []string, description string,
) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("%w: id is required", domain.ErrInvalidItem)
	}
	if maxCapacity < 1 {
		return Item{}, fmt.Errorf("%w: max_capacity must be >= 1, got %d", domain.ErrInvalidItem, maxCapacity)
	}

	return Item{
		id:          id,
		roomType:    normalize(roomType),
		maxCapacity: maxCapacity,
		viewType:    normalize(viewType),
		features:    normalizeFeatures(features),
		description: description,
	}, nil
}

// Reconstruct rebuilds an item from persisted state, clamping capacity to the
// invariant minimum instead of failing. Used by the catalog repository.
func Reconstruct(
	id, roomType string, maxCapacity int, viewType string,
	features []string, description string, embedding []float32,
) Item {
	if maxCapacity < 1 {
		maxCapacity = 1
	}
	return Item{
		id:          id,
		roomType:    normalize(roomType),
		maxCapacity: maxCapacity,
		viewType:    normalize(viewType),
		features:    normalizeFeatures(features),
		description: description,
		embedding:   embedding,
	}
}

// WithEmbedding returns a copy of the item carrying the given vector.
func (i Item) WithEmbedding(vec []float32) Item {
	i.embedding = vec
	return i
}

// ID returns the stable item key.
func (i Item) ID() string { return i.id }

// RoomType returns the normalized room type.
func (i Item) RoomType() string { return i.roomType }

// MaxCapacity returns how many people the room fits. Always >= 1.
func (i Item) MaxCapacity() int { return i.maxCapacity }

// ViewType returns the normalized view type.
func (i Item) ViewType() string { return i.viewType }

// Features returns the normalized feature list.
func (i Item) Features() []string { return i.features }

// Description returns the free-text room description.
func (i Item) Description() string { return i.description }

// Embedding returns the precomputed description vector, nil when absent.
func (i Item) Embedding() []float32 { return i.embedding }

// HasEmbedding reports whether a description vector was precomputed.
func (i Item) HasEmbedding() bool { return len(i.embedding) > 0 }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeFeatures(features []string) []string {
	if len(features) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(features))
	out := make([]string, 0, len(features))
	for _, f := range features {
		f = normalize(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
