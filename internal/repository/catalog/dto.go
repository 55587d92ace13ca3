package catalog

import domcat "github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"

// itemRecord is the persisted form of one analyzed room. Records are stored
// as an array so catalog insertion order survives the round trip; that order
// is the ranking tie-break order.
type itemRecord struct {
	ID          string    `json:"id"`
	RoomType    string    `json:"room_type"`
	MaxCapacity int       `json:"max_capacity"`
	ViewType    string    `json:"view_type"`
	Features    []string  `json:"features"`
	Description string    `json:"description"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

func recordFromItem(item domcat.Item) itemRecord {
	return itemRecord{
		ID:          item.ID(),
		RoomType:    item.RoomType(),
		MaxCapacity: item.MaxCapacity(),
		ViewType:    item.ViewType(),
		Features:    item.Features(),
		Description: item.Description(),
		Embedding:   item.Embedding(),
	}
}

func (r itemRecord) toItem() domcat.Item {
	return domcat.Reconstruct(
		r.ID, r.RoomType, r.MaxCapacity, r.ViewType,
		r.Features, r.Description, r.Embedding,
	)
}
