package search

import (
	"strings"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/match"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/query"
)

// MatchAttributes scores one item against the structured fields of a query.
// Each requested scalar field contributes 1 point when it matches; the
// requested feature set contributes the matched ratio as a single field.
// The score is the sum over contributing fields divided by their count, so a
// query that requests nothing scores 0 and the item relies on the semantic
// channel alone. Always in [0,1].
func MatchAttributes(q query.Query, item catalog.Item) (float64, match.FieldMatch) {
	var points, fields float64

	roomType := match.NewVerdict(false, false)
	if want, ok := q.RoomType(); ok {
		fields++
		matched := item.RoomType() == want
		if matched {
			points++
		}
		roomType = match.NewVerdict(true, matched)
	}

	// Capacity is a "fits at least N people" test, not exact equality.
	capacity := match.NewVerdict(false, false)
	if want, ok := q.MaxCapacity(); ok {
		fields++
		matched := item.MaxCapacity() >= want
		if matched {
			points++
		}
		capacity = match.NewVerdict(true, matched)
	}

	viewType := match.NewVerdict(false, false)
	if want, ok := q.ViewType(); ok {
		fields++
		matched := item.ViewType() == want
		if matched {
			points++
		}
		viewType = match.NewVerdict(true, matched)
	}

	features := match.NewFeatureMatch(nil, 0)
	if wanted := q.Features(); len(wanted) > 0 {
		fields++
		matched := matchFeatures(wanted, item.Features())
		features = match.NewFeatureMatch(matched, len(wanted))
		points += features.Ratio()
	}

	fm := match.New(roomType, capacity, viewType, features)
	if fields == 0 {
		return 0, fm
	}
	return points / fields, fm
}

// matchFeatures returns the requested features present on the item.
// A requested feature matches when some item feature contains it, so
// "balcony" matches an item listing "private balcony".
func matchFeatures(wanted, have []string) []string {
	var matched []string
	for _, w := range wanted {
		for _, h := range have {
			if strings.Contains(h, w) {
				matched = append(matched, w)
				break
			}
		}
	}
	return matched
}
