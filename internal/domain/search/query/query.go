package query

import (
	"strings"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
)

// wildcard values the upstream parser may emit for a field the user did not
// constrain. They are treated as absent, never as a literal value to match.
var wildcards = map[string]struct{}{
	"":         {},
	"any":      {},
	"standard": {},
}

// Query is a parsed, immutable search query. Scalar fields are optional:
// an absent field contributes nothing to keyword matching. RawText is the
// user's original request and feeds the semantic channel.
type Query struct {
	rawText     string
	roomType    string
	maxCapacity int
	viewType    string
	features    []string
}

// New creates a normalized query. roomType and viewType are lower-cased;
// wildcard values ("", "any", "standard") mean the field is absent.
// maxCapacity <= 0 means absent. Features are lower-cased and de-duplicated.
// Returns domain.ErrEmptyQuery when neither raw text nor any structured
// criterion is present.
func New(
	rawText, roomType string, maxCapacity int, viewType string, features []string,
) (Query, error) {
	q := Query{
		rawText:  strings.TrimSpace(rawText),
		roomType: normalizeField(roomType),
		viewType: normalizeField(viewType),
		features: normalizeFeatures(features),
	}
	if maxCapacity > 0 {
		q.maxCapacity = maxCapacity
	}

	if q.rawText == "" && !q.HasCriteria() {
		return Query{}, domain.ErrEmptyQuery
	}
	return q, nil
}

// RawText returns the original query text.
func (q Query) RawText() string { return q.rawText }

// RoomType returns the requested room type and whether it was requested.
func (q Query) RoomType() (string, bool) { return q.roomType, q.roomType != "" }

// MaxCapacity returns the requested minimum capacity and whether it was requested.
func (q Query) MaxCapacity() (int, bool) { return q.maxCapacity, q.maxCapacity > 0 }

// ViewType returns the requested view type and whether it was requested.
func (q Query) ViewType() (string, bool) { return q.viewType, q.viewType != "" }

// Features returns the requested feature list, possibly empty.
func (q Query) Features() []string { return q.features }

// HasCriteria reports whether any structured field was requested.
// A query without criteria scores 0 on the keyword channel for every item.
func (q Query) HasCriteria() bool {
	return q.roomType != "" || q.maxCapacity > 0 || q.viewType != "" || len(q.features) > 0
}

func normalizeField(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := wildcards[s]; ok {
		return ""
	}
	return s
}

func normalizeFeatures(features []string) []string {
	if len(features) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(features))
	out := make([]string, 0, len(features))
	for _, f := range features {
		f = strings.ToLower(strings.TrimSpace(f))
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
