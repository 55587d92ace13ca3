package search

import (
	"math"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/result"
)

// FormattedResult is the wire-level shape of one ranked hit. Scores are
// integer percentages; the match report carries a flag only for fields the
// query actually requested.
type FormattedResult struct {
	Rank          int         `json:"rank"`
	ID            string      `json:"id"`
	ImageURL      string      `json:"image_url"`
	CombinedScore int         `json:"combined_score"`
	KeywordScore  int         `json:"keyword_score"`
	SemanticScore int         `json:"semantic_score"`
	RoomType      string      `json:"room_type"`
	MaxCapacity   int         `json:"max_capacity"`
	ViewType      string      `json:"view_type"`
	Features      []string    `json:"features"`
	Description   string      `json:"description"`
	Matches       MatchReport `json:"matches"`
}

// MatchReport nests the per-field verdicts for the presentation layer.
type MatchReport struct {
	RoomType    *bool          `json:"room_type,omitempty"`
	MaxCapacity *bool          `json:"max_capacity,omitempty"`
	ViewType    *bool          `json:"view_type,omitempty"`
	Features    *FeatureReport `json:"features,omitempty"`
}

// FeatureReport lists the matched features out of the requested total.
type FeatureReport struct {
	Matched        []string `json:"matched"`
	TotalRequested int      `json:"total_requested"`
}

// Format converts ranked results into display records, attaching each item's
// catalog fields. Pure transformation: no filtering, no reordering.
func Format(results []result.Result, cat *catalog.Catalog) []FormattedResult {
	out := make([]FormattedResult, 0, len(results))
	for _, r := range results {
		item, ok := cat.Get(r.ItemID())
		if !ok {
			// Snapshot handed to the pipeline always contains its own ids.
			continue
		}
		out = append(out, FormattedResult{
			Rank:          r.Rank(),
			ID:            item.ID(),
			ImageURL:      item.ID(),
			CombinedScore: percent(r.CombinedScore()),
			KeywordScore:  percent(r.KeywordScore()),
			SemanticScore: percent(r.SemanticScore()),
			RoomType:      item.RoomType(),
			MaxCapacity:   item.MaxCapacity(),
			ViewType:      item.ViewType(),
			Features:      item.Features(),
			Description:   item.Description(),
			Matches:       matchReport(r),
		})
	}
	return out
}

func matchReport(r result.Result) MatchReport {
	m := r.Matches()
	var report MatchReport
	if v := m.RoomType(); v.Requested() {
		report.RoomType = boolPtr(v.Matched())
	}
	if v := m.MaxCapacity(); v.Requested() {
		report.MaxCapacity = boolPtr(v.Matched())
	}
	if v := m.ViewType(); v.Requested() {
		report.ViewType = boolPtr(v.Matched())
	}
	if f := m.Features(); f.TotalRequested() > 0 {
		matched := f.Matched()
		if matched == nil {
			matched = []string{}
		}
		report.Features = &FeatureReport{Matched: matched, TotalRequested: f.TotalRequested()}
	}
	return report
}

func percent(score float64) int {
	return int(math.Round(score * 100))
}

func boolPtr(b bool) *bool { return &b }
