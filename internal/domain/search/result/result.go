package result

import "github.com/aliemreeser/HotelRoomSearch/internal/domain/search/match"

// Result is a single scored catalog item. All scores are in [0,1].
// Rank is assigned after the final sort and truncation; a zero rank means
// the result has not been ranked yet.
type Result struct {
	itemID        string
	keywordScore  float64
	semanticScore float64
	combinedScore float64
	matches       match.FieldMatch
	rank          int
}

// New creates an unranked scored result.
func New(
	itemID string, keywordScore, semanticScore, combinedScore float64,
	matches match.FieldMatch,
) Result {
	return Result{
		itemID:        itemID,
		keywordScore:  keywordScore,
		semanticScore: semanticScore,
		combinedScore: combinedScore,
		matches:       matches,
	}
}

// WithRank returns a copy carrying the final 1-based rank.
func (r Result) WithRank(rank int) Result {
	r.rank = rank
	return r
}

// ItemID returns the catalog item key.
func (r Result) ItemID() string { return r.itemID }

// KeywordScore returns the structured-attribute match score.
func (r Result) KeywordScore() float64 { return r.keywordScore }

// SemanticScore returns the embedding similarity score.
func (r Result) SemanticScore() float64 { return r.semanticScore }

// CombinedScore returns the weighted blend used for ranking.
func (r Result) CombinedScore() float64 { return r.combinedScore }

// Matches returns the per-field match evidence.
func (r Result) Matches() match.FieldMatch { return r.matches }

// Rank returns the 1-based final position, 0 if unranked.
func (r Result) Rank() int { return r.rank }
