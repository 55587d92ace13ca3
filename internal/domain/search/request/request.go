package request

import (
	"fmt"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/query"
)

// Ranking defaults and limits.
const (
	DefaultKeywordWeight    = 0.6
	DefaultSemanticWeight   = 0.4
	DefaultKeywordMinScore  = 0.3
	DefaultSemanticMinScore = 0.5
	DefaultMaxResults       = 5
	MaxResults              = 50
)

// Request is a validated ranking request: the structured query plus the
// weighting and threshold configuration for one search invocation.
type Request struct {
	query            query.Query
	keywordWeight    float64
	semanticWeight   float64
	keywordMinScore  float64
	semanticMinScore float64
	maxResults       int
}

// New validates and normalizes ranking parameters.
// Weights must be in [0,1]; when both are zero the defaults (0.6/0.4) apply.
// Thresholds must be in [0,1]. maxResults <= 0 selects the default and values
// above MaxResults are clamped. Validation failures are fatal to the call,
// reported before any scoring work begins.
func New(
	q query.Query,
	keywordWeight, semanticWeight float64,
	keywordMinScore, semanticMinScore float64,
	maxResults int,
) (Request, error) {
	if keywordWeight < 0 || keywordWeight > 1 {
		return Request{}, fmt.Errorf("%w: keyword_weight must be between 0 and 1, got %g",
			domain.ErrInvalidRequest, keywordWeight)
	}
	if semanticWeight < 0 || semanticWeight > 1 {
		return Request{}, fmt.Errorf("%w: semantic_weight must be between 0 and 1, got %g",
			domain.ErrInvalidRequest, semanticWeight)
	}
	if keywordWeight == 0 && semanticWeight == 0 {
		keywordWeight = DefaultKeywordWeight
		semanticWeight = DefaultSemanticWeight
	}
	if keywordMinScore < 0 || keywordMinScore > 1 {
		return Request{}, fmt.Errorf("%w: keyword_min_score must be between 0 and 1, got %g",
			domain.ErrInvalidRequest, keywordMinScore)
	}
	if semanticMinScore < 0 || semanticMinScore > 1 {
		return Request{}, fmt.Errorf("%w: semantic_min_score must be between 0 and 1, got %g",
			domain.ErrInvalidRequest, semanticMinScore)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxResults {
		maxResults = MaxResults
	}

	return Request{
		query:            q,
		keywordWeight:    keywordWeight,
		semanticWeight:   semanticWeight,
		keywordMinScore:  keywordMinScore,
		semanticMinScore: semanticMinScore,
		maxResults:       maxResults,
	}, nil
}

// Query returns the structured query.
func (r *Request) Query() query.Query { return r.query }

// KeywordWeight returns the keyword channel weight.
func (r *Request) KeywordWeight() float64 { return r.keywordWeight }

// SemanticWeight returns the semantic channel weight.
func (r *Request) SemanticWeight() float64 { return r.semanticWeight }

// KeywordMinScore returns the keyword channel threshold.
func (r *Request) KeywordMinScore() float64 { return r.keywordMinScore }

// SemanticMinScore returns the semantic channel threshold.
func (r *Request) SemanticMinScore() float64 { return r.semanticMinScore }

// MaxResultsLimit returns the result cap.
func (r *Request) MaxResultsLimit() int { return r.maxResults }
