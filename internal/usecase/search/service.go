package search

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/request"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/result"
	"github.com/aliemreeser/HotelRoomSearch/internal/logger"
	"github.com/aliemreeser/HotelRoomSearch/internal/metrics"
)

// maxConcurrentScores bounds the per-item fan-out. Only items missing a
// precomputed embedding actually reach the provider.
const maxConcurrentScores = 8

// Service is the hybrid ranking pipeline: attribute matching and semantic
// similarity per item, weighted combination, then one deterministic
// filter/sort/rank reduction over the catalog snapshot.
type Service struct {
	embed Embedder
}

// New creates a ranking service.
func New(embed Embedder) *Service {
	return &Service{embed: embed}
}

// Search ranks every catalog item against the request and returns at most
// MaxResultsLimit results with contiguous 1-based ranks.
//
// An item qualifies when either channel clears its threshold (inclusive OR):
// strong semantic matches surface without literal attribute overlap and vice
// versa. Embedding failures degrade that item's semantic score to 0 instead
// of aborting the search. An empty catalog yields an empty result, not an
// error.
func (s *Service) Search(
	ctx context.Context, cat *catalog.Catalog, req request.Request,
) ([]result.Result, error) {
	items := cat.Items()
	if len(items) == 0 {
		return nil, nil
	}

	queryVec := s.embedQuery(ctx, req.Query().RawText())

	// Map step: each item's scores depend only on its own data, so scoring
	// fans out concurrently. Results land at the item's catalog position to
	// keep the reduce step's tie-break order independent of completion order.
	scored := make([]result.Result, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentScores)
	for i, item := range items {
		i, item := i, item // per-iteration copies for pre-Go 1.22 loop variable semantics
		g.Go(func() error {
			keywordScore, matches := MatchAttributes(req.Query(), item)

			semanticScore, err := s.semanticScore(gctx, queryVec, item)
			if err != nil {
				logger.FromContext(ctx).Warn("semantic channel degraded for item",
					zap.String("item_id", item.ID()), zap.Error(err))
				metrics.SearchDegradedItemsTotal.Inc()
				semanticScore = 0
			}

			combined := combine(keywordScore, semanticScore, req.KeywordWeight(), req.SemanticWeight())
			scored[i] = result.New(item.ID(), keywordScore, semanticScore, combined, matches)
			return nil
		})
	}
	// Item scoring never fails the group; degraded items score 0.
	_ = g.Wait()

	ranked := reduce(scored, req)
	metrics.SearchResultsCount.Observe(float64(len(ranked)))
	return ranked, nil
}

// embedQuery vectorizes the query text once per search. A missing or
// unavailable query vector silences the semantic channel for this search;
// the keyword channel still ranks.
func (s *Service) embedQuery(ctx context.Context, rawText string) []float32 {
	if rawText == "" {
		return nil
	}
	res, err := s.embed.Embed(ctx, rawText)
	if err != nil {
		logger.FromContext(ctx).Warn("semantic channel disabled: query embedding failed", zap.Error(err))
		metrics.SearchDegradedItemsTotal.Inc()
		return nil
	}
	return res.Embedding
}

// reduce is the sequential tail of the pipeline: threshold filter, stable
// sort by combined then keyword score (catalog order breaks remaining ties),
// truncation, and rank assignment over the final positions.
func reduce(scored []result.Result, req request.Request) []result.Result {
	kept := make([]result.Result, 0, len(scored))
	for _, r := range scored {
		if r.KeywordScore() >= req.KeywordMinScore() || r.SemanticScore() >= req.SemanticMinScore() {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].CombinedScore() != kept[j].CombinedScore() {
			return kept[i].CombinedScore() > kept[j].CombinedScore()
		}
		return kept[i].KeywordScore() > kept[j].KeywordScore()
	})

	if len(kept) > req.MaxResultsLimit() {
		kept = kept[:req.MaxResultsLimit()]
	}

	for i := range kept {
		kept[i] = kept[i].WithRank(i + 1)
	}
	return kept
}
