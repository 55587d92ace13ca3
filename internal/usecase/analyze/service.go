package analyze

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
	"github.com/aliemreeser/HotelRoomSearch/internal/logger"
)

const defaultWorkers = 4

// Service runs the image ingestion workflow: vision analysis per image,
// description embedding prewarm, and persistence through the catalog store.
type Service struct {
	vision  Analyzer
	store   Store
	embed   domain.Embedder
	workers int
}

// New creates an ingestion service. workers <= 0 selects the default.
func New(vision Analyzer, store Store, embed domain.Embedder, workers int) *Service {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Service{vision: vision, store: store, embed: embed, workers: workers}
}

// AnalyzeAll analyzes the given image URLs with bounded concurrency and
// persists the results. Already-analyzed images are skipped unless force is
// set. A failed image is logged and skipped; the batch continues. Returns
// the number of images analyzed in this run.
func (s *Service) AnalyzeAll(ctx context.Context, urls []string, force bool) (int, error) {
	var analyzed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, url := range urls {
		if !force {
			if _, ok := s.store.Get(url); ok {
				continue
			}
		}

		url := url // per-iteration copy for pre-Go 1.22 loop variable semantics
		g.Go(func() error {
			log := logger.FromContext(gctx).With(zap.String("image_url", url))

			item, err := s.vision.Analyze(gctx, url)
			if err != nil {
				log.Warn("Image analysis failed, skipping", zap.Error(err))
				return nil
			}

			// Prewarm the description embedding so searches do not pay the
			// provider round trip per item. Best effort: the ranking
			// pipeline fetches on demand when the vector is missing.
			if item.Description() != "" {
				if res, err := s.embed.Embed(gctx, item.Description()); err != nil {
					log.Warn("Description embedding failed, item stored without vector", zap.Error(err))
				} else {
					item = item.WithEmbedding(res.Embedding)
				}
			}

			if err := s.store.Put(gctx, item); err != nil {
				log.Warn("Failed to persist analyzed item", zap.Error(err))
				return nil
			}

			analyzed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(analyzed.Load()), err
	}
	if err := ctx.Err(); err != nil {
		return int(analyzed.Load()), err
	}
	return int(analyzed.Load()), nil
}
