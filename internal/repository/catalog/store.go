package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
	domcat "github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
)

// Store owns the analyzed-room catalog: a JSON file on disk plus an
// in-memory snapshot. Mutations rebuild the snapshot copy-on-write, so a
// snapshot handed to the ranking pipeline is never written under it.
// Persisting embeddings alongside the records is this store's job; the
// ranking core never writes back.
type Store struct {
	path   string
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot *domcat.Catalog
}

// New creates a catalog store persisting to the given JSON file.
func New(path string, logger *zap.Logger) *Store {
	return &Store{
		path:     path,
		logger:   logger,
		snapshot: domcat.NewCatalog(),
	}
}

// Load reads the catalog file. A missing file is an empty catalog, not an
// error: the system starts cold until images are analyzed.
func (s *Store) Load(_ context.Context) error {
	data, err := os.ReadFile(filepath.Clean(s.path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Info("No catalog file yet, starting empty", zap.String("path", s.path))
			return nil
		}
		return fmt.Errorf("read catalog %s: %w", s.path, err)
	}

	var records []itemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse catalog %s: %w", s.path, err)
	}

	cat := domcat.NewCatalog()
	for _, r := range records {
		cat.Add(r.toItem())
	}

	s.mu.Lock()
	s.snapshot = cat
	s.mu.Unlock()

	s.logger.Info("Loaded catalog", zap.String("path", s.path), zap.Int("items", cat.Len()))
	return nil
}

// Snapshot returns the current immutable catalog snapshot.
func (s *Store) Snapshot() *domcat.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Get returns one item by id.
func (s *Store) Get(id string) (domcat.Item, bool) {
	return s.Snapshot().Get(id)
}

// Len returns the number of items.
func (s *Store) Len() int {
	return s.Snapshot().Len()
}

// Put adds or replaces an item and persists the catalog.
func (s *Store) Put(ctx context.Context, item domcat.Item) error {
	return s.mutate(ctx, func(cat *domcat.Catalog) error {
		cat.Add(item)
		return nil
	})
}

// SetEmbedding attaches a description vector to an existing item and
// persists it, so later searches skip the provider call.
func (s *Store) SetEmbedding(ctx context.Context, id string, vec []float32) error {
	return s.mutate(ctx, func(cat *domcat.Catalog) error {
		item, ok := cat.Get(id)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}
		cat.Add(item.WithEmbedding(vec))
		return nil
	})
}

// mutate applies fn to a clone of the snapshot, persists the clone, and
// swaps it in. Readers holding the previous snapshot are unaffected.
func (s *Store) mutate(_ context.Context, fn func(*domcat.Catalog) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.snapshot = next
	return nil
}

// persist writes the catalog atomically: temp file in the same directory,
// then rename.
func (s *Store) persist(cat *domcat.Catalog) error {
	items := cat.Items()
	records := make([]itemRecord, len(items))
	for i, item := range items {
		records[i] = recordFromItem(item)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".catalog-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close catalog file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace catalog %s: %w", s.path, err)
	}
	return nil
}
