package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
	domcat "github.com/aliemreeser/HotelRoomSearch/internal/domain/catalog"
)

func makeItem(t *testing.T, id string) domcat.Item {
	t.Helper()
	item, err := domcat.New(id, "double", 2, "sea", []string{"balcony"}, "desc "+id)
	if err != nil {
		t.Fatalf("domcat.New(%s): %v", id, err)
	}
	return item
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	return New(path, zap.NewNop()), path
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	store, path := newTestStore(t)
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected an error for a corrupt catalog file")
	}
}

func TestPutLoadRoundTrip(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	ids := []string{"img/c.jpg", "img/a.jpg", "img/b.jpg"}
	for _, id := range ids {
		if err := store.Put(ctx, makeItem(t, id)); err != nil {
			t.Fatalf("Put(%s): %v", id, err)
		}
	}

	reloaded := New(path, zap.NewNop())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reloaded.Len())
	}

	// Insertion order survives the round trip.
	items := reloaded.Snapshot().Items()
	for i, want := range ids {
		if items[i].ID() != want {
			t.Errorf("items[%d].ID() = %q, want %q", i, items[i].ID(), want)
		}
	}

	item, ok := reloaded.Get("img/a.jpg")
	if !ok {
		t.Fatal("item img/a.jpg missing after reload")
	}
	if item.RoomType() != "double" || item.MaxCapacity() != 2 || item.ViewType() != "sea" {
		t.Errorf("reloaded fields = %s/%d/%s, want double/2/sea",
			item.RoomType(), item.MaxCapacity(), item.ViewType())
	}
}

func TestSetEmbedding(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, makeItem(t, "img/a.jpg")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	vec := []float32{0.25, -0.5, 1}
	if err := store.SetEmbedding(ctx, "img/a.jpg", vec); err != nil {
		t.Fatalf("SetEmbedding: %v", err)
	}

	reloaded := New(path, zap.NewNop())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	item, _ := reloaded.Get("img/a.jpg")
	got := item.Embedding()
	if len(got) != len(vec) {
		t.Fatalf("embedding length = %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("embedding[%d] = %f, want %f", i, got[i], vec[i])
		}
	}
}

func TestSetEmbedding_UnknownItem(t *testing.T) {
	store, _ := newTestStore(t)
	err := store.SetEmbedding(context.Background(), "missing", []float32{1})
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestPut_SnapshotIsolation(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, makeItem(t, "img/a.jpg")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	before := store.Snapshot()

	if err := store.Put(ctx, makeItem(t, "img/b.jpg")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if before.Len() != 1 {
		t.Errorf("earlier snapshot Len() = %d after mutation, want 1", before.Len())
	}
	if store.Len() != 2 {
		t.Errorf("store Len() = %d, want 2", store.Len())
	}
}

func TestPut_ReplaceKeepsPosition(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"img/a.jpg", "img/b.jpg"} {
		if err := store.Put(ctx, makeItem(t, id)); err != nil {
			t.Fatalf("Put(%s): %v", id, err)
		}
	}

	replacement, err := domcat.New("img/a.jpg", "suite", 4, "garden", nil, "updated")
	if err != nil {
		t.Fatalf("domcat.New: %v", err)
	}
	if err := store.Put(ctx, replacement); err != nil {
		t.Fatalf("Put replacement: %v", err)
	}

	items := store.Snapshot().Items()
	if len(items) != 2 || items[0].ID() != "img/a.jpg" || items[0].RoomType() != "suite" {
		t.Errorf("items[0] = %s/%s, want img/a.jpg/suite", items[0].ID(), items[0].RoomType())
	}
}
