package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aliemreeser/HotelRoomSearch/internal/db"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
)

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

type mockKV struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	lastTTL time.Duration
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte)}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.lastTTL = ttl
	return nil
}

func newCached(inner domain.Embedder, kv store) *CachedEmbedder {
	return New(inner, kv, "test-model", time.Hour, nil, zap.NewNop())
}

func TestEmbed_MissThenHit(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.5, -1, 2},
		PromptTokens: 3,
		TotalTokens:  3,
	}}
	kv := newMockKV()
	cached := newCached(inner, kv)
	ctx := context.Background()

	first, err := cached.Embed(ctx, "sea view room")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner called %d times, want 1", inner.calls)
	}
	if first.TotalTokens != 3 {
		t.Errorf("miss TotalTokens = %d, want 3", first.TotalTokens)
	}
	if kv.lastTTL != time.Hour {
		t.Errorf("cached with ttl %v, want %v", kv.lastTTL, time.Hour)
	}

	second, err := cached.Embed(ctx, "sea view room")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times after hit, want 1", inner.calls)
	}
	if second.TotalTokens != 0 {
		t.Errorf("hit TotalTokens = %d, want 0", second.TotalTokens)
	}
	if len(second.Embedding) != 3 {
		t.Fatalf("hit embedding length = %d, want 3", len(second.Embedding))
	}
	for i, want := range first.Embedding {
		if second.Embedding[i] != want {
			t.Errorf("embedding[%d] = %f, want %f", i, second.Embedding[i], want)
		}
	}
}

func TestEmbed_DifferentTextsDifferentKeys(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	kv := newMockKV()
	cached := newCached(inner, kv)
	ctx := context.Background()

	if _, err := cached.Embed(ctx, "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cached.Embed(ctx, "second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("inner called %d times, want 2", inner.calls)
	}
	if len(kv.data) != 2 {
		t.Errorf("cache holds %d entries, want 2", len(kv.data))
	}
}

func TestEmbed_StoreFailureFallsThrough(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1, 2}}}
	kv := newMockKV()
	kv.getErr = errors.New("connection refused")
	kv.setErr = errors.New("connection refused")
	cached := newCached(inner, kv)

	res, err := cached.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embedding) != 2 {
		t.Errorf("embedding length = %d, want 2", len(res.Embedding))
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
}

func TestEmbed_CorruptCacheEntryIsMiss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	kv := newMockKV()
	cached := newCached(inner, kv)

	// Pre-seed the exact key with data that is not a float32 sequence.
	kv.data[cached.cacheKey("text")] = []byte{1, 2, 3}

	res, err := cached.Embed(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner called %d times, want 1", inner.calls)
	}
	if len(res.Embedding) != 1 {
		t.Errorf("embedding length = %d, want 1", len(res.Embedding))
	}
}

func TestEmbed_InnerFailurePropagates(t *testing.T) {
	innerErr := errors.New("rate limited")
	inner := &mockEmbedder{err: innerErr}
	cached := newCached(inner, newMockKV())

	_, err := cached.Embed(context.Background(), "text")
	if !errors.Is(err, innerErr) {
		t.Fatalf("expected inner error, got %v", err)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	vec := []float32{0, -0.125, 3.5, 1e9}
	got, err := bytesToVector(vectorToCacheBytes(vec))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(vec) {
		t.Fatalf("length = %d, want %d", len(got), len(vec))
	}
	for i := range vec {
		if got[i] != vec[i] {
			t.Errorf("got[%d] = %f, want %f", i, got[i], vec[i])
		}
	}
}
