package config

import (
	"strings"
	"testing"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/request"
)

func validConfig() Config {
	return Config{
		HTTP:   HTTPConfig{Port: 8080},
		OpenAI: OpenAIConfig{APIKey: "sk-test"},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 60 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("http timeouts = %d/%d/%d, want 10/60/10",
			cfg.HTTP.ReadTimeoutSec, cfg.HTTP.WriteTimeoutSec, cfg.HTTP.ShutdownSec)
	}
	if cfg.OpenAI.EmbeddingModel != "text-embedding-ada-002" {
		t.Errorf("embedding model = %q", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.Ranking.KeywordWeight != request.DefaultKeywordWeight ||
		cfg.Ranking.SemanticWeight != request.DefaultSemanticWeight {
		t.Errorf("weights = %g/%g, want defaults", cfg.Ranking.KeywordWeight, cfg.Ranking.SemanticWeight)
	}
	if cfg.Ranking.KeywordMinScore != request.DefaultKeywordMinScore ||
		cfg.Ranking.SemanticMinScore != request.DefaultSemanticMinScore {
		t.Errorf("thresholds = %g/%g, want defaults", cfg.Ranking.KeywordMinScore, cfg.Ranking.SemanticMinScore)
	}
	if cfg.Ranking.MaxResults != request.DefaultMaxResults {
		t.Errorf("max results = %d, want %d", cfg.Ranking.MaxResults, request.DefaultMaxResults)
	}
	if cfg.Cache.Driver != "memory" || cfg.Cache.TTLHours != 168 {
		t.Errorf("cache = %s/%d, want memory/168", cfg.Cache.Driver, cfg.Cache.TTLHours)
	}
	if cfg.Catalog.AnalyzeWorkers != 4 {
		t.Errorf("analyze workers = %d, want 4", cfg.Catalog.AnalyzeWorkers)
	}
}

func TestApplyDefaults_KeepsExplicitWeights(t *testing.T) {
	cfg := validConfig()
	cfg.Ranking.KeywordWeight = 1
	cfg.ApplyDefaults()

	if cfg.Ranking.KeywordWeight != 1 || cfg.Ranking.SemanticWeight != 0 {
		t.Errorf("weights = %g/%g, want 1/0 preserved",
			cfg.Ranking.KeywordWeight, cfg.Ranking.SemanticWeight)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"missing api key", func(c *Config) { c.OpenAI.APIKey = "" }, "openai.api_key"},
		{"keyword weight out of range", func(c *Config) { c.Ranking.KeywordWeight = 1.5 }, "keyword_weight"},
		{"negative semantic weight", func(c *Config) { c.Ranking.SemanticWeight = -0.1 }, "semantic_weight"},
		{"threshold out of range", func(c *Config) { c.Ranking.SemanticMinScore = 2 }, "semantic_min_score"},
		{"unknown cache driver", func(c *Config) { c.Cache.Driver = "memcached" }, "cache.driver"},
		{"redis without addrs", func(c *Config) { c.Cache.Driver = "redis"; c.Cache.Addrs = nil }, "cache.addrs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.ApplyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_API_KEY", "sk-abc")
	t.Setenv("TEST_EMPTY", "")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "key: ${TEST_API_KEY}", "key: sk-abc"},
		{"unset with default", "url: ${TEST_UNSET:-http://localhost}", "url: http://localhost"},
		{"empty with default", "v: ${TEST_EMPTY:-fallback}", "v: fallback"},
		{"set ignores default", "key: ${TEST_API_KEY:-other}", "key: sk-abc"},
		{"unset without default", "v: ${TEST_UNSET}", "v: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestImageList(t *testing.T) {
	t.Run("generated from base url", func(t *testing.T) {
		c := CatalogConfig{ImageBaseURL: "https://img.example.com/room", ImageCount: 3}
		got := c.ImageList()
		want := []string{
			"https://img.example.com/room1.jpg",
			"https://img.example.com/room2.jpg",
			"https://img.example.com/room3.jpg",
		}
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("explicit list wins", func(t *testing.T) {
		c := CatalogConfig{
			ImageBaseURL: "https://img.example.com/room",
			ImageCount:   3,
			ImageURLs:    []string{"https://cdn.example.com/a.jpg"},
		}
		got := c.ImageList()
		if len(got) != 1 || got[0] != "https://cdn.example.com/a.jpg" {
			t.Errorf("got %v, want the explicit list", got)
		}
	})
}
