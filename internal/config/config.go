package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aliemreeser/HotelRoomSearch/internal/domain/search/request"
)

// Config holds the room search API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Ranking RankingConfig `yaml:"ranking"`
	Catalog CatalogConfig `yaml:"catalog"`
	Cache   CacheConfig   `yaml:"cache"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// OpenAIConfig holds model provider settings.
type OpenAIConfig struct {
	APIKey              string `yaml:"api_key"`
	BaseURL             string `yaml:"base_url"`
	EmbeddingModel      string `yaml:"embedding_model"`
	EmbeddingDimensions int    `yaml:"embedding_dimensions"`
	QueryModel          string `yaml:"query_model"`
	VisionModel         string `yaml:"vision_model"`
}

// RankingConfig holds the default hybrid ranking parameters. Callers may
// override any of them per search request.
type RankingConfig struct {
	KeywordWeight    float64 `yaml:"keyword_weight"`
	SemanticWeight   float64 `yaml:"semantic_weight"`
	KeywordMinScore  float64 `yaml:"keyword_min_score"`
	SemanticMinScore float64 `yaml:"semantic_min_score"`
	MaxResults       int     `yaml:"max_results"`
}

// CatalogConfig holds catalog persistence and image source settings.
type CatalogConfig struct {
	DataPath       string   `yaml:"data_path"`
	ImageBaseURL   string   `yaml:"image_base_url"`
	ImageCount     int      `yaml:"image_count"`
	AnalyzeWorkers int      `yaml:"analyze_workers"`
	ImageURLs      []string `yaml:"image_urls"` // explicit list, overrides base_url+count
}

// CacheConfig holds embedding cache settings.
type CacheConfig struct {
	Driver   string   `yaml:"driver"` // memory, redis (default: memory)
	Addrs    []string `yaml:"addrs"`
	Password string   `yaml:"password"`
	TTLHours int      `yaml:"ttl_hours"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Search requests may wait on embedding calls for uncached items.
		c.HTTP.WriteTimeoutSec = 60
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.OpenAI.EmbeddingModel == "" {
		c.OpenAI.EmbeddingModel = "text-embedding-ada-002"
	}
	if c.OpenAI.QueryModel == "" {
		c.OpenAI.QueryModel = "gpt-4-turbo"
	}
	if c.OpenAI.VisionModel == "" {
		c.OpenAI.VisionModel = "gpt-4o"
	}
	if c.Ranking.KeywordWeight == 0 && c.Ranking.SemanticWeight == 0 {
		c.Ranking.KeywordWeight = request.DefaultKeywordWeight
		c.Ranking.SemanticWeight = request.DefaultSemanticWeight
	}
	if c.Ranking.KeywordMinScore == 0 {
		c.Ranking.KeywordMinScore = request.DefaultKeywordMinScore
	}
	if c.Ranking.SemanticMinScore == 0 {
		c.Ranking.SemanticMinScore = request.DefaultSemanticMinScore
	}
	if c.Ranking.MaxResults <= 0 {
		c.Ranking.MaxResults = request.DefaultMaxResults
	}
	if c.Catalog.DataPath == "" {
		c.Catalog.DataPath = filepath.Join("data", "analyzed_rooms.json")
	}
	if c.Catalog.AnalyzeWorkers <= 0 {
		c.Catalog.AnalyzeWorkers = 4
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 24 * 7
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	if c.Ranking.KeywordWeight < 0 || c.Ranking.KeywordWeight > 1 {
		return fmt.Errorf("ranking.keyword_weight must be between 0 and 1, got %g", c.Ranking.KeywordWeight)
	}
	if c.Ranking.SemanticWeight < 0 || c.Ranking.SemanticWeight > 1 {
		return fmt.Errorf("ranking.semantic_weight must be between 0 and 1, got %g", c.Ranking.SemanticWeight)
	}
	if c.Ranking.KeywordMinScore < 0 || c.Ranking.KeywordMinScore > 1 {
		return fmt.Errorf("ranking.keyword_min_score must be between 0 and 1, got %g", c.Ranking.KeywordMinScore)
	}
	if c.Ranking.SemanticMinScore < 0 || c.Ranking.SemanticMinScore > 1 {
		return fmt.Errorf("ranking.semantic_min_score must be between 0 and 1, got %g", c.Ranking.SemanticMinScore)
	}
	switch c.Cache.Driver {
	case "memory":
		// ok
	case "redis":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("cache.driver must be \"memory\" or \"redis\", got %q", c.Cache.Driver)
	}
	return nil
}

// ImageList expands the configured image source into concrete URLs.
func (c *CatalogConfig) ImageList() []string {
	if len(c.ImageURLs) > 0 {
		return c.ImageURLs
	}
	urls := make([]string, 0, c.ImageCount)
	for i := 1; i <= c.ImageCount; i++ {
		urls = append(urls, fmt.Sprintf("%s%d.jpg", c.ImageBaseURL, i))
	}
	return urls
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
