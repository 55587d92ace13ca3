package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/aliemreeser/HotelRoomSearch/internal/config"
	"github.com/aliemreeser/HotelRoomSearch/internal/db"
	dbMemory "github.com/aliemreeser/HotelRoomSearch/internal/db/memory"
	dbRedis "github.com/aliemreeser/HotelRoomSearch/internal/db/redis"
	"github.com/aliemreeser/HotelRoomSearch/internal/domain"
	logpkg "github.com/aliemreeser/HotelRoomSearch/internal/logger"
	"github.com/aliemreeser/HotelRoomSearch/internal/metrics"
	catalogrepo "github.com/aliemreeser/HotelRoomSearch/internal/repository/catalog"
	"github.com/aliemreeser/HotelRoomSearch/internal/repository/embcache"
	chiTransport "github.com/aliemreeser/HotelRoomSearch/internal/transport/chi"
	openaiTransport "github.com/aliemreeser/HotelRoomSearch/internal/transport/openai"
	analyzeuc "github.com/aliemreeser/HotelRoomSearch/internal/usecase/analyze"
	healthuc "github.com/aliemreeser/HotelRoomSearch/internal/usecase/health"
	searchuc "github.com/aliemreeser/HotelRoomSearch/internal/usecase/search"
	"github.com/aliemreeser/HotelRoomSearch/internal/version"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting room search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Embedding cache KV store
	var kv db.KV
	switch cfg.Cache.Driver {
	case "redis":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create redis cache store", zap.Error(err))
		}
		defer store.Close()
		if err := store.WaitForReady(context.Background(), 10*time.Second); err != nil {
			logger.Fatal("Redis cache not ready", zap.Error(err))
		}
		kv = store
	default:
		kv = dbMemory.NewStore()
	}

	// Embedder chain: provider behind the KV cache decorator.
	provider := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.EmbeddingModel,
		Dimensions: cfg.OpenAI.EmbeddingDimensions,
		Logger:     logger,
	})
	var embedder domain.Embedder = embcache.New(
		provider, kv, cfg.OpenAI.EmbeddingModel,
		time.Duration(cfg.Cache.TTLHours)*time.Hour,
		metrics.EmbeddingCacheTotal, logger,
	)

	// Catalog store owns persistence of analyzed rooms and their vectors.
	catalogStore := catalogrepo.New(cfg.Catalog.DataPath, logger)
	if err := catalogStore.Load(context.Background()); err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	parser := openaiTransport.NewParser(&openaiTransport.ParserConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.QueryModel,
		Logger:  logger,
	})
	vision := openaiTransport.NewVision(&openaiTransport.VisionConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.VisionModel,
		Logger:  logger,
	})

	searchSvc := searchuc.New(embedder)
	analyzeSvc := analyzeuc.New(vision, catalogStore, embedder, cfg.Catalog.AnalyzeWorkers)
	healthSvc := healthuc.New(provider, catalogStore)

	server := chiTransport.NewServer(
		parser, searchSvc, analyzeSvc, healthSvc, catalogStore,
		cfg.Catalog.ImageList(),
		chiTransport.RankingDefaults{
			KeywordWeight:    cfg.Ranking.KeywordWeight,
			SemanticWeight:   cfg.Ranking.SemanticWeight,
			KeywordMinScore:  cfg.Ranking.KeywordMinScore,
			SemanticMinScore: cfg.Ranking.SemanticMinScore,
			MaxResults:       cfg.Ranking.MaxResults,
		},
		logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Routes(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
