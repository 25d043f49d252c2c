package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"documind/internal/analysis"
	"documind/internal/cache"
	"documind/internal/config"
	"documind/internal/extract"
	"documind/internal/http"
	"documind/internal/indexer"
	"documind/internal/llm"
	"documind/internal/quota"
	"documind/internal/retriever"
	"documind/internal/service"
	"documind/internal/storage"
	"documind/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	cacheRepo := storage.NewCacheRepo(db)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// External capabilities, constructed once and passed explicitly
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize, cfg.EmbeddingBatchSize)
	completer := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	var remote *extract.RemoteExtractor
	if cfg.ExtractorBaseURL != "" {
		remote = extract.NewRemoteExtractor(cfg.ExtractorBaseURL)
	}
	extractor := extract.NewDispatcher(remote)

	// Assemble the core
	chunker := indexer.NewTokenChunker(cfg.ChunkTargetTokens, cfg.ChunkOverlapTokens)
	pipeline := indexer.NewPipeline(chunker, documentRepo, chunkRepo, embedder, vectorStore, cfg.QdrantCollection)
	ret := retriever.New(embedder, vectorStore, cfg.QdrantCollection, documentRepo, chunkRepo)
	results := cache.NewAnalysisCache(cacheRepo)
	analyzer := analysis.New(ret, completer, results, documentRepo, nil)
	classifier := analysis.NewClassifier(completer, cache.NewMemo(256, 10*time.Minute))
	limiter := quota.NewLimiter(documentRepo, cfg.WeeklyUploadLimit)

	documents := service.NewDocumentService(
		documentRepo,
		chunkRepo,
		extractor,
		classifier,
		limiter,
		pipeline,
		vectorStore,
		cfg.QdrantCollection,
		results,
	)

	router := http.NewRouter(&http.Deps{
		Documents: documents,
		Analyzer:  analyzer,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
