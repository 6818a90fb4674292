package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/adapter/httpadapter"
	kafkaadapter "github.com/jm-RBT/Pagasa-WebScraper/internal/adapter/kafka"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/bulletin"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/config"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/gazetteer"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/observability"
	"github.com/jm-RBT/Pagasa-WebScraper/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gaz, err := gazetteer.Open(ctx, cfg.GazetteerPath)
	if err != nil {
		logger.Error("failed to open gazetteer", "path", cfg.GazetteerPath, "error", err)
		os.Exit(1)
	}
	classifier := gazetteer.NewCachedClassifier(gaz, cfg.GazetteerCacheSize, metrics.ObserveCache)
	logger.Info("gazetteer loaded", "path", cfg.GazetteerPath, "entries", gaz.Len(), "cache_size", cfg.GazetteerCacheSize)

	aliases, err := config.LoadAliases(cfg.AliasesFile)
	if err != nil {
		logger.Error("failed to load header aliases", "path", cfg.AliasesFile, "error", err)
		os.Exit(1)
	}

	extractor := bulletin.NewExtractor(aliases, classifier, logger, metrics)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(extractor, cfg.OutputMode, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize, cfg.ExtractWorkers)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, extractor, cfg.OutputMode, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
