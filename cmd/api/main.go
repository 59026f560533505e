// ABOUTME: Main entry point for the Feeds API server
// ABOUTME: Wires configuration, storage, extraction and sync handlers and starts the HTTP server

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feeds-app-api/api"
	"feeds-app-api/api/handlers"
	"feeds-app-api/api/middleware"
	"feeds-app-api/core/classify"
	"feeds-app-api/core/extract"
	"feeds-app-api/core/interfaces"
	"feeds-app-api/core/reconcile"
	"feeds-app-api/infrastructure/cache/backend"
	"feeds-app-api/infrastructure/captions/ytdlp"
	stdhttp "feeds-app-api/infrastructure/http/standard"
	"feeds-app-api/infrastructure/kvstore"
	logruslogger "feeds-app-api/infrastructure/logger/logrus"
	"feeds-app-api/pkg/config"
	"feeds-app-api/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.New(logruslogger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	flags := featureflags.NewEnvManager("")
	logger.Info("Starting Feeds API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"store_type": cfg.Store.Type,
		"features":   flags.GetAllFlags(),
	})

	cache, err := backend.Open(cfg.Cache.Type, cfg.Cache, logger)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer cache.Close()

	storeCfg := cfg.Cache
	storeCfg.SQLite.Path = cfg.Store.SQLitePath
	store, err := backend.OpenStore(cfg.Store.Type, storeCfg, logger)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer store.Close()
	if store.Type == backend.TypeMemory {
		logger.Warn("Snapshot store is in memory; sync state is lost on restart", nil)
	}
	logger.Info("Storage ready", map[string]interface{}{
		"cache": cache.Type,
		"store": store.Type,
	})

	// Outbound calls are logged with the inbound request ID
	transport := &middleware.LoggingRoundTripper{Transport: http.DefaultTransport, Logger: logger}

	apiClient := stdhttp.New(stdhttp.Options{
		Timeout:   cfg.Extraction.ArticleTimeout,
		Headers:   map[string]string{"User-Agent": stdhttp.DefaultUserAgent},
		Transport: transport,
		Logger:    logger,
	})
	articleClient := stdhttp.New(stdhttp.Options{
		Timeout:   cfg.Extraction.ArticleTimeout,
		Headers:   stdhttp.BrowserHeaders(),
		Transport: transport,
		Logger:    logger,
	})
	feedFetcher := stdhttp.NewFetcher(stdhttp.New(stdhttp.Options{
		Timeout:   cfg.Proxy.Timeout,
		Headers:   stdhttp.FeedHeaders(),
		Retry:     stdhttp.RetryPolicy{MaxRetries: cfg.Proxy.MaxRetries, Backoff: cfg.Proxy.Backoff},
		Transport: transport,
		Logger:    logger,
	}), 0)

	captions := ytdlp.New(ytdlp.Config{
		Binary:      cfg.Extraction.Captions.Binary,
		Languages:   cfg.Extraction.Captions.Languages,
		Timeout:     cfg.Extraction.Captions.Timeout,
		OutputLimit: cfg.Extraction.Captions.OutputLimit,
	}, logger)

	deps := interfaces.Dependencies{
		Cache:      cache.Cache,
		HTTPClient: apiClient,
		Logger:     logger,
	}

	rules := classify.DefaultRules()
	if len(cfg.Extraction.PodcastKeywords) > 0 {
		rules.PodcastSourceKeywords = cfg.Extraction.PodcastKeywords
	}
	dispatcher := extract.NewDispatcher(deps, classify.New(rules), extract.NewStrategies(deps, extract.StrategyConfig{
		ArticleClient: articleClient,
		Captions:      captions,
		BlueskyAPI:    cfg.Extraction.BlueskyAPI,
	}))
	if flags.IsEnabled(featureflags.ExtractionCache) {
		dispatcher.SetCacheTTL(cfg.Cache.TTL)
	} else {
		dispatcher.SetCacheTTL(0)
	}

	snapshots := reconcile.NewSnapshotStore(kvstore.New(store.Cache, cfg.Store.Prefix))

	apiConfig := api.APIConfig{
		Logger:    logger,
		RateLimit: cfg.Server.RateLimit,
		RateBurst: cfg.Server.RateBurst,
	}
	if !flags.IsEnabled(featureflags.RateLimit) {
		apiConfig.RateLimit = 0
	}
	humaAPI, router, limiter := api.NewServerAPI(apiConfig)
	if limiter != nil {
		defer limiter.Stop()
	}

	handlers.NewExtractHandler(dispatcher).RegisterRoutes(humaAPI)
	handlers.NewProxyHandler(feedFetcher, logger).RegisterRoutes(humaAPI)
	if flags.IsEnabled(featureflags.Sync) {
		handlers.NewSyncHandler(snapshots, logger).RegisterRoutes(humaAPI)
	}
	handlers.NewSourcesHandler().RegisterRoutes(humaAPI)

	srv := &http.Server{
		Addr:        ":" + cfg.Server.Port,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Caption downloads can run for a minute before the article timeout applies
		WriteTimeout: cfg.Extraction.Captions.Timeout + cfg.Extraction.ArticleTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("Shutting down server...", map[string]interface{}{"signal": sig.String()})
	case err := <-serveErr:
		logger.Error("HTTP server error", map[string]interface{}{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}

func init() {
	fmt.Println(`
    ______              __         ___    ____  ____
   / ____/__  ___  ____/ /____    /   |  / __ \/  _/
  / /_  / _ \/ _ \/ __  / ___/   / /| | / /_/ // /
 / __/ /  __/  __/ /_/ (__  )   / ___ |/ ____// /
/_/    \___/\___/\__,_/____/   /_/  |_/_/   /___/
	`)
}
