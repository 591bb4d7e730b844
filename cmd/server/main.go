package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/TTMK7777/Japan-Disaster-Alert/internal/cache"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/catalog"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/config"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/httpapi"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/jma"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/llm/claude"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/observability"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/quake"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/service"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/shelter"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/translate"
	"github.com/TTMK7777/Japan-Disaster-Alert/internal/warning"
	"github.com/TTMK7777/Japan-Disaster-Alert/pkg/log"
)

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	log.InitLogger(log.ParseLevel(cfg.Server.LogLevel))

	metrics := observability.NewMetrics()

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal("Failed to load translation catalog: %v", err)
	}
	log.Info("Translation catalog loaded: %d entries", cat.Size())

	store := cache.Open(cfg.Translate.CacheFile)
	metrics.CacheEntries.Set(float64(store.Len()))
	log.Info("Translation cache opened: %d entries in %s", store.Len(), cfg.Translate.CacheFile)

	provider := claude.New(claude.Config{
		APIKey:  cfg.Translate.APIKey,
		Model:   cfg.Translate.Model,
		Timeout: cfg.Upstream.Timeout(),
	})
	if !provider.Enabled() {
		log.Warn("ANTHROPIC_API_KEY is not set; serving static translations only")
	}

	resolver := translate.NewResolver(cat, store, provider, metrics)

	jmaClient := jma.NewClient(cfg.Upstream.JMABaseURL, cfg.Upstream.Timeout(), metrics)
	quakeClient := quake.NewClient(cfg.Upstream.P2PBaseURL, cfg.Upstream.Timeout(), metrics)

	classifier := warning.NewClassifier(clockwork.NewRealClock())
	aggregator := warning.NewAggregator(jmaClient, classifier, cfg.Upstream.FetchConcurrency)

	shelters, err := shelter.Load()
	if err != nil {
		log.Fatal("Failed to load shelter registry: %v", err)
	}
	log.Info("Shelter registry loaded: %d shelters", shelters.Len())

	if cfg.Warm.Enabled {
		warmer := service.NewWarmer(aggregator, resolver, metrics)
		scheduler, err := warmer.Schedule(cfg.Warm.CronExpr)
		if err != nil {
			log.Fatal("Failed to schedule cache warmer: %v", err)
		}
		defer scheduler.Stop()
	}

	server := httpapi.NewServer(resolver, jmaClient, quakeClient, classifier, aggregator,
		httpapi.WithShelters(shelters))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on %s", addr)
		errCh <- server.ListenAndServe(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal("Server failed: %v", err)
	case sig := <-stop:
		log.Info("Received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Shutdown failed: %v", err)
	}
}
