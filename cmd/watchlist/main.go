package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ankurmani/stock-mvp/internal/cache"
	"github.com/ankurmani/stock-mvp/internal/config"
	"github.com/ankurmani/stock-mvp/internal/provider"
	"github.com/ankurmani/stock-mvp/internal/scheduler"
	"github.com/ankurmani/stock-mvp/internal/scoring"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("watchlist scorer starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Open the local market-data store; it serves both provider contracts.
	store, err := provider.NewSQLiteStore(cfg.Store.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("open market store")
	}
	defer store.Close()

	// Fetch cache in front of the providers.
	fetchCache := cache.New(cfg.Cache.PriceTTL.Std(), cfg.Cache.NewsTTL.Std())

	engine := scoring.NewEngine(cfg, fetchCache, store, store)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, engine, fetchCache)
	if err := sched.Register(cfg.Schedule.EODCron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, scoring watchlist now")
		go sched.RunNow()
	}

	log.Info().Int("tickers", len(cfg.Watchlist)).Str("cron", cfg.Schedule.EODCron).Msg("watchlist scorer running, Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	log.Info().Msg("watchlist scorer stopped")
}
