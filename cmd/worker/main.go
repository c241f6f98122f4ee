package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ncaam_pickem/engine/internal/cache"
	"ncaam_pickem/engine/internal/client"
	"ncaam_pickem/engine/internal/config"
	"ncaam_pickem/engine/internal/ingest"
	"ncaam_pickem/engine/internal/metrics"
	"ncaam_pickem/engine/internal/repository"
	"ncaam_pickem/engine/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	setupLogger()

	log.Info().Msg("Starting pick'em sync worker")

	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Strs("conferences", cfg.Conferences).
		Float64("spread_ceiling", cfg.SpreadCeiling).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	scoreboard := client.NewScoreboardClient(cfg.ScoreboardBaseURL, cfg.ScoreboardTimeout)
	log.Info().Msg("Scoreboard client initialized")

	var oddsClient *client.OddsClient
	if cfg.OddsFeedEnable && cfg.OddsAPIKey != "" {
		oddsClient = client.NewOddsClient(cfg.OddsBaseURL, cfg.OddsAPIKey, cfg.OddsTimeout)
		log.Info().Msg("Odds client initialized")
	} else {
		log.Warn().Msg("Odds feed disabled, spreads come from the scoreboard only")
	}

	dbConfig := repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     strconv.Itoa(cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	}

	db, err := repository.NewDatabase(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connection established")

	cacheLayer, err := cache.New(ctx, cache.Config{
		Addr:         cfg.RedisAddr(),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		StandingsTTL: time.Duration(cfg.CacheTTLStandings) * time.Second,
		FeedDayTTL:   time.Duration(cfg.CacheTTLFeedDay) * time.Second,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		cacheLayer = nil
	} else {
		defer cacheLayer.Close()
		log.Info().Msg("Redis cache connected")
	}

	if cfg.EnableMetrics {
		go startMetricsServer(cfg.MetricsPort, db)
	}

	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	svc := ingest.NewService(cfg, db, cacheLayer, scoreboard, oddsClient)

	sched := scheduler.NewScheduler(cfg, svc)
	if cfg.EnableScheduler {
		log.Info().Msg("Starting scheduler...")
		if err := sched.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
	}

	if cfg.InitialSyncEnabled {
		log.Info().Msg("Running initial sync...")
		if err := runInitialSync(ctx, svc); err != nil {
			log.Error().Err(err).Msg("Initial sync failed, continuing anyway...")
		} else {
			log.Info().Msg("Initial sync completed successfully")
		}
	}

	<-ctx.Done()

	log.Info().Msg("Shutting down scheduler...")
	sched.Stop()

	log.Info().Msg("Worker shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// runInitialSync brings yesterday, today and tomorrow in sync on startup.
// Yesterday is included so a restart during a late slate still grades any
// games that finished while the worker was down.
func runInitialSync(ctx context.Context, svc *ingest.Service) error {
	now := time.Now()
	for offset := -1; offset <= 1; offset++ {
		day := now.AddDate(0, 0, offset)
		if err := svc.SyncDay(ctx, day, ingest.ModeInitial); err != nil {
			return fmt.Errorf("initial sync failed for %s: %w", day.Format("2006-01-02"), err)
		}
	}
	return nil
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int, db *repository.Database) {
	http.Handle("/metrics", promhttp.Handler())

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}
