// Command recompute rebuilds every profile's cumulative win/loss/point
// counters from the stored finished games and picks. Run it when the
// incremental accrual counters have drifted (missed finish transition,
// manual game edits, restored backups).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"ncaam_pickem/engine/internal/config"
	"ncaam_pickem/engine/internal/ingest"
	"ncaam_pickem/engine/internal/repository"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	})

	ctx := context.Background()
	cfg := config.MustLoad()

	db, err := repository.NewDatabase(ctx, repository.Config{
		Host:     cfg.DatabaseHost,
		Port:     fmt.Sprintf("%d", cfg.DatabasePort),
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Database: cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	log.Info().Msg("Validating service health...")
	if err := db.Health(ctx); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}

	start := time.Now()
	svc := ingest.NewService(cfg, db, nil, nil, nil)
	if err := svc.RecomputeTotals(ctx); err != nil {
		log.Fatal().Err(err).Msg("Recompute failed")
	}

	log.Info().Dur("duration", time.Since(start)).Msg("Recompute complete")
}
