package repository

import (
	"context"
	"fmt"

	"ncaam_pickem/engine/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

const gameColumns = `id, external_id, team_a_name, team_a_abbrev, team_b_name, team_b_abbrev,
	       team_a_conference, team_b_conference, start_time, game_date, status,
	       result_a, result_b, spread,
	       team_a_rank, team_b_rank, team_a_record, team_b_record,
	       created_at, updated_at`

func scanGame(row pgx.Row) (*models.Game, error) {
	var game models.Game
	err := row.Scan(
		&game.ID, &game.ExternalID, &game.TeamAName, &game.TeamAAbbrev, &game.TeamBName, &game.TeamBAbbrev,
		&game.TeamAConference, &game.TeamBConference, &game.StartTime, &game.GameDate, &game.Status,
		&game.ResultA, &game.ResultB, &game.Spread,
		&game.TeamARank, &game.TeamBRank, &game.TeamARecord, &game.TeamBRecord,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// GameRepository handles game database operations
type GameRepository struct {
	db *Database
}

// Upsert inserts or updates a game keyed by its feed identifier.
//
// The team_a/team_b columns are only written on insert: once a game exists
// its side ordering is frozen and live changes go through UpdateLive.
func (r *GameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (
			external_id, team_a_name, team_a_abbrev, team_b_name, team_b_abbrev,
			team_a_conference, team_b_conference, start_time, game_date, status,
			result_a, result_b, spread,
			team_a_rank, team_b_rank, team_a_record, team_b_record
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (external_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			game_date = EXCLUDED.game_date,
			status = EXCLUDED.status,
			result_a = EXCLUDED.result_a,
			result_b = EXCLUDED.result_b,
			spread = EXCLUDED.spread,
			team_a_rank = EXCLUDED.team_a_rank,
			team_b_rank = EXCLUDED.team_b_rank,
			team_a_record = EXCLUDED.team_a_record,
			team_b_record = EXCLUDED.team_b_record,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		game.ExternalID, game.TeamAName, game.TeamAAbbrev, game.TeamBName, game.TeamBAbbrev,
		game.TeamAConference, game.TeamBConference, game.StartTime, game.GameDate, game.Status,
		game.ResultA, game.ResultB, game.Spread,
		game.TeamARank, game.TeamBRank, game.TeamARecord, game.TeamBRecord,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	log.Debug().
		Int("id", game.ID).
		Str("external_id", game.ExternalID).
		Str("away", game.TeamAAbbrev).
		Str("home", game.TeamBAbbrev).
		Msg("Game upserted")

	return nil
}

// GetByExternalID retrieves a game by its feed identifier, or nil if the
// game has never been imported.
func (r *GameRepository) GetByExternalID(ctx context.Context, externalID string) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE external_id = $1
	`

	game, err := scanGame(r.db.Pool.QueryRow(ctx, query, externalID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByID retrieves a game by its database ID
func (r *GameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE id = $1
	`

	game, err := scanGame(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("game not found: id=%d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetByDateRange retrieves games whose civil date falls in [start, end].
// Dates are "2006-01-02" strings so a plain BETWEEN compares correctly.
func (r *GameRepository) GetByDateRange(ctx context.Context, start, end string) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE game_date BETWEEN $1 AND $2
		ORDER BY start_time, id
	`

	rows, err := r.db.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get games by date range: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	return games, nil
}

// GetActiveGames retrieves all games currently in progress.
// The scheduler uses this to decide whether the live poll has work to do.
func (r *GameRepository) GetActiveGames(ctx context.Context) ([]*models.Game, error) {
	return r.getByStatus(ctx, models.StatusInProgress)
}

// GetFinalGames retrieves all completed games
func (r *GameRepository) GetFinalGames(ctx context.Context) ([]*models.Game, error) {
	return r.getByStatus(ctx, models.StatusFinal)
}

func (r *GameRepository) getByStatus(ctx context.Context, status string) ([]*models.Game, error) {
	query := `
		SELECT ` + gameColumns + `
		FROM games
		WHERE status = $1
		ORDER BY start_time, id
	`

	rows, err := r.db.Pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get games by status: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating games: %w", err)
	}

	log.Debug().Int("count", len(games)).Str("status", status).Msg("Retrieved games by status")
	return games, nil
}

// UpdateLive applies a live-refresh diff to a stored game, leaving the
// frozen team columns alone.
func (r *GameRepository) UpdateLive(ctx context.Context, update *models.GameUpdate) error {
	query := `
		UPDATE games
		SET status = $1,
		    result_a = $2,
		    result_b = $3,
		    spread = $4,
		    team_a_rank = $5,
		    team_b_rank = $6,
		    team_a_record = $7,
		    team_b_record = $8,
		    updated_at = NOW()
		WHERE external_id = $9
	`

	result, err := r.db.Pool.Exec(ctx, query,
		update.Status, update.ResultA, update.ResultB, update.Spread,
		update.TeamARank, update.TeamBRank, update.TeamARecord, update.TeamBRecord,
		update.ExternalID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game not found: external_id=%s", update.ExternalID)
	}

	return nil
}

// DeleteOrphans removes scheduled games that never received a spread and
// have no picks riding on them. Returns the number of rows deleted.
func (r *GameRepository) DeleteOrphans(ctx context.Context, before string) (int, error) {
	query := `
		DELETE FROM games g
		WHERE g.status = 'Scheduled'
		  AND g.spread IS NULL
		  AND g.game_date < $1
		  AND NOT EXISTS (SELECT 1 FROM picks p WHERE p.game_id = g.id)
	`

	result, err := r.db.Pool.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphan games: %w", err)
	}

	deleted := int(result.RowsAffected())
	if deleted > 0 {
		log.Info().Int("count", deleted).Str("before", before).Msg("Deleted orphan games")
	}
	return deleted, nil
}

// Count returns the total number of games
func (r *GameRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM games`

	var count int
	err := r.db.Pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}

	return count, nil
}
