package repository

import (
	"context"
	"errors"
	"fmt"

	"ncaam_pickem/engine/internal/models"

	"github.com/rs/zerolog/log"
)

// ErrPickRejected is returned when a pick cannot be placed because the game
// has left the Scheduled state or the chosen team is not in the game.
var ErrPickRejected = errors.New("pick rejected: game locked or unknown team")

// PickRepository handles pick database operations
type PickRepository struct {
	db *Database
}

// Upsert places or replaces a user's pick for a game. Last write wins.
//
// The insert is guarded so picks only land while the game is still
// Scheduled and the chosen team is actually playing in it.
func (r *PickRepository) Upsert(ctx context.Context, pick *models.Pick) error {
	query := `
		INSERT INTO picks (user_id, game_id, team_name)
		SELECT $1, $2, $3
		WHERE EXISTS (
			SELECT 1 FROM games
			WHERE id = $2
			  AND status = 'Scheduled'
			  AND (team_a_name = $3 OR team_b_name = $3)
		)
		ON CONFLICT (user_id, game_id) DO UPDATE SET
			team_name = EXCLUDED.team_name,
			updated_at = NOW()
	`

	result, err := r.db.Pool.Exec(ctx, query, pick.UserID, pick.GameID, pick.TeamName)
	if err != nil {
		return fmt.Errorf("failed to upsert pick: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: user_id=%s game_id=%d", ErrPickRejected, pick.UserID, pick.GameID)
	}

	log.Debug().
		Str("user_id", pick.UserID).
		Int("game_id", pick.GameID).
		Str("team", pick.TeamName).
		Msg("Pick upserted")

	return nil
}

// GetByGameID retrieves all picks for a single game
func (r *PickRepository) GetByGameID(ctx context.Context, gameID int) ([]*models.Pick, error) {
	return r.query(ctx, `WHERE p.game_id = $1`, gameID)
}

// GetByGameIDs retrieves all picks for a set of games
func (r *PickRepository) GetByGameIDs(ctx context.Context, gameIDs []int) ([]*models.Pick, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	return r.query(ctx, `WHERE p.game_id = ANY($1)`, gameIDs)
}

// GetAll retrieves every pick, ordered for deterministic recompute passes
func (r *PickRepository) GetAll(ctx context.Context) ([]*models.Pick, error) {
	return r.query(ctx, ``)
}

func (r *PickRepository) query(ctx context.Context, where string, args ...interface{}) ([]*models.Pick, error) {
	query := `
		SELECT p.id, p.user_id, p.game_id, p.team_name, pr.display_name,
		       p.created_at, p.updated_at
		FROM picks p
		JOIN profiles pr ON pr.user_id = p.user_id
		` + where + `
		ORDER BY p.game_id, p.id
	`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks: %w", err)
	}
	defer rows.Close()

	var picks []*models.Pick
	for rows.Next() {
		var pick models.Pick
		err := rows.Scan(
			&pick.ID, &pick.UserID, &pick.GameID, &pick.TeamName, &pick.UserName,
			&pick.CreatedAt, &pick.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		picks = append(picks, &pick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating picks: %w", err)
	}

	return picks, nil
}

// Count returns the total number of picks
func (r *PickRepository) Count(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM picks`

	var count int
	err := r.db.Pool.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}

	return count, nil
}
