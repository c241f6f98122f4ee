package repository

import (
	"context"
	"fmt"

	"ncaam_pickem/engine/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// WeeklyWinnerRepository handles weekly winner database operations
type WeeklyWinnerRepository struct {
	db *Database
}

// UpsertForWeek records the champion for a week. Re-running a finalize pass
// for the same week replaces the row instead of duplicating it.
func (r *WeeklyWinnerRepository) UpsertForWeek(ctx context.Context, winner *models.WeeklyWinner) error {
	query := `
		INSERT INTO weekly_winners (week_start, week_end, user_id, wins, losses)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (week_start) DO UPDATE SET
			week_end = EXCLUDED.week_end,
			user_id = EXCLUDED.user_id,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses
		RETURNING id, created_at
	`

	err := r.db.Pool.QueryRow(
		ctx, query,
		winner.WeekStart, winner.WeekEnd, winner.UserID, winner.Wins, winner.Losses,
	).Scan(&winner.ID, &winner.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert weekly winner: %w", err)
	}

	log.Info().
		Str("week_start", winner.WeekStart).
		Str("user_id", winner.UserID).
		Int("wins", winner.Wins).
		Int("losses", winner.Losses).
		Msg("Weekly winner recorded")

	return nil
}

// GetByWeekStart retrieves the champion for the week starting on the given
// Monday civil date, or nil if none has been recorded.
func (r *WeeklyWinnerRepository) GetByWeekStart(ctx context.Context, weekStart string) (*models.WeeklyWinner, error) {
	query := `
		SELECT id, week_start, week_end, user_id, wins, losses, created_at
		FROM weekly_winners
		WHERE week_start = $1
	`

	var winner models.WeeklyWinner
	err := r.db.Pool.QueryRow(ctx, query, weekStart).Scan(
		&winner.ID, &winner.WeekStart, &winner.WeekEnd, &winner.UserID,
		&winner.Wins, &winner.Losses, &winner.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly winner: %w", err)
	}

	return &winner, nil
}

// GetAll retrieves every recorded weekly winner, newest week first
func (r *WeeklyWinnerRepository) GetAll(ctx context.Context) ([]*models.WeeklyWinner, error) {
	query := `
		SELECT id, week_start, week_end, user_id, wins, losses, created_at
		FROM weekly_winners
		ORDER BY week_start DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly winners: %w", err)
	}
	defer rows.Close()

	var winners []*models.WeeklyWinner
	for rows.Next() {
		var winner models.WeeklyWinner
		err := rows.Scan(
			&winner.ID, &winner.WeekStart, &winner.WeekEnd, &winner.UserID,
			&winner.Wins, &winner.Losses, &winner.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan weekly winner: %w", err)
		}
		winners = append(winners, &winner)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly winners: %w", err)
	}

	return winners, nil
}
