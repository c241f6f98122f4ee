package repository

import (
	"context"
	"fmt"

	"ncaam_pickem/engine/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// ProfileRepository handles profile database operations
type ProfileRepository struct {
	db *Database
}

// Upsert inserts or updates a profile's display name, leaving counters alone
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			updated_at = NOW()
		RETURNING total_wins, total_losses, total_points, weekly_wins, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query, profile.UserID, profile.DisplayName).Scan(
		&profile.TotalWins, &profile.TotalLosses, &profile.TotalPoints, &profile.WeeklyWins,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves a single profile
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT user_id, display_name, total_wins, total_losses, total_points, weekly_wins,
		       created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile models.Profile
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.DisplayName,
		&profile.TotalWins, &profile.TotalLosses, &profile.TotalPoints, &profile.WeeklyWins,
		&profile.CreatedAt, &profile.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("profile not found: user_id=%s", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// GetAll retrieves every profile in a stable order
func (r *ProfileRepository) GetAll(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT user_id, display_name, total_wins, total_losses, total_points, weekly_wins,
		       created_at, updated_at
		FROM profiles
		ORDER BY created_at, user_id
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var profile models.Profile
		err := rows.Scan(
			&profile.UserID, &profile.DisplayName,
			&profile.TotalWins, &profile.TotalLosses, &profile.TotalPoints, &profile.WeeklyWins,
			&profile.CreatedAt, &profile.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}

// ApplyAccrual increments a profile's cumulative counters after a pick grades
func (r *ProfileRepository) ApplyAccrual(ctx context.Context, userID string, winsDelta, lossesDelta, pointsDelta int) error {
	query := `
		UPDATE profiles
		SET total_wins = total_wins + $1,
		    total_losses = total_losses + $2,
		    total_points = total_points + $3,
		    updated_at = NOW()
		WHERE user_id = $4
	`

	result, err := r.db.Pool.Exec(ctx, query, winsDelta, lossesDelta, pointsDelta, userID)
	if err != nil {
		return fmt.Errorf("failed to apply accrual: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: user_id=%s", userID)
	}

	log.Debug().
		Str("user_id", userID).
		Int("wins_delta", winsDelta).
		Int("losses_delta", lossesDelta).
		Int("points_delta", pointsDelta).
		Msg("Accrual applied")

	return nil
}

// IncrementWeeklyWins bumps a profile's weekly championship counter
func (r *ProfileRepository) IncrementWeeklyWins(ctx context.Context, userID string) error {
	query := `
		UPDATE profiles
		SET weekly_wins = weekly_wins + 1, updated_at = NOW()
		WHERE user_id = $1
	`

	result, err := r.db.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to increment weekly wins: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: user_id=%s", userID)
	}

	return nil
}

// SetTotals overwrites a profile's cumulative counters. Used by the
// recompute pass to rebuild counters from stored finished games.
func (r *ProfileRepository) SetTotals(ctx context.Context, userID string, wins, losses, points int) error {
	query := `
		UPDATE profiles
		SET total_wins = $1,
		    total_losses = $2,
		    total_points = $3,
		    updated_at = NOW()
		WHERE user_id = $4
	`

	result, err := r.db.Pool.Exec(ctx, query, wins, losses, points, userID)
	if err != nil {
		return fmt.Errorf("failed to set profile totals: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: user_id=%s", userID)
	}

	return nil
}
