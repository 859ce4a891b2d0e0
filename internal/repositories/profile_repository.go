package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmlearn/backend/internal/models"
	"go.uber.org/zap"
)

type profileRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewProfileRepository creates a new instance of the ProfileRepository interface
func NewProfileRepository(db *sql.DB, logger *zap.Logger) *profileRepository {
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID retrieves the user's reward counters.
func (r *profileRepository) GetByUserID(ctx context.Context, userID int) (*models.Profile, error) {
	query := `
		SELECT user_id, coins, xp
		FROM profiles
		WHERE user_id = ?
	`

	var profile models.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&profile.UserID, &profile.Coins, &profile.XP)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile for user %d: %w", userID, ErrNotFound)
		}
		r.logger.Error("failed to query profile", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return &profile, nil
}

// AddPoints increments the user's coins and xp by the given amount in a single
// statement, so concurrent awards cannot lose updates.
func (r *profileRepository) AddPoints(ctx context.Context, userID, points int) error {
	query := `
		UPDATE profiles
		SET coins = coins + ?, xp = xp + ?
		WHERE user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query, points, points, userID)
	if err != nil {
		r.logger.Error("failed to add points", zap.Error(err), zap.Int("userID", userID), zap.Int("points", points))
		return fmt.Errorf("failed to add points: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// The driver reports rows changed, not rows matched, so a zero-point
		// award against an existing profile also lands here. Check the row
		// before concluding the profile is missing.
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM profiles WHERE user_id = ?`, userID).Scan(&one)
		if err == sql.ErrNoRows {
			return fmt.Errorf("profile for user %d: %w", userID, ErrNotFound)
		}
		if err != nil {
			r.logger.Error("failed to check profile existence", zap.Error(err), zap.Int("userID", userID))
			return fmt.Errorf("failed to check profile existence: %w", err)
		}
	}

	return nil
}

// Create inserts an empty profile for a new user.
func (r *profileRepository) Create(ctx context.Context, userID int) error {
	query := `
		INSERT INTO profiles (user_id, coins, xp)
		VALUES (?, 0, 0)
	`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to create profile", zap.Error(err), zap.Int("userID", userID))
		return fmt.Errorf("failed to create profile: %w", translateError(err))
	}

	return nil
}
