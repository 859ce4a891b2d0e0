package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmlearn/backend/internal/models"
	"go.uber.org/zap"
)

type rewardRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRewardRepository creates a new instance of the RewardRepository interface
func NewRewardRepository(db *sql.DB, logger *zap.Logger) *rewardRepository {
	return &rewardRepository{
		db:     db,
		logger: logger,
	}
}

// GetByLessonID retrieves the voucher granted for completing a lesson.
func (r *rewardRepository) GetByLessonID(ctx context.Context, lessonID int) (*models.Reward, error) {
	query := `
		SELECT id, lesson_id, percentage, item
		FROM rewards
		WHERE lesson_id = ?
	`

	var reward models.Reward
	err := r.db.QueryRowContext(ctx, query, lessonID).Scan(&reward.ID, &reward.LessonID, &reward.Percentage, &reward.Item)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("reward for lesson %d: %w", lessonID, ErrNotFound)
		}
		r.logger.Error("failed to query reward", zap.Error(err), zap.Int("lessonID", lessonID))
		return nil, fmt.Errorf("failed to query reward: %w", err)
	}

	return &reward, nil
}
