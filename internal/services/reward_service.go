package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"go.uber.org/zap"
)

// RewardRepository is the interface that wraps methods for rewards table data access
type RewardRepository interface {
	// Method GetByLessonID retrieves the voucher of a lesson. A lesson without
	// a voucher satisfies errors.Is(err, repositories.ErrNotFound).
	GetByLessonID(ctx context.Context, lessonID int) (*models.Reward, error)
}

type rewardService struct {
	rewards RewardRepository
	logger  *zap.Logger
}

// NewRewardService creates a new reward service
func NewRewardService(rewards RewardRepository, logger *zap.Logger) *rewardService {
	return &rewardService{
		rewards: rewards,
		logger:  logger,
	}
}

// GetByLessonID retrieves the voucher granted for completing a lesson.
func (s *rewardService) GetByLessonID(ctx context.Context, lessonID int) (*models.Reward, error) {
	if lessonID <= 0 {
		return nil, fmt.Errorf("invalid lesson id")
	}

	reward, err := s.rewards.GetByLessonID(ctx, lessonID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error("failed to get reward", zap.Error(err), zap.Int("lessonID", lessonID))
		}
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}

	return reward, nil
}
