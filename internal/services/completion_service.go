package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"go.uber.org/zap"
)

// ProfileRepository is the interface that wraps methods for profiles table data access
type ProfileRepository interface {
	// Method GetByUserID retrieves the user's reward counters. A missing
	// profile satisfies errors.Is(err, repositories.ErrNotFound).
	GetByUserID(ctx context.Context, userID int) (*models.Profile, error)
	// Method AddPoints increments coins and xp by the given amount in one
	// statement. A missing profile satisfies errors.Is(err, repositories.ErrNotFound).
	AddPoints(ctx context.Context, userID, points int) error
	// Method Create inserts an empty profile for a new user.
	Create(ctx context.Context, userID int) error
}

type completionService struct {
	lessons     LessonRepository
	completions CompletionRepository
	profiles    ProfileRepository
	logger      *zap.Logger
}

// NewCompletionService creates a new completion service
func NewCompletionService(lessons LessonRepository, completions CompletionRepository, profiles ProfileRepository, logger *zap.Logger) *completionService {
	return &completionService{
		lessons:     lessons,
		completions: completions,
		profiles:    profiles,
		logger:      logger,
	}
}

// Complete reconciles a lesson completion for a user.
//
// Guests are accepted without persistence and without reward. For
// authenticated users the completion is recorded once: a repeated call is
// still accepted but reports AlreadyCompleted and awards nothing, so clients
// can retry safely. On first completion the lesson's points are added to both
// coins and xp; a missing profile is created on the fly.
func (s *completionService) Complete(ctx context.Context, userID, lessonID int) (*models.CompletionResult, error) {
	if lessonID <= 0 {
		return nil, fmt.Errorf("invalid lesson id")
	}

	if userID == GuestUserID {
		return &models.CompletionResult{Accepted: true}, nil
	}

	lesson, err := s.lessons.GetByID(ctx, lessonID, models.DefaultLanguage)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error("failed to get lesson for completion", zap.Error(err), zap.Int("lessonID", lessonID))
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	if err := s.completions.Create(ctx, userID, lessonID); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return &models.CompletionResult{Accepted: true, AlreadyCompleted: true}, nil
		}
		s.logger.Error("failed to record completion", zap.Error(err), zap.Int("userID", userID), zap.Int("lessonID", lessonID))
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	if err := s.awardPoints(ctx, userID, lesson.Points); err != nil {
		s.logger.Error("failed to award points", zap.Error(err), zap.Int("userID", userID), zap.Int("lessonID", lessonID))
		return nil, fmt.Errorf("failed to award points: %w", err)
	}

	return &models.CompletionResult{Accepted: true, PointsAwarded: lesson.Points}, nil
}

// awardPoints adds points to the user's profile, creating the profile first
// when it does not exist yet. A concurrent request may create the profile in
// between; the duplicate insert is benign and the award is retried either way.
func (s *completionService) awardPoints(ctx context.Context, userID, points int) error {
	err := s.profiles.AddPoints(ctx, userID, points)
	if err == nil || !errors.Is(err, repositories.ErrNotFound) {
		return err
	}
	if err := s.profiles.Create(ctx, userID); err != nil && !errors.Is(err, repositories.ErrDuplicate) {
		return err
	}
	return s.profiles.AddPoints(ctx, userID, points)
}
