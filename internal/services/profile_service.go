package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"go.uber.org/zap"
)

type profileService struct {
	profiles ProfileRepository
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ProfileRepository, logger *zap.Logger) *profileService {
	return &profileService{
		profiles: profiles,
		logger:   logger,
	}
}

// Get retrieves the user's reward counters. A user who has never earned
// anything gets an empty profile created on first read.
func (s *profileService) Get(ctx context.Context, userID int) (*models.Profile, error) {
	if userID == GuestUserID {
		return nil, fmt.Errorf("guest users have no profile")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		s.logger.Error("failed to get profile", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := s.profiles.Create(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Another request created it first; it may already hold points.
			return s.profiles.GetByUserID(ctx, userID)
		}
		s.logger.Error("failed to create profile", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &models.Profile{UserID: userID}, nil
}
