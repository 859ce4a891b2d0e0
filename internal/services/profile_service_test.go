package services

import (
	"context"
	"testing"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfileService_Get(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		profiles      *mockProfileRepository
		expectedError bool
		check         func(*testing.T, *models.Profile, *mockProfileRepository)
	}{
		{
			name:   "success",
			userID: 7,
			profiles: &mockProfileRepository{
				profile: &models.Profile{UserID: 7, Coins: 120, XP: 340},
			},
			check: func(t *testing.T, profile *models.Profile, _ *mockProfileRepository) {
				assert.Equal(t, 120, profile.Coins)
				assert.Equal(t, 340, profile.XP)
			},
		},
		{
			name:     "missing profile is created empty",
			userID:   8,
			profiles: &mockProfileRepository{getErr: repositories.ErrNotFound},
			check: func(t *testing.T, profile *models.Profile, profiles *mockProfileRepository) {
				assert.Equal(t, 8, profile.UserID)
				assert.Equal(t, 0, profile.Coins)
				assert.Equal(t, 0, profile.XP)
				assert.Equal(t, 1, profiles.createCalls)
			},
		},
		{
			name:   "profile created concurrently on first read",
			userID: 9,
			profiles: &mockProfileRepository{
				getErrOnce: repositories.ErrNotFound,
				createErr:  repositories.ErrDuplicate,
				profile:    &models.Profile{UserID: 9, Coins: 15, XP: 15},
			},
			check: func(t *testing.T, profile *models.Profile, profiles *mockProfileRepository) {
				assert.Equal(t, 9, profile.UserID)
				assert.Equal(t, 15, profile.Coins)
				assert.Equal(t, 1, profiles.createCalls)
			},
		},
		{
			name:          "guest has no profile",
			userID:        GuestUserID,
			profiles:      &mockProfileRepository{},
			expectedError: true,
		},
		{
			name:          "database error",
			userID:        7,
			profiles:      &mockProfileRepository{getErr: assert.AnError},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			svc := NewProfileService(tt.profiles, logger)

			profile, err := svc.Get(context.Background(), tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, profile)
				tt.check(t, profile, tt.profiles)
			}
		})
	}
}
