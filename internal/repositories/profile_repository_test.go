package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupProfileTestRepository creates a repository with a mock database
func setupProfileTestRepository(t *testing.T) (*profileRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	repo := NewProfileRepository(db, logger)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestProfileRepository_GetByUserID(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedIs    error
		expectedCoins int
		expectedXP    int
	}{
		{
			name:   "success",
			userID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"user_id", "coins", "xp"}).
					AddRow(7, 120, 340)
				mock.ExpectQuery(`SELECT user_id, coins, xp FROM profiles WHERE user_id = \?`).
					WithArgs(7).
					WillReturnRows(rows)
			},
			expectedCoins: 120,
			expectedXP:    340,
		},
		{
			name:   "not found",
			userID: 999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT user_id, coins, xp FROM profiles WHERE user_id = \?`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			expectedIs:    ErrNotFound,
		},
		{
			name:   "database error",
			userID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT user_id, coins, xp FROM profiles WHERE user_id = \?`).
					WithArgs(7).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProfileTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			result, err := repo.GetByUserID(context.Background(), tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, result)
				if tt.expectedIs != nil {
					assert.ErrorIs(t, err, tt.expectedIs)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, tt.userID, result.UserID)
				assert.Equal(t, tt.expectedCoins, result.Coins)
				assert.Equal(t, tt.expectedXP, result.XP)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfileRepository_AddPoints(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		points        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedIs    error
	}{
		{
			name:   "success",
			userID: 7,
			points: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE profiles SET coins = coins \+ \?, xp = xp \+ \? WHERE user_id = \?`).
					WithArgs(10, 10, 7).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "zero points on existing profile",
			userID: 7,
			points: 0,
			setupMock: func(mock sqlmock.Sqlmock) {
				// MySQL reports zero affected rows when the update changes
				// nothing, which must not read as a missing profile.
				mock.ExpectExec(`UPDATE profiles SET coins = coins \+ \?, xp = xp \+ \? WHERE user_id = \?`).
					WithArgs(0, 0, 7).
					WillReturnResult(sqlmock.NewResult(0, 0))
				rows := sqlmock.NewRows([]string{"1"}).AddRow(1)
				mock.ExpectQuery(`SELECT 1 FROM profiles WHERE user_id = \?`).
					WithArgs(7).
					WillReturnRows(rows)
			},
		},
		{
			name:   "missing profile",
			userID: 999,
			points: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE profiles SET coins = coins \+ \?, xp = xp \+ \? WHERE user_id = \?`).
					WithArgs(10, 10, 999).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT 1 FROM profiles WHERE user_id = \?`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			expectedIs:    ErrNotFound,
		},
		{
			name:   "database error",
			userID: 7,
			points: 10,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE profiles SET coins = coins \+ \?, xp = xp \+ \? WHERE user_id = \?`).
					WithArgs(10, 10, 7).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProfileTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.AddPoints(context.Background(), tt.userID, tt.points)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.expectedIs != nil {
					assert.ErrorIs(t, err, tt.expectedIs)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfileRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedIs    error
	}{
		{
			name:   "success",
			userID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO profiles \(user_id, coins, xp\) VALUES \(\?, 0, 0\)`).
					WithArgs(7).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name:   "duplicate profile",
			userID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO profiles \(user_id, coins, xp\) VALUES \(\?, 0, 0\)`).
					WithArgs(7).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'PRIMARY'"})
			},
			expectedError: true,
			expectedIs:    ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupProfileTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.expectedIs != nil {
					assert.ErrorIs(t, err, tt.expectedIs)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
