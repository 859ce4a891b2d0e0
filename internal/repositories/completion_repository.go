package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

type completionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCompletionRepository creates a new instance of the CompletionRepository interface
func NewCompletionRepository(db *sql.DB, logger *zap.Logger) *completionRepository {
	return &completionRepository{
		db:     db,
		logger: logger,
	}
}

// Create records that the user completed the lesson. The user_lessons table
// has a uniqueness constraint on (user_id, lesson_id); inserting an existing
// pair returns an error satisfying errors.Is(err, ErrDuplicate).
func (r *completionRepository) Create(ctx context.Context, userID, lessonID int) error {
	query := `
		INSERT INTO user_lessons (user_id, lesson_id)
		VALUES (?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, userID, lessonID)
	if err != nil {
		terr := translateError(err)
		if errors.Is(terr, ErrDuplicate) {
			return fmt.Errorf("completion for user %d lesson %d: %w", userID, lessonID, ErrDuplicate)
		}
		r.logger.Error("failed to insert completion", zap.Error(err), zap.Int("userID", userID), zap.Int("lessonID", lessonID))
		return fmt.Errorf("failed to insert completion: %w", terr)
	}

	return nil
}

// Exists reports whether the user has already completed the lesson.
func (r *completionRepository) Exists(ctx context.Context, userID, lessonID int) (bool, error) {
	var one int
	query := `SELECT 1 FROM user_lessons WHERE user_id = ? AND lesson_id = ?`
	err := r.db.QueryRowContext(ctx, query, userID, lessonID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		r.logger.Error("failed to check completion", zap.Error(err), zap.Int("userID", userID), zap.Int("lessonID", lessonID))
		return false, fmt.Errorf("failed to check completion: %w", err)
	}
	return true, nil
}

// GetCompletedLessonIDs retrieves the set of lesson ids the user has
// completed. The set is keyed by lesson id for O(1) membership checks.
func (r *completionRepository) GetCompletedLessonIDs(ctx context.Context, userID int) (map[int]struct{}, error) {
	query := `
		SELECT lesson_id
		FROM user_lessons
		WHERE user_id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query completions", zap.Error(err), zap.Int("userID", userID))
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	completed := make(map[int]struct{})
	for rows.Next() {
		var lessonID int
		if err := rows.Scan(&lessonID); err != nil {
			r.logger.Error("failed to scan completion", zap.Error(err))
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		completed[lessonID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return completed, nil
}
