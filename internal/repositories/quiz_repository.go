package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/farmlearn/backend/internal/models"
	"go.uber.org/zap"
)

type quizRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewQuizRepository creates a new instance of the QuizRepository interface
func NewQuizRepository(db *sql.DB, logger *zap.Logger) *quizRepository {
	return &quizRepository{
		db:     db,
		logger: logger,
	}
}

// quizColumns builds the projection for a quiz_questions query, following the
// same default-first convention as the lessons projection.
func quizColumns(lang models.Language) string {
	cols := []string{
		"id", "lesson_id", "position",
		models.DefaultLanguage.Column("question"),
	}
	if lang != models.DefaultLanguage {
		cols = append(cols, lang.Column("question"))
	}
	cols = append(cols, "option_a", "option_b", "option_c", "option_d", "correct_option")
	return strings.Join(cols, ", ")
}

// GetByLessonID retrieves the quiz questions of a lesson with the localized
// question text of the given language, ordered by position. When the
// language's column is missing from the schema the error satisfies
// errors.Is(err, ErrSchemaMismatch).
func (r *quizRepository) GetByLessonID(ctx context.Context, lessonID int, lang models.Language) ([]models.QuizQuestionSource, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("invalid language: %s", lang)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM quiz_questions
		WHERE lesson_id = ?
		ORDER BY position
	`, quizColumns(lang))

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		r.logger.Error("failed to query quiz questions", zap.Error(err), zap.Int("lessonID", lessonID), zap.String("lang", string(lang)))
		return nil, fmt.Errorf("failed to query quiz questions: %w", translateError(err))
	}
	defer rows.Close()

	var questions []models.QuizQuestionSource
	for rows.Next() {
		var q models.QuizQuestionSource
		dest := []any{&q.ID, &q.LessonID, &q.Position, &q.DefaultQuestion}
		if lang != models.DefaultLanguage {
			dest = append(dest, &q.LocalQuestion)
		}
		dest = append(dest, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption)
		if err := rows.Scan(dest...); err != nil {
			r.logger.Error("failed to scan quiz question", zap.Error(err))
			return nil, fmt.Errorf("failed to scan quiz question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return questions, nil
}
