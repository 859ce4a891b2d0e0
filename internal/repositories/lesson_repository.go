package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/farmlearn/backend/internal/models"
	"go.uber.org/zap"
)

type lessonRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLessonRepository creates a new instance of the LessonRepository interface
func NewLessonRepository(db *sql.DB, logger *zap.Logger) *lessonRepository {
	return &lessonRepository{
		db:     db,
		logger: logger,
	}
}

// lessonColumns builds the projection for a lessons query. Default-language
// columns are always selected; when a non-default language is requested its
// columns are appended after them. Column names come from the language
// whitelist, never from raw request input.
func lessonColumns(lang models.Language) string {
	cols := []string{
		"id", "sequence", "points", "theme",
		models.DefaultLanguage.Column("title"),
		models.DefaultLanguage.Column("description"),
		models.DefaultLanguage.Column("content"),
	}
	if lang != models.DefaultLanguage {
		cols = append(cols,
			lang.Column("title"),
			lang.Column("description"),
			lang.Column("content"),
		)
	}
	return strings.Join(cols, ", ")
}

// scanLesson scans one lessons row. The destination order must mirror
// lessonColumns for the same language.
func scanLesson(scanner interface{ Scan(dest ...any) error }, lang models.Language) (models.LessonSource, error) {
	var src models.LessonSource
	dest := []any{
		&src.ID, &src.Sequence, &src.Points, &src.Theme,
		&src.DefaultTitle, &src.DefaultDescription, &src.DefaultContent,
	}
	if lang != models.DefaultLanguage {
		dest = append(dest, &src.LocalTitle, &src.LocalDescription, &src.LocalContent)
	}
	err := scanner.Scan(dest...)
	return src, err
}

// Method GetAll is a LessonRepository implementation for retrieving all lessons
// with the localized columns of the given language, ordered by sequence.
// When the language's columns are missing from the schema the error satisfies
// errors.Is(err, ErrSchemaMismatch).
func (r *lessonRepository) GetAll(ctx context.Context, lang models.Language) ([]models.LessonSource, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("invalid language: %s", lang)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM lessons
		ORDER BY sequence
	`, lessonColumns(lang))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query lessons", zap.Error(err), zap.String("lang", string(lang)))
		return nil, fmt.Errorf("failed to query lessons: %w", translateError(err))
	}
	defer rows.Close()

	var lessons []models.LessonSource
	for rows.Next() {
		src, err := scanLesson(rows, lang)
		if err != nil {
			r.logger.Error("failed to scan lesson", zap.Error(err))
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, src)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// GetByID retrieves a single lesson with the localized columns of the given
// language.
func (r *lessonRepository) GetByID(ctx context.Context, id int, lang models.Language) (*models.LessonSource, error) {
	if !lang.Valid() {
		return nil, fmt.Errorf("invalid language: %s", lang)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM lessons
		WHERE id = ?
	`, lessonColumns(lang))

	src, err := scanLesson(r.db.QueryRowContext(ctx, query, id), lang)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("lesson %d: %w", id, ErrNotFound)
		}
		r.logger.Error("failed to query lesson by id", zap.Error(err), zap.Int("id", id), zap.String("lang", string(lang)))
		return nil, fmt.Errorf("failed to query lesson: %w", translateError(err))
	}

	return &src, nil
}

// Exists reports whether a lesson with the given id exists. It touches only
// the id column, so it works regardless of which localized columns are rolled
// out.
func (r *lessonRepository) Exists(ctx context.Context, id int) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM lessons WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		r.logger.Error("failed to check lesson existence", zap.Error(err), zap.Int("id", id))
		return false, fmt.Errorf("failed to check lesson existence: %w", err)
	}
	return true, nil
}
