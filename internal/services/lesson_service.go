package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"go.uber.org/zap"
)

// ErrInvalidLanguage is returned when a request carries a language tag outside
// the supported whitelist. Handlers map it to a client error.
var ErrInvalidLanguage = errors.New("invalid language")

// Placeholders shown when a field has no value in the requested language nor
// in the default language. Clients render them verbatim.
const (
	placeholderTitle       = "Lesson Title Missing"
	placeholderDescription = "Lesson description missing."
	placeholderContent     = "No content available."
)

// LessonRepository is the interface that wraps methods for lessons table data access
type LessonRepository interface {
	// Method GetAll retrieves all lessons ordered by sequence, projecting the
	// localized columns of the given language alongside the default-language
	// columns.
	//
	// When the language's columns have not been rolled out to the schema yet,
	// the returned error satisfies errors.Is(err, repositories.ErrSchemaMismatch),
	// which callers use to retry with the default language.
	GetAll(ctx context.Context, lang models.Language) ([]models.LessonSource, error)
	// Method GetByID retrieves a single lesson with the localized columns of
	// the given language.
	//
	// Please reference GetAll for the schema-mismatch contract. A missing
	// lesson satisfies errors.Is(err, repositories.ErrNotFound).
	GetByID(ctx context.Context, id int, lang models.Language) (*models.LessonSource, error)
	// Method Exists reports whether a lesson exists, touching only columns
	// every schema version has.
	Exists(ctx context.Context, id int) (bool, error)
}

// CompletionRepository is the interface that wraps methods for user_lessons table data access
type CompletionRepository interface {
	// Method Create records a completion. Inserting an existing (user, lesson)
	// pair satisfies errors.Is(err, repositories.ErrDuplicate).
	Create(ctx context.Context, userID, lessonID int) error
	// Method Exists reports whether the user already completed the lesson.
	Exists(ctx context.Context, userID, lessonID int) (bool, error)
	// Method GetCompletedLessonIDs retrieves the set of completed lesson ids
	// for a user.
	GetCompletedLessonIDs(ctx context.Context, userID int) (map[int]struct{}, error)
}

type lessonService struct {
	lessons     LessonRepository
	completions CompletionRepository
	logger      *zap.Logger
}

// NewLessonService creates a new lesson service
func NewLessonService(lessons LessonRepository, completions CompletionRepository, logger *zap.Logger) *lessonService {
	return &lessonService{
		lessons:     lessons,
		completions: completions,
		logger:      logger,
	}
}

// parseLanguage validates a raw language parameter. An empty parameter means
// the default language.
func parseLanguage(langParam string) (models.Language, error) {
	if langParam == "" {
		return models.DefaultLanguage, nil
	}
	lang := models.Language(langParam)
	if !lang.Valid() {
		return "", fmt.Errorf("%w: %s", ErrInvalidLanguage, langParam)
	}
	return lang, nil
}

// resolveField picks the requested-language value, then the default-language
// value, then the placeholder. Empty strings count as missing.
func resolveField(local, fallback sql.NullString, placeholder string) string {
	if local.Valid && local.String != "" {
		return local.String
	}
	if fallback.Valid && fallback.String != "" {
		return fallback.String
	}
	return placeholder
}

// fetchLessons retrieves all lessons with the two-tier language fallback:
// when the requested language's columns are missing from the schema, the
// whole query is retried with the default language only.
func (s *lessonService) fetchLessons(ctx context.Context, lang models.Language) ([]models.LessonSource, error) {
	sources, err := s.lessons.GetAll(ctx, lang)
	if err == nil || lang == models.DefaultLanguage || !errors.Is(err, repositories.ErrSchemaMismatch) {
		return sources, err
	}
	s.logger.Warn("localized columns unavailable, falling back to default language", zap.String("lang", string(lang)))
	return s.lessons.GetAll(ctx, models.DefaultLanguage)
}

// fetchLesson retrieves one lesson with the same two-tier fallback as
// fetchLessons.
func (s *lessonService) fetchLesson(ctx context.Context, id int, lang models.Language) (*models.LessonSource, error) {
	source, err := s.lessons.GetByID(ctx, id, lang)
	if err == nil || lang == models.DefaultLanguage || !errors.Is(err, repositories.ErrSchemaMismatch) {
		return source, err
	}
	s.logger.Warn("localized columns unavailable, falling back to default language", zap.String("lang", string(lang)), zap.Int("id", id))
	return s.lessons.GetByID(ctx, id, models.DefaultLanguage)
}

// ListLessons retrieves the lesson board for a user: every lesson with its
// localized title and description, its derived progression status, plus the
// frontier sequence and the user's total score.
//
// For guests (userID == GuestUserID) no completion lookup happens and every
// lesson except the first is locked.
func (s *lessonService) ListLessons(ctx context.Context, userID int, langParam string) (*models.LessonBoard, error) {
	lang, err := parseLanguage(langParam)
	if err != nil {
		return nil, err
	}

	sources, err := s.fetchLessons(ctx, lang)
	if err != nil {
		s.logger.Error("failed to get lessons", zap.Error(err))
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	completed := map[int]struct{}{}
	if userID != GuestUserID {
		completed, err = s.completions.GetCompletedLessonIDs(ctx, userID)
		if err != nil {
			s.logger.Error("failed to get completions", zap.Error(err), zap.Int("userID", userID))
			return nil, fmt.Errorf("failed to get completions: %w", err)
		}
	}

	frontier := completionFrontier(sources, completed)
	board := &models.LessonBoard{
		Lessons:               make([]models.LessonListItem, 0, len(sources)),
		LastCompletedSequence: frontier,
	}
	for _, src := range sources {
		status := lessonStatus(src, completed, frontier)
		if status == models.LessonStatusCompleted {
			board.TotalScore += src.Points
		}
		board.Lessons = append(board.Lessons, models.LessonListItem{
			ID:          src.ID,
			Sequence:    src.Sequence,
			Points:      src.Points,
			Theme:       src.Theme.String,
			Title:       resolveField(src.LocalTitle, src.DefaultTitle, placeholderTitle),
			Description: resolveField(src.LocalDescription, src.DefaultDescription, placeholderDescription),
			Status:      status,
		})
	}

	return board, nil
}

// GetLesson retrieves one lesson with its localized title and content and
// whether the user has completed it.
func (s *lessonService) GetLesson(ctx context.Context, userID, id int, langParam string) (*models.LessonDetail, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid lesson id")
	}
	lang, err := parseLanguage(langParam)
	if err != nil {
		return nil, err
	}

	src, err := s.fetchLesson(ctx, id, lang)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error("failed to get lesson", zap.Error(err), zap.Int("id", id))
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	completed := false
	if userID != GuestUserID {
		completed, err = s.completions.Exists(ctx, userID, id)
		if err != nil {
			s.logger.Error("failed to check completion", zap.Error(err), zap.Int("userID", userID), zap.Int("id", id))
			return nil, fmt.Errorf("failed to check completion: %w", err)
		}
	}

	return &models.LessonDetail{
		ID:        src.ID,
		Sequence:  src.Sequence,
		Points:    src.Points,
		Theme:     src.Theme.String,
		Title:     resolveField(src.LocalTitle, src.DefaultTitle, placeholderTitle),
		Content:   resolveField(src.LocalContent, src.DefaultContent, placeholderContent),
		Completed: completed,
	}, nil
}
