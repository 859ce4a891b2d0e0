package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockLessonRepository is a mock implementation of LessonRepository
type mockLessonRepository struct {
	lessons      []models.LessonSource
	lesson       *models.LessonSource
	existsResult bool
	existsErr    error
	err          error // returned for non-default language calls
	defaultErr   error // returned for default language calls
	langCalls    []models.Language
}

func (m *mockLessonRepository) langErr(lang models.Language) error {
	if lang == models.DefaultLanguage {
		return m.defaultErr
	}
	if m.err != nil {
		return m.err
	}
	return m.defaultErr
}

func (m *mockLessonRepository) GetAll(ctx context.Context, lang models.Language) ([]models.LessonSource, error) {
	m.langCalls = append(m.langCalls, lang)
	if err := m.langErr(lang); err != nil {
		return nil, err
	}
	return m.lessons, nil
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int, lang models.Language) (*models.LessonSource, error) {
	m.langCalls = append(m.langCalls, lang)
	if err := m.langErr(lang); err != nil {
		return nil, err
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) Exists(ctx context.Context, id int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.existsResult, nil
}

// mockCompletionRepository is a mock implementation of CompletionRepository
type mockCompletionRepository struct {
	completed    map[int]struct{}
	exists       bool
	createErr    error
	err          error
	createCalls  int
	lookupCalls  int
	lastUserID   int
	lastLessonID int
}

func (m *mockCompletionRepository) Create(ctx context.Context, userID, lessonID int) error {
	m.createCalls++
	m.lastUserID = userID
	m.lastLessonID = lessonID
	return m.createErr
}

func (m *mockCompletionRepository) Exists(ctx context.Context, userID, lessonID int) (bool, error) {
	m.lookupCalls++
	if m.err != nil {
		return false, m.err
	}
	return m.exists, nil
}

func (m *mockCompletionRepository) GetCompletedLessonIDs(ctx context.Context, userID int) (map[int]struct{}, error) {
	m.lookupCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.completed == nil {
		return map[int]struct{}{}, nil
	}
	return m.completed, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func testLessonSources() []models.LessonSource {
	return []models.LessonSource{
		{
			ID: 1, Sequence: 1, Points: 10, Theme: nullString("soil"),
			DefaultTitle:       nullString("Soil Basics"),
			DefaultDescription: nullString("Know your soil"),
			LocalTitle:         nullString("मिट्टी की मूल बातें"),
		},
		{
			ID: 2, Sequence: 2, Points: 15, Theme: nullString("water"),
			DefaultTitle:       nullString("Irrigation"),
			DefaultDescription: nullString("Water wisely"),
		},
		{
			ID: 3, Sequence: 3, Points: 20, Theme: nullString("pests"),
			DefaultTitle: nullString("Pest Control"),
		},
	}
}

func TestNewLessonService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	lessons := &mockLessonRepository{}
	completions := &mockCompletionRepository{}

	svc := NewLessonService(lessons, completions, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, lessons, svc.lessons)
	assert.Equal(t, completions, svc.completions)
	assert.Equal(t, logger, svc.logger)
}

func TestLessonService_ListLessons(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		lang          string
		lessons       *mockLessonRepository
		completions   *mockCompletionRepository
		expectedError bool
		expectedIs    error
		check         func(*testing.T, *models.LessonBoard, *mockLessonRepository, *mockCompletionRepository)
	}{
		{
			name:        "guest sees first lesson current and rest locked",
			userID:      GuestUserID,
			lang:        "en",
			lessons:     &mockLessonRepository{lessons: testLessonSources()},
			completions: &mockCompletionRepository{},
			check: func(t *testing.T, board *models.LessonBoard, _ *mockLessonRepository, completions *mockCompletionRepository) {
				require.Len(t, board.Lessons, 3)
				assert.Equal(t, models.LessonStatusCurrent, board.Lessons[0].Status)
				assert.Equal(t, models.LessonStatusLocked, board.Lessons[1].Status)
				assert.Equal(t, models.LessonStatusLocked, board.Lessons[2].Status)
				assert.Equal(t, 0, board.LastCompletedSequence)
				assert.Equal(t, 0, board.TotalScore)
				assert.Equal(t, 0, completions.lookupCalls)
			},
		},
		{
			name:        "authenticated user gets derived statuses and totals",
			userID:      7,
			lang:        "en",
			lessons:     &mockLessonRepository{lessons: testLessonSources()},
			completions: &mockCompletionRepository{completed: map[int]struct{}{1: {}}},
			check: func(t *testing.T, board *models.LessonBoard, _ *mockLessonRepository, _ *mockCompletionRepository) {
				require.Len(t, board.Lessons, 3)
				assert.Equal(t, models.LessonStatusCompleted, board.Lessons[0].Status)
				assert.Equal(t, models.LessonStatusCurrent, board.Lessons[1].Status)
				assert.Equal(t, models.LessonStatusLocked, board.Lessons[2].Status)
				assert.Equal(t, 1, board.LastCompletedSequence)
				assert.Equal(t, 10, board.TotalScore)
			},
		},
		{
			name:        "localized fields resolve local then default then placeholder",
			userID:      GuestUserID,
			lang:        "hi",
			lessons:     &mockLessonRepository{lessons: testLessonSources()},
			completions: &mockCompletionRepository{},
			check: func(t *testing.T, board *models.LessonBoard, _ *mockLessonRepository, _ *mockCompletionRepository) {
				require.Len(t, board.Lessons, 3)
				assert.Equal(t, "मिट्टी की मूल बातें", board.Lessons[0].Title)
				assert.Equal(t, "Irrigation", board.Lessons[1].Title)
				assert.Equal(t, "Lesson description missing.", board.Lessons[2].Description)
			},
		},
		{
			name:   "falls back to default language on schema mismatch",
			userID: GuestUserID,
			lang:   "ta",
			lessons: &mockLessonRepository{
				lessons: testLessonSources(),
				err:     repositories.ErrSchemaMismatch,
			},
			completions: &mockCompletionRepository{},
			check: func(t *testing.T, board *models.LessonBoard, lessons *mockLessonRepository, _ *mockCompletionRepository) {
				require.Len(t, board.Lessons, 3)
				assert.Equal(t, []models.Language{models.LanguageTamil, models.DefaultLanguage}, lessons.langCalls)
				assert.Equal(t, "Soil Basics", board.Lessons[0].Title)
			},
		},
		{
			name:          "invalid language",
			userID:        GuestUserID,
			lang:          "xx",
			lessons:       &mockLessonRepository{},
			completions:   &mockCompletionRepository{},
			expectedError: true,
			expectedIs:    ErrInvalidLanguage,
		},
		{
			name:          "lesson query error",
			userID:        GuestUserID,
			lang:          "en",
			lessons:       &mockLessonRepository{defaultErr: assert.AnError},
			completions:   &mockCompletionRepository{},
			expectedError: true,
		},
		{
			name:          "completion query error",
			userID:        7,
			lang:          "en",
			lessons:       &mockLessonRepository{lessons: testLessonSources()},
			completions:   &mockCompletionRepository{err: assert.AnError},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			svc := NewLessonService(tt.lessons, tt.completions, logger)

			board, err := svc.ListLessons(context.Background(), tt.userID, tt.lang)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, board)
				if tt.expectedIs != nil {
					assert.ErrorIs(t, err, tt.expectedIs)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, board)
				tt.check(t, board, tt.lessons, tt.completions)
			}
		})
	}
}

func TestLessonService_GetLesson(t *testing.T) {
	source := &models.LessonSource{
		ID: 2, Sequence: 2, Points: 15, Theme: nullString("water"),
		DefaultTitle:   nullString("Irrigation"),
		DefaultContent: nullString("Drip irrigation saves water"),
		LocalTitle:     nullString("सिंचाई"),
	}

	tests := []struct {
		name          string
		userID        int
		id            int
		lang          string
		lessons       *mockLessonRepository
		completions   *mockCompletionRepository
		expectedError bool
		expectedIs    error
		check         func(*testing.T, *models.LessonDetail, *mockLessonRepository, *mockCompletionRepository)
	}{
		{
			name:        "success with completion flag",
			userID:      7,
			id:          2,
			lang:        "hi",
			lessons:     &mockLessonRepository{lesson: source},
			completions: &mockCompletionRepository{exists: true},
			check: func(t *testing.T, detail *models.LessonDetail, _ *mockLessonRepository, _ *mockCompletionRepository) {
				assert.Equal(t, "सिंचाई", detail.Title)
				assert.Equal(t, "Drip irrigation saves water", detail.Content)
				assert.True(t, detail.Completed)
			},
		},
		{
			name:        "guest never checks completion",
			userID:      GuestUserID,
			id:          2,
			lang:        "en",
			lessons:     &mockLessonRepository{lesson: source},
			completions: &mockCompletionRepository{exists: true},
			check: func(t *testing.T, detail *models.LessonDetail, _ *mockLessonRepository, completions *mockCompletionRepository) {
				assert.False(t, detail.Completed)
				assert.Equal(t, 0, completions.lookupCalls)
			},
		},
		{
			name:   "falls back to default language on schema mismatch",
			userID: GuestUserID,
			id:     2,
			lang:   "ta",
			lessons: &mockLessonRepository{
				lesson: source,
				err:    repositories.ErrSchemaMismatch,
			},
			completions: &mockCompletionRepository{},
			check: func(t *testing.T, detail *models.LessonDetail, lessons *mockLessonRepository, _ *mockCompletionRepository) {
				assert.Equal(t, []models.Language{models.LanguageTamil, models.DefaultLanguage}, lessons.langCalls)
				assert.Equal(t, "सिंचाई", detail.Title)
			},
		},
		{
			name:   "missing content resolves to placeholder",
			userID: GuestUserID,
			id:     3,
			lang:   "en",
			lessons: &mockLessonRepository{
				lesson: &models.LessonSource{ID: 3, Sequence: 3, Points: 20, DefaultTitle: nullString("Pest Control")},
			},
			completions: &mockCompletionRepository{},
			check: func(t *testing.T, detail *models.LessonDetail, _ *mockLessonRepository, _ *mockCompletionRepository) {
				assert.Equal(t, "No content available.", detail.Content)
			},
		},
		{
			name:          "not found",
			userID:        GuestUserID,
			id:            999,
			lang:          "en",
			lessons:       &mockLessonRepository{defaultErr: repositories.ErrNotFound},
			completions:   &mockCompletionRepository{},
			expectedError: true,
			expectedIs:    repositories.ErrNotFound,
		},
		{
			name:          "invalid lesson id",
			userID:        GuestUserID,
			id:            0,
			lang:          "en",
			lessons:       &mockLessonRepository{},
			completions:   &mockCompletionRepository{},
			expectedError: true,
		},
		{
			name:          "invalid language",
			userID:        GuestUserID,
			id:            2,
			lang:          "xx",
			lessons:       &mockLessonRepository{},
			completions:   &mockCompletionRepository{},
			expectedError: true,
			expectedIs:    ErrInvalidLanguage,
		},
		{
			name:          "completion check error",
			userID:        7,
			id:            2,
			lang:          "en",
			lessons:       &mockLessonRepository{lesson: source},
			completions:   &mockCompletionRepository{err: assert.AnError},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			svc := NewLessonService(tt.lessons, tt.completions, logger)

			detail, err := svc.GetLesson(context.Background(), tt.userID, tt.id, tt.lang)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, detail)
				if tt.expectedIs != nil {
					assert.ErrorIs(t, err, tt.expectedIs)
				}
			} else {
				assert.NoError(t, err)
				require.NotNil(t, detail)
				tt.check(t, detail, tt.lessons, tt.completions)
			}
		})
	}
}
