package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"go.uber.org/zap"
)

const placeholderQuestion = "No question available."

// quizOptions are the accepted answer option keys.
var quizOptions = []string{"a", "b", "c", "d"}

// QuizRepository is the interface that wraps methods for quiz_questions table data access
type QuizRepository interface {
	// Method GetByLessonID retrieves the quiz questions of a lesson ordered by
	// position, projecting the localized question text of the given language.
	//
	// When the language's column has not been rolled out to the schema yet,
	// the returned error satisfies errors.Is(err, repositories.ErrSchemaMismatch).
	GetByLessonID(ctx context.Context, lessonID int, lang models.Language) ([]models.QuizQuestionSource, error)
}

type quizService struct {
	quizzes QuizRepository
	lessons LessonRepository
	logger  *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(quizzes QuizRepository, lessons LessonRepository, logger *zap.Logger) *quizService {
	return &quizService{
		quizzes: quizzes,
		lessons: lessons,
		logger:  logger,
	}
}

// fetchQuestions retrieves the questions of a lesson with the two-tier
// language fallback used for lessons.
func (s *quizService) fetchQuestions(ctx context.Context, lessonID int, lang models.Language) ([]models.QuizQuestionSource, error) {
	questions, err := s.quizzes.GetByLessonID(ctx, lessonID, lang)
	if err == nil || lang == models.DefaultLanguage || !errors.Is(err, repositories.ErrSchemaMismatch) {
		return questions, err
	}
	s.logger.Warn("localized quiz column unavailable, falling back to default language", zap.String("lang", string(lang)), zap.Int("lessonID", lessonID))
	return s.quizzes.GetByLessonID(ctx, lessonID, models.DefaultLanguage)
}

// GetQuiz retrieves the quiz of a lesson with localized question text. The
// correct options are never exposed. Requesting the quiz of a lesson that
// does not exist returns an error satisfying errors.Is(err, repositories.ErrNotFound).
func (s *quizService) GetQuiz(ctx context.Context, lessonID int, langParam string) ([]models.QuizQuestion, error) {
	if lessonID <= 0 {
		return nil, fmt.Errorf("invalid lesson id")
	}
	lang, err := parseLanguage(langParam)
	if err != nil {
		return nil, err
	}

	sources, err := s.fetchQuestions(ctx, lessonID, lang)
	if err != nil {
		s.logger.Error("failed to get quiz", zap.Error(err), zap.Int("lessonID", lessonID))
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if len(sources) == 0 {
		exists, err := s.lessons.Exists(ctx, lessonID)
		if err != nil {
			return nil, fmt.Errorf("failed to check lesson existence: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("lesson %d: %w", lessonID, repositories.ErrNotFound)
		}
	}

	questions := make([]models.QuizQuestion, 0, len(sources))
	for _, src := range sources {
		questions = append(questions, models.QuizQuestion{
			ID:       src.ID,
			Position: src.Position,
			Question: resolveField(src.LocalQuestion, src.DefaultQuestion, placeholderQuestion),
			Options:  []string{src.OptionA, src.OptionB, src.OptionC, src.OptionD},
		})
	}

	return questions, nil
}

// SubmitQuiz grades a set of answers against the lesson's questions. Every
// question counts toward the total; unanswered questions count as wrong.
// The quiz is passed only when all answers are correct.
func (s *quizService) SubmitQuiz(ctx context.Context, lessonID int, answers []models.QuizAnswer) (*models.QuizResult, error) {
	if lessonID <= 0 {
		return nil, fmt.Errorf("invalid lesson id")
	}

	sources, err := s.quizzes.GetByLessonID(ctx, lessonID, models.DefaultLanguage)
	if err != nil {
		s.logger.Error("failed to get quiz for grading", zap.Error(err), zap.Int("lessonID", lessonID))
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if len(sources) == 0 {
		exists, err := s.lessons.Exists(ctx, lessonID)
		if err != nil {
			return nil, fmt.Errorf("failed to check lesson existence: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("lesson %d: %w", lessonID, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("lesson %d has no quiz", lessonID)
	}

	answered := make(map[int]string, len(answers))
	for _, answer := range answers {
		option := strings.ToLower(answer.Option)
		if !validOption(option) {
			return nil, fmt.Errorf("invalid option %q for question %d", answer.Option, answer.QuestionID)
		}
		answered[answer.QuestionID] = option
	}

	result := &models.QuizResult{
		Total:   len(sources),
		Results: make([]models.QuizResultItem, 0, len(sources)),
	}
	for _, src := range sources {
		correct := answered[src.ID] == strings.ToLower(src.CorrectOption)
		if correct {
			result.Score++
		}
		result.Results = append(result.Results, models.QuizResultItem{
			QuestionID: src.ID,
			Correct:    correct,
		})
	}
	result.Passed = result.Score == result.Total

	return result, nil
}

// validOption reports whether the option key is one of "a" through "d".
func validOption(option string) bool {
	for _, o := range quizOptions {
		if option == o {
			return true
		}
	}
	return false
}
