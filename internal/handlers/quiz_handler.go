package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"github.com/farmlearn/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// QuizService is the interface that wraps methods for quiz business logic.
type QuizService interface {
	// Method GetQuiz retrieves a lesson's quiz questions localized to the
	// requested language. Correct options are never included.
	GetQuiz(ctx context.Context, lessonID int, langParam string) ([]models.QuizQuestion, error)
	// Method SubmitQuiz grades submitted answers against the lesson's
	// questions. Unanswered questions count as wrong.
	SubmitQuiz(ctx context.Context, lessonID int, answers []models.QuizAnswer) (*models.QuizResult, error)
}

// QuizHandler handles HTTP requests for lesson quizzes
type QuizHandler struct {
	BaseHandler
	service QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(svc QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all quiz handler routes
func (h *QuizHandler) RegisterRoutes(r chi.Router, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/quiz/{lessonID}", func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/", h.GetQuiz)
		r.Post("/submit", h.SubmitQuiz)
	})
}

// GetQuiz handles GET /api/v1/quiz/{lessonID}
// @Summary Get a lesson quiz
// @Description Get the quiz questions of a lesson localized to the requested language
// @Tags quiz
// @Accept json
// @Produce json
// @Param lessonID path int true "Lesson ID"
// @Param lang query string false "Language: en, hi, pa or ta, default: en"
// @Success 200 {array} models.QuizQuestion
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/quiz/{lessonID} [get]
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "lessonID"))
	if err != nil || lessonID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid lessonID parameter")
		return
	}
	langParam := r.URL.Query().Get("lang")

	questions, err := h.service.GetQuiz(r.Context(), lessonID, langParam)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "lesson not found")
			return
		}
		if errors.Is(err, services.ErrInvalidLanguage) {
			h.respondError(w, http.StatusBadRequest, "unsupported language")
			return
		}
		h.logger.Error("failed to get quiz", zap.Error(err), zap.Int("lessonID", lessonID))
		h.respondError(w, http.StatusInternalServerError, "failed to get quiz")
		return
	}

	h.respondJSON(w, http.StatusOK, questions)
}

// SubmitQuiz handles POST /api/v1/quiz/{lessonID}/submit
// @Summary Submit quiz answers
// @Description Grade submitted answers against the lesson's quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param lessonID path int true "Lesson ID"
// @Param submission body models.QuizSubmission true "Submitted answers"
// @Success 200 {object} models.QuizResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/quiz/{lessonID}/submit [post]
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "lessonID"))
	if err != nil || lessonID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid lessonID parameter")
		return
	}

	var submission models.QuizSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.SubmitQuiz(r.Context(), lessonID, submission.Answers)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "lesson not found")
			return
		}
		h.logger.Error("failed to submit quiz", zap.Error(err), zap.Int("lessonID", lessonID))
		h.respondError(w, http.StatusBadRequest, "failed to grade quiz")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
