package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	authmw "github.com/farmlearn/backend/internal/auth/middleware"
	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"github.com/farmlearn/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LessonService is the interface that wraps methods for lesson business logic.
type LessonService interface {
	// Method ListLessons retrieves the lesson board for a user: all lessons
	// localized to the requested language, each with a derived progression
	// status, plus the frontier sequence and the user's total score.
	//
	// Pass services.GuestUserID for unauthenticated callers. An unsupported
	// language satisfies errors.Is(err, services.ErrInvalidLanguage).
	ListLessons(ctx context.Context, userID int, langParam string) (*models.LessonBoard, error)
	// Method GetLesson retrieves a single localized lesson and whether the
	// user completed it.
	//
	// A missing lesson satisfies errors.Is(err, repositories.ErrNotFound).
	GetLesson(ctx context.Context, userID, id int, langParam string) (*models.LessonDetail, error)
}

// CompletionService is the interface that wraps methods for completion business logic.
type CompletionService interface {
	// Method Complete reconciles a lesson completion: guests are accepted
	// without persistence, repeats are accepted without a second award, and
	// first completions award the lesson's points to the user's profile.
	Complete(ctx context.Context, userID, lessonID int) (*models.CompletionResult, error)
}

// LessonsHandler handles HTTP requests for lessons
type LessonsHandler struct {
	BaseHandler
	lessons     LessonService
	completions CompletionService
}

// NewLessonsHandler creates a new lessons handler
func NewLessonsHandler(lessons LessonService, completions CompletionService, logger *zap.Logger) *LessonsHandler {
	return &LessonsHandler{
		lessons:     lessons,
		completions: completions,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes. The optionalAuth
// middleware lets unauthenticated requests through as guests.
func (h *LessonsHandler) RegisterRoutes(r chi.Router, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/api/v1/lessons", func(r chi.Router) {
		r.Use(optionalAuth)
		r.Get("/", h.List)
		r.Get("/{id}", h.GetByID)
		r.Post("/{id}/complete", h.Complete)
	})
}

// lessonID parses the {id} path parameter.
func (h *LessonsHandler) lessonID(r *http.Request) (int, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idParam)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List handles GET /api/v1/lessons
// @Summary Get the lesson board
// @Description Get all lessons localized to the requested language with per-user progression statuses
// @Tags lessons
// @Accept json
// @Produce json
// @Param lang query string false "Language: en, hi, pa or ta, default: en"
// @Success 200 {object} models.LessonBoard
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/lessons [get]
func (h *LessonsHandler) List(w http.ResponseWriter, r *http.Request) {
	langParam := r.URL.Query().Get("lang")
	userID, _ := authmw.GetUserID(r.Context())

	board, err := h.lessons.ListLessons(r.Context(), userID, langParam)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLanguage) {
			h.respondError(w, http.StatusBadRequest, "unsupported language")
			return
		}
		h.logger.Error("failed to list lessons", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to get lessons")
		return
	}

	h.respondJSON(w, http.StatusOK, board)
}

// GetByID handles GET /api/v1/lessons/{id}
// @Summary Get a lesson
// @Description Get a single lesson localized to the requested language
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param lang query string false "Language: en, hi, pa or ta, default: en"
// @Success 200 {object} models.LessonDetail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/lessons/{id} [get]
func (h *LessonsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lessonID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}
	langParam := r.URL.Query().Get("lang")
	userID, _ := authmw.GetUserID(r.Context())

	lesson, err := h.lessons.GetLesson(r.Context(), userID, id, langParam)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "lesson not found")
			return
		}
		if errors.Is(err, services.ErrInvalidLanguage) {
			h.respondError(w, http.StatusBadRequest, "unsupported language")
			return
		}
		h.logger.Error("failed to get lesson", zap.Error(err), zap.Int("id", id))
		h.respondError(w, http.StatusInternalServerError, "failed to get lesson")
		return
	}

	h.respondJSON(w, http.StatusOK, lesson)
}

// Complete handles POST /api/v1/lessons/{id}/complete
// @Summary Complete a lesson
// @Description Record a lesson completion and award its points once; repeat calls are accepted without a second award
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.CompletionResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/lessons/{id}/complete [post]
func (h *LessonsHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lessonID(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "invalid id parameter")
		return
	}
	userID, _ := authmw.GetUserID(r.Context())

	result, err := h.completions.Complete(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "lesson not found")
			return
		}
		h.logger.Error("failed to complete lesson", zap.Error(err), zap.Int("id", id))
		h.respondError(w, http.StatusInternalServerError, "failed to complete lesson")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
