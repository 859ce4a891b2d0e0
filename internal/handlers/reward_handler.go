package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmlearn/backend/internal/models"
	"github.com/farmlearn/backend/internal/repositories"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RewardService is the interface that wraps methods for reward business logic.
type RewardService interface {
	// Method GetByLessonID retrieves the voucher granted for completing a
	// lesson. A lesson without a voucher satisfies errors.Is(err, repositories.ErrNotFound).
	GetByLessonID(ctx context.Context, lessonID int) (*models.Reward, error)
}

// RewardHandler handles HTTP requests for completion rewards
type RewardHandler struct {
	BaseHandler
	service RewardService
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(svc RewardService, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all reward handler routes
func (h *RewardHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/rewards", func(r chi.Router) {
		r.Get("/{lessonID}", h.GetByLessonID)
	})
}

// GetByLessonID handles GET /api/v1/rewards/{lessonID}
// @Summary Get a lesson reward
// @Description Get the discount voucher granted for completing a lesson
// @Tags rewards
// @Accept json
// @Produce json
// @Param lessonID path int true "Lesson ID"
// @Success 200 {object} models.Reward
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/rewards/{lessonID} [get]
func (h *RewardHandler) GetByLessonID(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "lessonID"))
	if err != nil || lessonID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid lessonID parameter")
		return
	}

	reward, err := h.service.GetByLessonID(r.Context(), lessonID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "reward not found")
			return
		}
		h.logger.Error("failed to get reward", zap.Error(err), zap.Int("lessonID", lessonID))
		h.respondError(w, http.StatusInternalServerError, "failed to get reward")
		return
	}

	h.respondJSON(w, http.StatusOK, reward)
}
