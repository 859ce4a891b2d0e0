package handlers

import (
	"context"
	"net/http"

	authmw "github.com/farmlearn/backend/internal/auth/middleware"
	"github.com/farmlearn/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for profile business logic.
type ProfileService interface {
	// Method Get retrieves the user's reward counters, creating an empty
	// profile on first read.
	Get(ctx context.Context, userID int) (*models.Profile, error)
}

// ProfileHandler handles HTTP requests for user profiles
type ProfileHandler struct {
	BaseHandler
	service ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(svc ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all profile handler routes. The auth middleware is
// required: guests have no profile.
func (h *ProfileHandler) RegisterRoutes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Route("/api/v1/profile", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", h.Get)
	})
}

// Get handles GET /api/v1/profile
// @Summary Get the user profile
// @Description Get the authenticated user's coin and XP counters
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.Profile
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/profile [get]
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmw.GetUserID(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.service.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to get profile", zap.Error(err), zap.Int("userID", userID))
		h.respondError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	h.respondJSON(w, http.StatusOK, profile)
}
