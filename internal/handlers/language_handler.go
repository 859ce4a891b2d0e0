package handlers

import (
	"net/http"

	"github.com/farmlearn/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LanguageHandler handles HTTP requests for the language picker
type LanguageHandler struct {
	BaseHandler
}

// NewLanguageHandler creates a new language handler
func NewLanguageHandler(logger *zap.Logger) *LanguageHandler {
	return &LanguageHandler{
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all language handler routes
func (h *LanguageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/languages", h.List)
}

// List handles GET /api/v1/languages
// @Summary List supported languages
// @Description List the languages clients may request lessons in
// @Tags languages
// @Accept json
// @Produce json
// @Success 200 {array} models.LanguageInfo
// @Router /api/v1/languages [get]
func (h *LanguageHandler) List(w http.ResponseWriter, r *http.Request) {
	languages := make([]models.LanguageInfo, 0, len(models.SupportedLanguages))
	for _, lang := range models.SupportedLanguages {
		languages = append(languages, models.LanguageInfo{
			Code:      lang,
			Name:      lang.DisplayName(),
			IsDefault: lang == models.DefaultLanguage,
		})
	}

	h.respondJSON(w, http.StatusOK, languages)
}
