package controllers

import (
	"log/slog"
	"net/http"

	"eventexplorer/internal/delivery/http/helpers"
	"eventexplorer/internal/delivery/http/middleware"
	"eventexplorer/internal/domain"
)

// MeController serves the authenticated user's own resources.
type MeController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewMeController(logger *slog.Logger, svc domain.CatalogService) *MeController {
	return &MeController{Logger: logger, Service: svc}
}

// SaveThemesRequest is the request body for POST /api/me/themes.
type SaveThemesRequest struct {
	Categories []string `json:"categories"`
}

// SaveThemesResponse is the response body for POST /api/me/themes.
type SaveThemesResponse struct {
	OK         bool              `json:"ok"`
	Categories []domain.Category `json:"categories"`
}

// SaveThemes godoc
// @Summary Save interest themes
// @Description Replaces the logged-in user's interest categories with the given slugs. Unknown slugs are ignored.
// @Tags me
// @Accept json
// @Produce json
// @Param body body SaveThemesRequest true "category slugs"
// @Success 200 {object} SaveThemesResponse
// @Failure 400 {object} helpers.ErrorResponse "error.code: bad_request"
// @Failure 401 {object} helpers.ErrorResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/me/themes [post]
func (c *MeController) SaveThemes(w http.ResponseWriter, r *http.Request) {
	var req SaveThemesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "authentication required")
		return
	}
	categories, err := c.Service.SaveUserThemes(r.Context(), userID, req.Categories)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to save themes")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, SaveThemesResponse{OK: true, Categories: categories})
}
