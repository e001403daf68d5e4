package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventexplorer/internal/delivery/http/helpers"
	"eventexplorer/internal/domain"
)

// EventController serves the public catalog API.
type EventController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewEventController(logger *slog.Logger, svc domain.CatalogService) *EventController {
	return &EventController{Logger: logger, Service: svc}
}

// CategoriesResponse is the response body for GET /api/categories.
type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// EventListResponse is the response body for GET /api/events.
type EventListResponse struct {
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Total   int               `json:"total"`
	Pages   int               `json:"pages"`
	Events  []domain.EventDTO `json:"events"`
}

// EventDetailResponse is the response body for GET /api/events/{id}.
type EventDetailResponse struct {
	Event domain.EventDTO `json:"event"`
}

// Categories godoc
// @Summary List categories
// @Description All filterable categories, sorted by name.
// @Tags catalog
// @Produce json
// @Success 200 {object} CategoriesResponse
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/categories [get]
func (c *EventController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.ListCategories(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	helpers.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

// ListEvents godoc
// @Summary List events
// @Description Filter the catalog by category slugs (repeatable), type (all|free|paid), a date preset (all|today|week|next30|next3m|next6m) or explicit start/end bounds, and free-text q. Paginated.
// @Tags catalog
// @Produce json
// @Param category query []string false "category slugs (repeatable, union semantics)"
// @Param type query string false "all, free, or paid" default(all)
// @Param date query string false "date preset" default(all)
// @Param start query string false "explicit window start (YYYY-MM-DD or ISO-8601); overrides date preset"
// @Param end query string false "explicit window end, exclusive"
// @Param q query string false "search in title, description, location"
// @Param page query int false "page (1-based)" default(1)
// @Param per_page query int false "items per page (1..48)" default(12)
// @Success 200 {object} EventListResponse
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pagination := helpers.ParsePagination(r)

	page, params, err := c.Service.ListEvents(r.Context(), domain.EventQuery{
		CategorySlugs: query["category"],
		Type:          query.Get("type"),
		DatePreset:    query.Get("date"),
		Start:         query.Get("start"),
		End:           query.Get("end"),
		Query:         query.Get("q"),
		Page:          pagination.Page,
		PerPage:       pagination.PerPage,
	})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to list events")
		return
	}

	events := make([]domain.EventDTO, len(page.Events))
	for i, e := range page.Events {
		events[i] = e.ToDTO()
	}
	helpers.WriteJSON(w, http.StatusOK, EventListResponse{
		Page:    params.Page,
		PerPage: params.PerPage,
		Total:   page.Total,
		Pages:   params.Pages(page.Total),
		Events:  events,
	})
}

// GetEvent godoc
// @Summary Get one event
// @Tags catalog
// @Produce json
// @Param id path int true "event id"
// @Success 200 {object} EventDetailResponse
// @Failure 404 {object} helpers.ErrorResponse "error.code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "error.code: internal_error"
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		// A non-numeric id can never exist, same outcome as an unknown one.
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to load event")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, EventDetailResponse{Event: event.ToDTO()})
}
