package helpers

import (
	"net/http"
	"strconv"

	"eventexplorer/internal/domain"
)

// Pagination query parameter defaults and limits for the event listing.
const (
	DefaultPage    = 1
	DefaultPerPage = 12
	MaxPerPage     = 48
)

// ParsePagination reads page and per_page from the request query string,
// clamps them to valid ranges, and returns domain.PaginationParams.
// Invalid or missing values fall back to defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	perPage := DefaultPerPage
	if s := r.URL.Query().Get("per_page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			perPage = v
			if perPage > MaxPerPage {
				perPage = MaxPerPage
			}
		}
	}
	return domain.PaginationParams{Page: page, PerPage: perPage}
}
