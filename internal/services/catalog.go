package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventexplorer/internal/domain"
)

// Pagination bounds for the event listing.
const (
	DefaultPerPage = 12
	MaxPerPage     = 48
)

type catalogService struct {
	events     domain.EventRepository
	categories domain.CategoryRepository
	users      domain.UserRepository
	now        func() time.Time
}

// NewCatalogService creates a CatalogService over the given repositories.
func NewCatalogService(
	events domain.EventRepository,
	categories domain.CategoryRepository,
	users domain.UserRepository,
) domain.CatalogService {
	return &catalogService{
		events:     events,
		categories: categories,
		users:      users,
		now:        time.Now,
	}
}

func (s *catalogService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return s.events.GetByID(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListAll(ctx)
}

// ListEvents resolves the raw query into an EventFilter and runs it. Explicit
// start/end bounds override the date preset entirely; malformed bounds degrade
// to absent rather than erroring.
func (s *catalogService) ListEvents(ctx context.Context, q domain.EventQuery) (*domain.EventPage, domain.PaginationParams, error) {
	params := domain.PaginationParams{Page: q.Page, PerPage: q.PerPage}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage == 0 {
		params.PerPage = DefaultPerPage
	} else if params.PerPage < 1 {
		params.PerPage = 1
	} else if params.PerPage > MaxPerPage {
		params.PerPage = MaxPerPage
	}

	priceType := strings.ToLower(strings.TrimSpace(q.Type))
	if priceType != domain.PriceTypeFree && priceType != domain.PriceTypePaid {
		priceType = domain.PriceTypeAll
	}

	var start, end *time.Time
	if q.Start != "" || q.End != "" {
		start = parseISODate(q.Start)
		end = parseISODate(q.End)
	} else {
		start, end = windowFromPreset(s.now().UTC(), strings.ToLower(strings.TrimSpace(q.DatePreset)))
	}

	filter := domain.EventFilter{
		CategorySlugs: q.CategorySlugs,
		Type:          priceType,
		Start:         start,
		End:           end,
		Query:         strings.TrimSpace(q.Query),
		Pagination:    params,
	}
	page, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, params, fmt.Errorf("failed to list events: %w", err)
	}
	return page, params, nil
}

func (s *catalogService) SaveUserThemes(ctx context.Context, userID int64, slugs []string) ([]domain.Category, error) {
	// Unknown slugs are dropped silently; only resolvable categories are linked.
	categories, err := s.categories.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category slugs: %w", err)
	}
	ids := make([]int64, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	if err := s.users.ReplaceThemeCategories(ctx, userID, ids); err != nil {
		return nil, fmt.Errorf("failed to save theme categories: %w", err)
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// parseISODate accepts "YYYY-MM-DD" (expanded to midnight) or a full ISO-8601
// timestamp. Anything unparseable returns nil.
func parseISODate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	layouts := []string{"2006-01-02T15:04:05", time.RFC3339}
	if len(s) == 10 {
		layouts = []string{"2006-01-02"}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// windowFromPreset resolves a date preset against now. Unknown presets (and
// "all") apply no window.
func windowFromPreset(now time.Time, preset string) (*time.Time, *time.Time) {
	window := func(start, end time.Time) (*time.Time, *time.Time) {
		return &start, &end
	}
	switch preset {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return window(start, start.AddDate(0, 0, 1))
	case "week":
		return window(now, now.AddDate(0, 0, 7))
	case "next30":
		return window(now, now.AddDate(0, 0, 30))
	case "next3m":
		return window(now, now.AddDate(0, 0, 90))
	case "next6m":
		return window(now, now.AddDate(0, 0, 180))
	}
	return nil, nil
}
