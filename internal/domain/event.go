package domain

import (
	"context"
	"time"
)

// Image kinds for EventImage.Kind.
const (
	ImageKindCover   = "cover"
	ImageKindGallery = "gallery"
	ImageKindPast    = "past"
)

// Category is a theme a visitor can filter events by.
// swagger:model Category
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Tag is a free-form label attached to events.
// swagger:model Tag
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// EventImage belongs to exactly one event and is removed with it.
type EventImage struct {
	ID        int64  `json:"id"`
	EventID   int64  `json:"-"`
	URL       string `json:"url"`
	AltText   string `json:"alt_text"`
	Kind      string `json:"kind"`
	SortOrder int    `json:"sort_order"`
}

// Event is the catalog's central entity. Relations are loaded by the
// repository; Images are ordered by sort order ascending.
type Event struct {
	ID          int64
	Title       string
	Description string
	Location    string
	IsFree      bool
	PriceCents  *int64
	StartAt     time.Time
	EndAt       *time.Time
	Timezone    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categories []Category
	Tags       []Tag
	Images     []EventImage
}

// EventDTO is the wire representation of an event.
// swagger:model EventDTO
type EventDTO struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	IsFree      bool         `json:"is_free"`
	PriceCents  *int64       `json:"price_cents"`
	StartAt     string       `json:"start_at"`
	EndAt       string       `json:"end_at"`
	Timezone    string       `json:"timezone"`
	Categories  []Category   `json:"categories"`
	Tags        []Tag        `json:"tags"`
	CoverImage  *EventImage  `json:"cover_image"`
	Gallery     []EventImage `json:"gallery"`
}

// ToDTO renders the event for API responses. A missing end time reports the
// start time, the cover image is the first image with kind "cover", and the
// gallery keeps gallery and past images in sort order.
func (e *Event) ToDTO() EventDTO {
	var cover *EventImage
	gallery := []EventImage{}
	for i := range e.Images {
		img := e.Images[i]
		switch img.Kind {
		case ImageKindCover:
			if cover == nil {
				cover = &img
			}
		case ImageKindGallery, ImageKindPast:
			gallery = append(gallery, img)
		}
	}

	endAt := e.StartAt
	if e.EndAt != nil {
		endAt = *e.EndAt
	}

	categories := e.Categories
	if categories == nil {
		categories = []Category{}
	}
	tags := e.Tags
	if tags == nil {
		tags = []Tag{}
	}

	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Location:    e.Location,
		IsFree:      e.IsFree,
		PriceCents:  e.PriceCents,
		StartAt:     e.StartAt.Format(time.RFC3339),
		EndAt:       endAt.Format(time.RFC3339),
		Timezone:    e.Timezone,
		Categories:  categories,
		Tags:        tags,
		CoverImage:  cover,
		Gallery:     gallery,
	}
}

// Price type filter values for EventFilter.Type.
const (
	PriceTypeAll  = "all"
	PriceTypeFree = "free"
	PriceTypePaid = "paid"
)

// EventFilter is the resolved input to the event listing query. Start and End
// bound the date window; either may be nil.
type EventFilter struct {
	CategorySlugs []string
	Type          string
	Start         *time.Time
	End           *time.Time
	Query         string
	Pagination    PaginationParams
}

// EventPage is one page of listing results plus the total match count.
type EventPage struct {
	Events []*Event
	Total  int
}

// EventRepository defines read access to the event catalog.
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter EventFilter) (*EventPage, error)
}

// CategoryRepository defines read access to categories.
type CategoryRepository interface {
	ListAll(ctx context.Context) ([]Category, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]Category, error)
}

// EventQuery carries the raw listing query parameters before resolution.
type EventQuery struct {
	CategorySlugs []string
	Type          string
	DatePreset    string
	Start         string
	End           string
	Query         string
	Page          int
	PerPage       int
}

// CatalogService defines the read-side business logic for the catalog.
type CatalogService interface {
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListEvents(ctx context.Context, q EventQuery) (*EventPage, PaginationParams, error)
	// SaveUserThemes replaces the user's interest categories with those whose
	// slugs are given, ignoring unknown slugs, and returns the saved set.
	SaveUserThemes(ctx context.Context, userID int64, slugs []string) ([]Category, error)
}
