package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventexplorer/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `
	e.id, e.title, COALESCE(e.description, ''), COALESCE(e.location, ''),
	e.is_free, e.price_cents, e.start_at, e.end_at, e.timezone,
	e.created_at, e.updated_at`

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT` + eventColumns + `
		FROM events e
		WHERE e.id = $1`
	event, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadRelations(ctx, []*domain.Event{event}); err != nil {
		return nil, err
	}
	return event, nil
}

// List runs the listing query described by filter: category union via a
// semi-join (no duplicate rows when an event matches several slugs), free/paid
// flag, date-window overlap with an exclusive end bound, case-insensitive
// substring search, ordered by start_at then id for stable pagination.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) (*domain.EventPage, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(filter.CategorySlugs) > 0 {
		conds = append(conds, fmt.Sprintf(`e.id IN (
			SELECT ec.event_id
			FROM event_categories ec
			JOIN categories c ON c.id = ec.category_id
			WHERE c.slug = ANY(%s))`, arg(pq.Array(filter.CategorySlugs))))
	}

	switch filter.Type {
	case domain.PriceTypeFree:
		conds = append(conds, "e.is_free = TRUE")
	case domain.PriceTypePaid:
		conds = append(conds, "e.is_free = FALSE")
	}

	switch {
	case filter.Start != nil && filter.End != nil:
		// An event with no end is treated as instantaneous at start_at; one
		// with an end is included if its interval overlaps [start, end).
		start, end := arg(*filter.Start), arg(*filter.End)
		conds = append(conds, fmt.Sprintf(`(
			(e.end_at IS NULL AND e.start_at >= %[1]s AND e.start_at < %[2]s) OR
			(e.end_at IS NOT NULL AND e.end_at >= %[1]s AND e.start_at < %[2]s))`, start, end))
	case filter.Start != nil:
		conds = append(conds, fmt.Sprintf("e.start_at >= %s", arg(*filter.Start)))
	case filter.End != nil:
		conds = append(conds, fmt.Sprintf("e.start_at < %s", arg(*filter.End)))
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := arg("%" + q + "%")
		conds = append(conds, fmt.Sprintf(
			"(e.title ILIKE %[1]s OR e.description ILIKE %[1]s OR e.location ILIKE %[1]s)", like))
	}

	where := ""
	if len(conds) > 0 {
		where = "\nWHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM events e` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, err
	}

	pageQuery := `SELECT` + eventColumns + `
		FROM events e` + where + `
		ORDER BY e.start_at, e.id
		LIMIT ` + arg(filter.Pagination.PerPage) + ` OFFSET ` + arg(filter.Pagination.Offset())

	rows, err := r.DB.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, events); err != nil {
		return nil, err
	}
	return &domain.EventPage{Events: events, Total: total}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var price sql.NullInt64
	var endAt sql.NullTime
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location,
		&e.IsFree, &price, &e.StartAt, &endAt, &e.Timezone,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		e.PriceCents = &price.Int64
	}
	if endAt.Valid {
		t := endAt.Time
		e.EndAt = &t
	}
	return e, nil
}

// loadRelations attaches categories, tags, and images to the given events
// with one batched query per relation.
func (r *eventRepository) loadRelations(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Event, len(events))
	ids := make([]int64, len(events))
	for i, e := range events {
		byID[e.ID] = e
		ids[i] = e.ID
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT ec.event_id, c.id, c.name, c.slug
		FROM event_categories ec
		JOIN categories c ON c.id = ec.category_id
		WHERE ec.event_id = ANY($1)
		ORDER BY c.name`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var eventID int64
		var c domain.Category
		if err := rows.Scan(&eventID, &c.ID, &c.Name, &c.Slug); err != nil {
			return err
		}
		byID[eventID].Categories = append(byID[eventID].Categories, c)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tagRows, err := r.DB.QueryContext(ctx, `
		SELECT et.event_id, t.id, t.name, t.slug
		FROM event_tags et
		JOIN tags t ON t.id = et.tag_id
		WHERE et.event_id = ANY($1)
		ORDER BY t.name`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var eventID int64
		var t domain.Tag
		if err := tagRows.Scan(&eventID, &t.ID, &t.Name, &t.Slug); err != nil {
			return err
		}
		byID[eventID].Tags = append(byID[eventID].Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return err
	}

	imgRows, err := r.DB.QueryContext(ctx, `
		SELECT id, event_id, url, COALESCE(alt_text, ''), kind, sort_order
		FROM event_images
		WHERE event_id = ANY($1)
		ORDER BY sort_order, id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer imgRows.Close()
	for imgRows.Next() {
		var img domain.EventImage
		if err := imgRows.Scan(&img.ID, &img.EventID, &img.URL, &img.AltText, &img.Kind, &img.SortOrder); err != nil {
			return err
		}
		byID[img.EventID].Images = append(byID[img.EventID].Images, img)
	}
	return imgRows.Err()
}
