package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"eventexplorer/internal/domain"
)

type categoryRepository struct {
	DB *sql.DB
}

// NewCategoryRepository returns a domain.CategoryRepository implemented with Postgres.
func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) GetBySlugs(ctx context.Context, slugs []string) ([]domain.Category, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, slug FROM categories WHERE slug = ANY($1) ORDER BY name`,
		pq.Array(slugs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
