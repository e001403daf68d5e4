package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventexplorer/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

// NewUserRepository returns a domain.UserRepository implemented with Postgres.
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `
		INSERT INTO users (email, password_hash, salt, first_name, last_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.Salt, u.FirstName, u.LastName, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		// Concurrent signups with the same email race past the service-level
		// check; the unique index decides the winner.
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, salt, first_name, last_name, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, salt, first_name, last_name, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	u := &domain.User{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) ReplaceThemeCategories(ctx context.Context, userID int64, categoryIDs []int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_theme_categories WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if len(categoryIDs) > 0 {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_theme_categories (user_id, category_id)
			SELECT $1, unnest($2::bigint[])
			ON CONFLICT (user_id, category_id) DO NOTHING
		`, userID, pq.Array(categoryIDs))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
