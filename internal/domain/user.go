package domain

import (
	"context"
	"time"
)

// User represents a registered account.
// swagger:model User
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues session tokens for an authenticated user.
type TokenIssuer interface {
	Issue(userID int64, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a session token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID int64, err error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	// ReplaceThemeCategories replaces the user's interest-category set with
	// the given category IDs in a single transaction.
	ReplaceThemeCategories(ctx context.Context, userID int64, categoryIDs []int64) error
}

// RegisterInput is the input for AccountService.Register.
type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// AccountService defines registration and authentication business logic.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	// Authenticate returns a session token bound to the user on success and
	// ErrInvalidCredentials for both unknown email and wrong password.
	Authenticate(ctx context.Context, email, password string) (token string, user *User, err error)
}
