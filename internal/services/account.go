package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventexplorer/internal/domain"
)

const minPasswordLen = 8

type accountService struct {
	users      domain.UserRepository
	hasher     domain.PasswordHasher
	tokens     domain.TokenIssuer
	email      domain.EmailService
	logger     *slog.Logger
	sessionTTL time.Duration
}

// NewAccountService creates an AccountService. sessionTTL is the remember
// duration of issued session tokens.
func NewAccountService(
	users domain.UserRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	email domain.EmailService,
	logger *slog.Logger,
	sessionTTL time.Duration,
) domain.AccountService {
	return &accountService{
		users:      users,
		hasher:     hasher,
		tokens:     tokens,
		email:      email,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

func (s *accountService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		Salt:         salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The unique index resolves concurrent signups; surface the loser as
		// a duplicate, not a server error.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Best effort: a failed welcome email never fails the signup.
	if s.email != nil {
		data := &domain.WelcomeMessageEmailData{Email: user.Email, FirstName: user.FirstName}
		if err := s.email.SendWelcomeMessage(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "email", user.Email, "err", err)
		}
	}

	return user, nil
}

func (s *accountService) Authenticate(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same error as a wrong password so callers cannot probe for
			// registered addresses.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.Salt, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, s.sessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return token, user, nil
}
