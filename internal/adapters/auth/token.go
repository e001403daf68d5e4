package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventexplorer/internal/domain"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type jwtSessions struct {
	secret []byte
}

// NewJWTSessions returns a TokenIssuer/TokenVerifier pair backed by HS256
// JWTs. The token is the value of the session cookie, making the cookie
// self-contained and tamper-evident.
func NewJWTSessions(secret string) (domain.TokenIssuer, domain.TokenVerifier) {
	s := &jwtSessions{secret: []byte(secret)}
	return s, s
}

func (s *jwtSessions) Issue(userID int64, email string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Email: email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (s *jwtSessions) Verify(tokenString string) (int64, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token subject: %w", err)
	}
	return userID, nil
}
