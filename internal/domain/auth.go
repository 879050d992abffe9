package domain

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned by AuthService.Login for any unknown
// user or wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher hashes and verifies operator passwords.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	Hash(password string) (hash string, err error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated operator.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AuthService authenticates the operator account that may mutate tags.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, err error)
}
