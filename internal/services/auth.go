package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"filetags/internal/domain"
)

type operatorAuthService struct {
	username     string
	passwordHash string
	hasher       domain.PasswordHasher
	issuer       domain.TokenIssuer
	tokenExpiry  time.Duration
}

// NewOperatorAuthService returns an AuthService for the single operator
// account configured by username and bcrypt passwordHash.
func NewOperatorAuthService(username, passwordHash string, hasher domain.PasswordHasher, issuer domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &operatorAuthService{
		username:     username,
		passwordHash: passwordHash,
		hasher:       hasher,
		issuer:       issuer,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *operatorAuthService) Login(ctx context.Context, username, password string) (string, error) {
	if s.passwordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.passwordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.issuer.Issue(s.username, s.tokenExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}
