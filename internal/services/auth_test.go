package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filetags/internal/domain"
)

// fakePasswordHasher implements domain.PasswordHasher for tests. A hash is
// the password prefixed with "hash-".
type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(password string) (string, error) { return "hash-" + password, nil }
func (fakePasswordHasher) Compare(hash, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err     error
	subject string
	expiry  time.Duration
}

func (f *fakeTokenIssuer) Issue(subject string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.subject = subject
	f.expiry = expiry
	return "token-" + subject, nil
}

func TestOperatorAuthService_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		passwordHash string
		username     string
		password     string
		issuerErr    error
		wantToken    string
		wantErr      error
	}{
		{name: "success", passwordHash: "hash-secret", username: "admin", password: "secret", wantToken: "token-admin"},
		{name: "wrong password", passwordHash: "hash-secret", username: "admin", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "wrong username", passwordHash: "hash-secret", username: "root", password: "secret", wantErr: domain.ErrInvalidCredentials},
		{name: "no password configured", passwordHash: "", username: "admin", password: "", wantErr: domain.ErrInvalidCredentials},
		{name: "issuer failure", passwordHash: "hash-secret", username: "admin", password: "secret", issuerErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := &fakeTokenIssuer{err: tt.issuerErr}
			svc := NewOperatorAuthService("admin", tt.passwordHash, fakePasswordHasher{}, issuer, time.Hour)

			token, err := svc.Login(ctx, tt.username, tt.password)

			if tt.issuerErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.issuerErr)
				assert.Contains(t, err.Error(), "failed to issue token")
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, "admin", issuer.subject)
			assert.Equal(t, time.Hour, issuer.expiry)
		})
	}
}
