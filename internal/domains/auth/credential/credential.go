package credential

//go:generate go run go.uber.org/mock/mockgen -source=./credential.go -destination=../mocks/credential_mock.go -package=mocks

import (
	"context"
	"crypto/subtle"

	"roomdesk/config"
	"roomdesk/shared/password"
)

// Store verifies operator credentials. The backend is a single configured
// admin account, kept behind an interface so a user table can replace it
// without touching the login flow.
type Store interface {
	Verify(ctx context.Context, username, plaintext string) error
}

type configStore struct {
	cfg *config.Config
}

func NewConfigStore(cfg *config.Config) Store {
	return &configStore{cfg: cfg}
}

func (s *configStore) Verify(_ context.Context, username, plaintext string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Admin.Username)) != 1 {
		return password.ErrInvalidPassword
	}

	if s.cfg.Admin.PasswordHash != "" {
		return password.Verify(plaintext, s.cfg.Admin.PasswordHash) //nolint:wrapcheck
	}

	// Plaintext comparison is the local development fallback when no bcrypt
	// hash is configured.
	if subtle.ConstantTimeCompare([]byte(plaintext), []byte(s.cfg.Admin.Password)) != 1 {
		return password.ErrInvalidPassword
	}

	return nil
}
