package credential

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zalando/go-keyring"

	"github.com/babysteps/babysteps/internal/constants"
	"github.com/babysteps/babysteps/internal/errors"
	"github.com/babysteps/babysteps/internal/logger"
	"github.com/babysteps/babysteps/internal/models"
)

// Fallback is the secondary token backend used when the OS keyring is not
// available (headless machines, stripped-down containers). The state store
// satisfies it.
type Fallback interface {
	GetToken() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// Store persists the opaque credential token locally. Reads never fail:
// a missing or unreadable token is simply "no session". No network access.
type Store struct {
	fallback   Fallback
	useKeyring bool
}

func NewStore(fallback Fallback) *Store {
	return &Store{
		fallback:   fallback,
		useKeyring: keyringAvailable(),
	}
}

// keyringAvailable probes the OS keyring with a read. ErrNotFound means the
// keyring works but is empty; anything else means it is unusable here.
func keyringAvailable() bool {
	_, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	return err == nil || err == keyring.ErrNotFound
}

// Token returns the persisted credential, if any. The boolean is false when
// no credential is stored.
func (s *Store) Token() (string, bool) {
	if s.useKeyring {
		tok, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
		if err == nil && tok != "" {
			return tok, true
		}
		if err != nil && err != keyring.ErrNotFound {
			logger.Warn("Keyring read failed, trying fallback", "error", err)
		}
	}

	tok, err := s.fallback.GetToken()
	if err != nil || tok == "" {
		return "", false
	}
	return tok, true
}

// SetToken persists the credential. Keyring first, state-file fallback.
func (s *Store) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if s.useKeyring {
		if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, token); err == nil {
			// Make sure a stale fallback copy cannot shadow the keyring
			_ = s.fallback.ClearToken()
			return nil
		} else {
			logger.Warn("Keyring write failed, using fallback", "error", err)
		}
	}

	if err := s.fallback.SetToken(token); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	return nil
}

// Clear removes the credential from every backend. Idempotent.
func (s *Store) Clear() error {
	if s.useKeyring {
		if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil && err != keyring.ErrNotFound {
			logger.Warn("Keyring delete failed", "error", err)
		}
	}
	if err := s.fallback.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

// sessionClaims is the token payload shape issued by the server: the
// identity rides in a nested "user" object.
type sessionClaims struct {
	User models.Identity `json:"user"`
	jwt.RegisteredClaims
}

// DecodeIdentity extracts the identity claims from a credential token.
// The signature is NOT verified: trust is delegated to the server, which
// checks the token on every request. A token that cannot be parsed yields
// ErrMalformedCredential; callers must treat that identically to "no
// session" (clear the token, identity = nil).
func DecodeIdentity(token string) (models.Identity, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", errors.ErrMalformedCredential, err)
	}

	if claims.User.ID == "" && claims.User.Username == "" {
		return models.Identity{}, fmt.Errorf("%w: no identity claims", errors.ErrMalformedCredential)
	}

	return claims.User, nil
}
