// Package auth implements the session gate: a server-side session is
// established at login and carried by an opaque token; admin status is
// asserted from the flag captured at login time, never re-derived per
// request.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

var ErrSessionNotFound = errors.New("session not found or expired")

type (
	// Session is the server-side state behind one opaque token.
	Session struct {
		Token     string
		UserID    int
		Name      string
		Email     string
		IsAdmin   bool
		ExpiresAt time.Time // UTC
	}

	// Store is the session persistence capability. An in-memory store backs
	// tests and single-node deployments; a distributed store can be
	// substituted without touching the gate.
	Store interface {
		Load(token string) (Session, error) // ErrSessionNotFound when absent/expired
		Save(sess Session) error
		Destroy(token string) error
	}

	// Authenticator verifies a credential pair against the credential store.
	Authenticator interface {
		Authenticate(ctx context.Context, email, password string) (user.User, error)
	}

	Service struct {
		store      Store
		authn      Authenticator
		expiration time.Duration
	}
)

func (s *Session) Expired() bool { return time.Now().After(s.ExpiresAt) }

func NewService(conf *core.Config, store Store, authn Authenticator) *Service {
	return &Service{store: store, authn: authn, expiration: conf.SessionExpiration}
}

// Login transitions Anonymous -> Authenticated on successful verification and
// returns the new session. The token is opaque to the client.
func (svc *Service) Login(ctx context.Context, email, password string) (Session, error) {
	usr, err := svc.authn.Authenticate(ctx, email, password)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		Token:     uuid.New().String(),
		UserID:    usr.ID,
		Name:      usr.Name,
		Email:     usr.Email,
		IsAdmin:   usr.IsAdmin,
		ExpiresAt: time.Now().UTC().Add(svc.expiration),
	}
	if err = svc.store.Save(sess); err != nil {
		return Session{}, errors.Wrap(err, "saving session")
	}
	return sess, nil
}

// Logout invalidates the session. Safe to call from Anonymous: an unknown or
// empty token is a no-op, not an error.
func (svc *Service) Logout(token string) error {
	if token == "" {
		return nil
	}
	if err := svc.store.Destroy(token); err != nil && errors.Cause(err) != ErrSessionNotFound {
		return errors.Wrap(err, "destroying session")
	}
	return nil
}

// Get resolves an opaque token to its live session.
func (svc *Service) Get(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrSessionNotFound
	}
	return svc.store.Load(token)
}
