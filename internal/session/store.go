// Package session owns the client's authentication state: who is
// signed in, whether restoration from the durable keystore is still in
// flight, and the single persisted bearer token.
package session

import (
	"context"
	"strings"
	"sync"

	"fieldtask/internal/domain"
	"fieldtask/internal/errors"
	"fieldtask/internal/logging"
	"fieldtask/internal/repository/sqlite"
	"fieldtask/internal/transport"
)

// Authenticator exchanges credentials for a session token. Satisfied
// by the transport client.
type Authenticator interface {
	Login(ctx context.Context, email string, password string) (*transport.Credentials, error)
}

// Store holds the in-memory session state and keeps the keystore's
// persisted token in step with it.
type Store struct {
	mu sync.Mutex

	auth     Authenticator
	keystore sqlite.Keystore

	user    *domain.User
	token   string
	loading bool
}

// NewStore creates a session store. The store starts in the loading
// state until Restore runs.
func NewStore(auth Authenticator, keystore sqlite.Keystore) *Store {
	return &Store{
		auth:     auth,
		keystore: keystore,
		loading:  true,
	}
}

// Restore loads any persisted token from the keystore. It always
// clears the loading flag, even when the keystore read fails.
func (s *Store) Restore(ctx context.Context) {
	token, err := s.keystore.Get(ctx, sqlite.SessionTokenKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			logging.Debugf("session restore failed: %v", err)
		}
		return
	}
	s.token = token
}

// SignIn exchanges the given credentials for a session. Credentials
// are trimmed before the exchange. On any failure the previous session
// state is left untouched and false is returned.
func (s *Store) SignIn(ctx context.Context, email string, password string) bool {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return false
	}

	creds, err := s.auth.Login(ctx, email, password)
	if err != nil {
		logging.Debugf("sign in failed: %v", err)
		return false
	}

	if err := s.keystore.Put(ctx, sqlite.SessionTokenKey, creds.Token); err != nil {
		logging.Debugf("token persist failed: %v", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = creds.Token
	user := creds.User
	s.user = &user
	return true
}

// SignOut clears the session. The keystore delete is best effort: the
// in-memory session is cleared even when it fails.
func (s *Store) SignOut(ctx context.Context) {
	if err := s.keystore.Delete(ctx, sqlite.SessionTokenKey); err != nil {
		logging.Debugf("token delete failed: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

// Authenticated reports whether a session token is held
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Loading reports whether restoration is still in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CurrentUser returns the signed-in user's identity, or nil when it is
// unknown. A restored session holds a token but no identity until the
// next sign-in.
func (s *Store) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}
