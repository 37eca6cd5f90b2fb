package session

import (
	"context"
	"testing"

	"fieldtask/internal/domain"
	"fieldtask/internal/errors"
	"fieldtask/internal/repository/sqlite"
	"fieldtask/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock authenticator for testing
type mockAuthenticator struct {
	creds     *transport.Credentials
	err       error
	lastEmail string
	lastPass  string
	calls     int
}

func (m *mockAuthenticator) Login(ctx context.Context, email string, password string) (*transport.Credentials, error) {
	m.calls++
	m.lastEmail = email
	m.lastPass = password
	return m.creds, m.err
}

// Mock keystore for testing
type mockKeystore struct {
	values    map[string]string
	putErr    error
	getErr    error
	deleteErr error
}

func newMockKeystore() *mockKeystore {
	return &mockKeystore{values: make(map[string]string)}
}

func (m *mockKeystore) Put(ctx context.Context, key string, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key] = value
	return nil
}

func (m *mockKeystore) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	value, ok := m.values[key]
	if !ok {
		return "", errors.NewNotFoundError("keystore entry", key)
	}
	return value, nil
}

func (m *mockKeystore) Delete(ctx context.Context, key string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.values, key)
	return nil
}

func (m *mockKeystore) Close() error { return nil }

func validCreds() *transport.Credentials {
	return &transport.Credentials{
		Token: "tok-abc",
		User:  domain.User{ID: "u1", Name: "Maria", Email: "maria@example.com"},
	}
}

func TestStore_SignIn(t *testing.T) {
	// Arrange
	auth := &mockAuthenticator{creds: validCreds()}
	keystore := newMockKeystore()
	store := NewStore(auth, keystore)

	// Act
	ok := store.SignIn(context.Background(), "maria@example.com", "secret")

	// Assert
	assert.True(t, ok)
	assert.True(t, store.Authenticated())
	require.NotNil(t, store.CurrentUser())
	assert.Equal(t, "Maria", store.CurrentUser().Name)
	assert.Equal(t, "tok-abc", keystore.values[sqlite.SessionTokenKey])
}

func TestStore_SignInTrimsCredentials(t *testing.T) {
	// Arrange
	auth := &mockAuthenticator{creds: validCreds()}
	store := NewStore(auth, newMockKeystore())

	// Act
	ok := store.SignIn(context.Background(), "  maria@example.com  ", " secret ")

	// Assert
	assert.True(t, ok)
	assert.Equal(t, "maria@example.com", auth.lastEmail)
	assert.Equal(t, "secret", auth.lastPass)
}

func TestStore_SignInBlankCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "blank email", email: "   ", password: "secret"},
		{name: "blank password", email: "maria@example.com", password: "   "},
		{name: "both blank", email: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			auth := &mockAuthenticator{creds: validCreds()}
			store := NewStore(auth, newMockKeystore())

			// Act
			ok := store.SignIn(context.Background(), tt.email, tt.password)

			// Assert
			assert.False(t, ok)
			assert.Zero(t, auth.calls, "backend should not be called")
			assert.False(t, store.Authenticated())
		})
	}
}

func TestStore_SignInFailureLeavesStateUntouched(t *testing.T) {
	// Arrange: an established session, then a failing second sign-in
	auth := &mockAuthenticator{creds: validCreds()}
	keystore := newMockKeystore()
	store := NewStore(auth, keystore)
	require.True(t, store.SignIn(context.Background(), "maria@example.com", "secret"))

	auth.creds = nil
	auth.err = errors.NewUnauthorizedError("sign in")

	// Act
	ok := store.SignIn(context.Background(), "maria@example.com", "wrong")

	// Assert
	assert.False(t, ok)
	assert.True(t, store.Authenticated())
	assert.Equal(t, "tok-abc", keystore.values[sqlite.SessionTokenKey])
}

func TestStore_SignInKeystoreFailure(t *testing.T) {
	// Arrange
	auth := &mockAuthenticator{creds: validCreds()}
	keystore := newMockKeystore()
	keystore.putErr = errors.NewStorageError("put", assert.AnError)
	store := NewStore(auth, keystore)

	// Act
	ok := store.SignIn(context.Background(), "maria@example.com", "secret")

	// Assert
	assert.False(t, ok)
	assert.False(t, store.Authenticated())
}

func TestStore_SignOut(t *testing.T) {
	// Arrange
	auth := &mockAuthenticator{creds: validCreds()}
	keystore := newMockKeystore()
	store := NewStore(auth, keystore)
	require.True(t, store.SignIn(context.Background(), "maria@example.com", "secret"))

	// Act
	store.SignOut(context.Background())

	// Assert
	assert.False(t, store.Authenticated())
	assert.Nil(t, store.CurrentUser())
	assert.Empty(t, keystore.values)
}

func TestStore_SignOutClearsMemoryDespiteKeystoreFailure(t *testing.T) {
	// Arrange
	auth := &mockAuthenticator{creds: validCreds()}
	keystore := newMockKeystore()
	store := NewStore(auth, keystore)
	require.True(t, store.SignIn(context.Background(), "maria@example.com", "secret"))
	keystore.deleteErr = errors.NewStorageError("delete", assert.AnError)

	// Act
	store.SignOut(context.Background())

	// Assert
	assert.False(t, store.Authenticated())
	assert.Nil(t, store.CurrentUser())
}

func TestStore_RestoreLoadsPersistedToken(t *testing.T) {
	// Arrange
	keystore := newMockKeystore()
	keystore.values[sqlite.SessionTokenKey] = "tok-restored"
	store := NewStore(&mockAuthenticator{}, keystore)
	assert.True(t, store.Loading())

	// Act
	store.Restore(context.Background())

	// Assert
	assert.False(t, store.Loading())
	assert.True(t, store.Authenticated())
	assert.Nil(t, store.CurrentUser(), "restored sessions carry no identity")
}

func TestStore_RestoreWithoutToken(t *testing.T) {
	// Arrange
	store := NewStore(&mockAuthenticator{}, newMockKeystore())

	// Act
	store.Restore(context.Background())

	// Assert
	assert.False(t, store.Loading())
	assert.False(t, store.Authenticated())
}

func TestStore_RestoreClearsLoadingOnKeystoreFailure(t *testing.T) {
	// Arrange
	keystore := newMockKeystore()
	keystore.getErr = errors.NewStorageError("get", assert.AnError)
	store := NewStore(&mockAuthenticator{}, keystore)

	// Act
	store.Restore(context.Background())

	// Assert
	assert.False(t, store.Loading())
	assert.False(t, store.Authenticated())
}
