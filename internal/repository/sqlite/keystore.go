package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"fieldtask/internal/errors"

	_ "modernc.org/sqlite"
)

// SessionTokenKey is the fixed key under which the session bearer
// token is persisted. It is the only entry this client durably owns.
const SessionTokenKey = "session_token"

// Timeouts applied per operation when none are configured
const (
	defaultQueryTimeout = 10 * time.Second
	defaultWriteTimeout = 5 * time.Second
)

//go:embed schema.sql
var schemaSQL string

// Keystore defines the interface for the durable local key-value store
type Keystore interface {
	Put(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Utility
	Close() error
}

// SQLiteKeystore implements the Keystore interface
type SQLiteKeystore struct {
	db           *sql.DB
	queryTimeout time.Duration
	writeTimeout time.Duration
}

// New creates a new SQLite keystore instance with default timeouts
func New(dbPath string) (*SQLiteKeystore, error) {
	return NewWithTimeouts(dbPath, defaultQueryTimeout, defaultWriteTimeout)
}

// NewWithTimeouts creates a new SQLite keystore instance with the
// given per-operation timeouts. The schema is applied on open; it is
// idempotent, so reopening an existing database is safe.
func NewWithTimeouts(dbPath string, queryTimeout time.Duration, writeTimeout time.Duration) (*SQLiteKeystore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open keystore", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.NewStorageError("apply schema", err)
	}

	return &SQLiteKeystore{
		db:           db,
		queryTimeout: queryTimeout,
		writeTimeout: writeTimeout,
	}, nil
}

// Close closes the database connection
func (r *SQLiteKeystore) Close() error {
	return r.db.Close()
}

// Put inserts or replaces a value under the given key
func (r *SQLiteKeystore) Put(ctx context.Context, key string, value string) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := `
	INSERT INTO keystore (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return errors.NewStorageError("put "+key, err)
	}
	return nil
}

// Get retrieves the value under the given key. A missing key is a
// not-found error.
func (r *SQLiteKeystore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `SELECT value FROM keystore WHERE key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.NewNotFoundError("keystore entry", key)
	}
	if err != nil {
		return "", errors.NewStorageError("get "+key, err)
	}
	return value, nil
}

// Delete removes the entry under the given key. Deleting an absent key
// is not an error: sign-out must be idempotent.
func (r *SQLiteKeystore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	query := `DELETE FROM keystore WHERE key = ?`

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return errors.NewStorageError("delete "+key, err)
	}
	return nil
}

// TokenSource adapts the keystore to the transport layer's token
// lookup. A missing token is the unauthenticated state, not an error.
type TokenSource struct {
	store Keystore
}

// NewTokenSource creates a token source over the given keystore
func NewTokenSource(store Keystore) *TokenSource {
	return &TokenSource{store: store}
}

// Token returns the persisted session token, or empty when absent
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	value, err := t.store.Get(ctx, SessionTokenKey)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}
