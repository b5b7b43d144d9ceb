package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("store: not found")

// Well-known entry keys. These names are a storage contract shared with
// earlier builds of the console; renaming any of them orphans persisted
// sessions.
const (
	KeyAuthToken       = "authToken"
	KeyRefreshToken    = "refreshToken"
	KeyUserRoles       = "userRoles"       // JSON array of canonical role tokens
	KeyUserPermissions = "userPermissions" // JSON array of permission tokens
	KeyUserID          = "userId"

	// KeyLegacyUserRole predates the multi-role session format. It is
	// never written anymore but is still read as a logout-endpoint hint
	// and cleared on logout.
	KeyLegacyUserRole = "userRole"
)

// Store is the durable client storage for the console session: a small
// key-value surface mirroring the entries earlier builds kept in browser
// storage. Concrete drivers (sqlite) implement it.
//
// PutAll is the single persistence boundary for session mutations: every
// write of session state goes through one call that commits atomically,
// so a crash can never leave half a session behind.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// GetAll returns every stored entry.
	GetAll(ctx context.Context) (map[string]string, error)

	// PutAll upserts all given entries in a single transaction.
	PutAll(ctx context.Context, entries map[string]string) error

	// Delete removes the given keys in a single transaction. Missing keys
	// are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the storage is still reachable.
	Ping(ctx context.Context) error
}
