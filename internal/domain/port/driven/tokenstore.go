package driven

import (
	"context"
	"errors"
)

// ErrTokenUndecryptable is returned by TokenStore.Get when a stored value
// cannot be decrypted with the configured key (key rotated or removed).
var ErrTokenUndecryptable = errors.New("stored token cannot be decrypted with the configured key")

// TokenStore defines the driven port for durable client-side token storage.
// Entries are keyed by a fixed name and overwritten wholesale.
type TokenStore interface {
	// Set stores or replaces the value under key.
	Set(ctx context.Context, key, value string) error

	// Get returns the value under key.
	// Returns ("", nil) if nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes the value under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
