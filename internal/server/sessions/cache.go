// Package sessions maps opaque bearer tokens to user identities through a
// short-TTL key-value cache.
package sessions

import (
	"context"
	"time"
)

// Cache binds session tokens to user ids. Resolve is read-only, idempotent,
// and safe for concurrent use; a missing or expired token yields
// common.ErrorNotFound.
type Cache interface {
	Resolve(ctx context.Context, token string) (string, error)
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}
