// Package storage provides the key-value stores the storefront core
// persists into. Three logical scopes exist — durable (cart snapshot),
// cache (resolved identity) and session (admin marker) — but they are
// roles, not types: any Store implementation can fill any role. A
// process-lifetime MemoryStore is the canonical session scope, since the
// process plays the part of the browser session.
package storage

import (
	"context"
	"errors"
)

// Fixed keys used by the storefront core.
const (
	KeyCart         = "durger_cart"
	KeyIdentity     = "telegram_user"
	KeyAdminSession = "adminData"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal string key-value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
