package session

import (
	"context"
	"encoding/json"
	"net"
	"strconv"
	"time"

	"github.com/AminovSarvarbek/telegramshopfront/models"
	"github.com/AminovSarvarbek/telegramshopfront/pkg/logger"
	"github.com/AminovSarvarbek/telegramshopfront/storage"
)

// Placeholder identity used when no runtime user exists but the app runs
// against a local development origin.
const (
	DevUserID    int64 = 12345678
	devFirstName       = "Dev"
	devUsername        = "dev_user"
)

// Resolver derives the canonical identity payload from the hosting runtime
// and caches it for the transport layer, which attaches it to every
// outbound request as an implicit credential.
type Resolver struct {
	bridge   Bridge
	cache    storage.Store
	hostname string
	now      func() time.Time
	log      *logger.Logger
}

// NewResolver builds a Resolver. hostname is the app's network origin and
// decides whether the development fallback applies.
func NewResolver(bridge Bridge, cache storage.Store, hostname string, log *logger.Logger) *Resolver {
	return &Resolver{
		bridge:   bridge,
		cache:    cache,
		hostname: hostname,
		now:      time.Now,
		log:      log,
	}
}

// ResolveIdentity returns the current identity:
//   - the bridge's user when one exists,
//   - a deterministic placeholder when there is none but the origin is a
//     development host,
//   - (nil, nil) otherwise — identity-requiring operations must refuse to
//     proceed in that case.
//
// Any returned identity is also written to the cache store so the HTTP
// client can pick it up without re-resolving.
func (r *Resolver) ResolveIdentity(ctx context.Context) (*models.Identity, error) {
	if user, ok := r.bridge.User(); ok {
		identity := *user
		r.cacheIdentity(ctx, &identity)
		return &identity, nil
	}

	if !isDevHost(r.hostname) {
		return nil, nil
	}

	identity := &models.Identity{
		ID:        DevUserID,
		FirstName: devFirstName,
		Username:  devUsername,
		AuthDate:  strconv.FormatInt(r.now().Unix(), 10),
	}
	r.cacheIdentity(ctx, identity)
	return identity, nil
}

func (r *Resolver) cacheIdentity(ctx context.Context, identity *models.Identity) {
	data, err := json.Marshal(identity)
	if err != nil {
		r.log.Warn("failed to serialize identity", "error", err)
		return
	}
	if err := r.cache.Set(ctx, storage.KeyIdentity, string(data)); err != nil {
		r.log.Warn("failed to cache identity", "error", err)
	}
}

// isDevHost recognizes local development origins.
func isDevHost(hostname string) bool {
	host := hostname
	if h, _, err := net.SplitHostPort(hostname); err == nil {
		host = h
	}
	return host == "localhost" || host == "127.0.0.1"
}
