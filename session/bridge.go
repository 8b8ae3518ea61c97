// Package session resolves the customer's identity from the hosting
// runtime and gates the admin area on a session-scoped marker.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/AminovSarvarbek/telegramshopfront/models"
)

// ErrBridgeUnavailable is the terminal result of WaitReady: the hosting
// runtime never announced itself within the allowed window.
var ErrBridgeUnavailable = errors.New("hosting runtime bridge unavailable")

// Bridge is the hosting runtime's identity surface. The runtime may not be
// ready at startup; callers poll Ready via WaitReady before trusting User.
type Bridge interface {
	// Ready reports whether the runtime has announced itself.
	Ready() bool
	// User returns the authenticated user, or false when the runtime has
	// no user (opened outside the host, or not ready yet).
	User() (*models.Identity, bool)
}

// NoBridge is the Bridge used when the app runs outside any hosting
// runtime, e.g. in a plain browser tab or a test process.
type NoBridge struct{}

func (NoBridge) Ready() bool                    { return true }
func (NoBridge) User() (*models.Identity, bool) { return nil, false }

const readyPollInterval = 100 * time.Millisecond

// DefaultReadyWait bounds how long WaitReady polls before giving up.
const DefaultReadyWait = 3 * time.Second

// WaitReady polls the bridge every 100ms until it reports ready, the
// maximum wait elapses, or ctx is cancelled. A zero maxWait means
// DefaultReadyWait.
func WaitReady(ctx context.Context, b Bridge, maxWait time.Duration) error {
	if b.Ready() {
		return nil
	}
	if maxWait <= 0 {
		maxWait = DefaultReadyWait
	}

	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if b.Ready() {
				return nil
			}
			if time.Now().After(deadline) {
				return ErrBridgeUnavailable
			}
		}
	}
}
