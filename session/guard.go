package session

import (
	"context"

	"github.com/AminovSarvarbek/telegramshopfront/storage"
)

// GuardState is the admin route guard's state.
type GuardState int

const (
	// Checking is the initial state, before the session store was inspected.
	Checking GuardState = iota
	// Denied means no admin marker exists; the caller should redirect to
	// the login entry point and carry the requested location along.
	Denied
	// Granted means the marker exists. Nothing short of the session store
	// being cleared externally leaves this state.
	Granted
)

func (s GuardState) String() string {
	switch s {
	case Denied:
		return "denied"
	case Granted:
		return "granted"
	default:
		return "checking"
	}
}

// IsAuthorizedAdmin reports whether a non-empty admin marker exists in the
// session store. No network call is made: the marker was written once, at
// login, and its presence is advisory — the backend re-validates every
// admin request on its own.
func IsAuthorizedAdmin(ctx context.Context, sess storage.Store) bool {
	value, err := sess.Get(ctx, storage.KeyAdminSession)
	return err == nil && value != ""
}

// Guard gates access to the admin area.
type Guard struct {
	session   storage.Store
	state     GuardState
	requested string
}

// NewGuard creates a guard in the Checking state.
func NewGuard(sess storage.Store) *Guard {
	return &Guard{session: sess}
}

// Resolve inspects the session store once and settles into Granted or
// Denied. requested is the location the caller originally asked for; it is
// kept so a post-login redirect can return there. A guard that already
// reached Granted stays Granted.
func (g *Guard) Resolve(ctx context.Context, requested string) GuardState {
	if g.state == Granted {
		return g.state
	}
	g.requested = requested
	if IsAuthorizedAdmin(ctx, g.session) {
		g.state = Granted
	} else {
		g.state = Denied
	}
	return g.state
}

// State returns the current guard state.
func (g *Guard) State() GuardState { return g.state }

// RequestedLocation returns the location recorded by the last Resolve, for
// the post-login return redirect.
func (g *Guard) RequestedLocation() string { return g.requested }
