// Package cart owns the line items a customer intends to order. Every
// mutation writes a full snapshot to the injected durable store, and a new
// Store hydrates from that snapshot, so the cart survives restarts the way
// the web client's cart survives page reloads.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AminovSarvarbek/telegramshopfront/helper"
	"github.com/AminovSarvarbek/telegramshopfront/models"
	"github.com/AminovSarvarbek/telegramshopfront/pkg/logger"
	"github.com/AminovSarvarbek/telegramshopfront/storage"
)

// Store holds the cart lines plus the open/closed flag of the cart panel.
// The flag is pure UI state and is never persisted.
type Store struct {
	mu      sync.Mutex
	lines   []models.CartLine
	open    bool
	storage storage.Store
	log     *logger.Logger
}

// New creates a Store and hydrates it from the durable snapshot. A missing
// snapshot yields an empty cart; a corrupt one is logged and discarded —
// hydration never fails.
func New(ctx context.Context, st storage.Store, log *logger.Logger) *Store {
	s := &Store{storage: st, log: log}

	raw, err := st.Get(ctx, storage.KeyCart)
	if err != nil {
		if err != storage.ErrNotFound {
			log.Warn("failed to read saved cart, starting empty", "error", err)
		}
		return s
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		log.Warn("failed to parse saved cart, starting empty", "error", err)
		return s
	}
	s.lines = sanitize(lines)
	return s
}

// sanitize drops malformed snapshot lines so the invariants hold even when
// the stored data was written by an older or foreign client.
func sanitize(lines []models.CartLine) []models.CartLine {
	seen := make(map[int64]bool, len(lines))
	out := lines[:0]
	for _, l := range lines {
		if l.Quantity < 1 || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		out = append(out, l)
	}
	return out
}

// Add puts one unit of the product into the cart. An existing line for the
// same product id is incremented; otherwise a new line is appended.
func (s *Store) Add(ctx context.Context, p models.Product) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID == p.ID {
			s.lines[i].Quantity++
			s.persistLocked(ctx)
			s.mu.Unlock()
			return
		}
	}
	s.lines = append(s.lines, models.CartLine{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: 1,
	})
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// Remove takes one unit of the product out of the cart. The line disappears
// when its quantity would drop to zero. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id int64) {
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID != id {
			continue
		}
		if s.lines[i].Quantity > 1 {
			s.lines[i].Quantity--
		} else {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		s.persistLocked(ctx)
		break
	}
	s.mu.Unlock()
}

// Clear empties the cart and persists the empty snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.persistLocked(ctx)
	s.mu.Unlock()
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

// Snapshot is an alias of Lines named for the checkout path: the order
// payload must be built from a point-in-time copy, never from the live
// cart, since the user can keep mutating it while the request is in flight.
func (s *Store) Snapshot() []models.CartLine {
	return s.Lines()
}

// TotalItems returns the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the sum of price times quantity over all lines.
func (s *Store) TotalPrice() helper.Cents {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total helper.Cents
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

// Total computes the total for an already-taken snapshot.
func Total(lines []models.CartLine) helper.Cents {
	var total helper.Cents
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// ToggleOpen flips the cart panel flag.
func (s *Store) ToggleOpen() {
	s.mu.Lock()
	s.open = !s.open
	s.mu.Unlock()
}

// Close resets the cart panel flag.
func (s *Store) Close() {
	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
}

// IsOpen reports the cart panel flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Store) copyLocked() []models.CartLine {
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// persistLocked writes the full snapshot. Write failures are logged, never
// surfaced: a broken disk must not break the cart.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.copyLocked())
	if err != nil {
		s.log.Warn("failed to serialize cart", "error", err)
		return
	}
	if err := s.storage.Set(ctx, storage.KeyCart, string(data)); err != nil {
		s.log.Warn("failed to save cart", "error", err)
	}
}
