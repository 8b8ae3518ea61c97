package cart

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AminovSarvarbek/telegramshopfront/helper"
	"github.com/AminovSarvarbek/telegramshopfront/models"
	"github.com/AminovSarvarbek/telegramshopfront/pkg/logger"
	"github.com/AminovSarvarbek/telegramshopfront/storage"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func burger() models.Product {
	return models.Product{ID: 1, Name: "Burger", Price: 500}
}

func fries() models.Product {
	return models.Product{ID: 2, Name: "Fries", Price: 250}
}

func TestAddMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, storage.NewMemoryStore(), testLogger())

	s.Add(ctx, burger())
	s.Add(ctx, burger())

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, "Burger", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, s.TotalItems())
	assert.Equal(t, helper.Cents(1000), s.TotalPrice())

	// Draining removes one unit at a time and finally the line itself.
	s.Remove(ctx, 1)
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, 1, s.Lines()[0].Quantity)

	s.Remove(ctx, 1)
	assert.Empty(t, s.Lines())
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, storage.NewMemoryStore(), testLogger())

	s.Add(ctx, burger())
	s.Remove(ctx, 999)

	assert.Equal(t, 1, s.TotalItems())
}

func TestAddRemoveIsInversePair(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, storage.NewMemoryStore(), testLogger())
	s.Add(ctx, burger())
	s.Add(ctx, fries())
	s.Add(ctx, burger())

	before := s.Lines()
	s.Add(ctx, fries())
	s.Remove(ctx, fries().ID)

	assert.Equal(t, before, s.Lines())
}

func TestInvariantsUnderRandomSequences(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, storage.NewMemoryStore(), testLogger())
	products := []models.Product{burger(), fries(), {ID: 3, Name: "Cola", Price: 150}}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		p := products[rng.Intn(len(products))]
		if rng.Intn(2) == 0 {
			s.Add(ctx, p)
		} else {
			s.Remove(ctx, p.ID)
		}

		seen := map[int64]bool{}
		items := 0
		var total helper.Cents
		for _, l := range s.Lines() {
			require.False(t, seen[l.ID], "duplicate line for id %d", l.ID)
			seen[l.ID] = true
			require.GreaterOrEqual(t, l.Quantity, 1)
			items += l.Quantity
			total += l.Price * helper.Cents(l.Quantity)
		}
		require.Equal(t, items, s.TotalItems())
		require.Equal(t, total, s.TotalPrice())
	}
}

func TestTotalsArePure(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, storage.NewMemoryStore(), testLogger())
	s.Add(ctx, burger())

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, s.TotalItems())
		assert.Equal(t, helper.Cents(500), s.TotalPrice())
	}
	assert.Len(t, s.Lines(), 1)
}

func TestPersistHydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()

	s := New(ctx, st, testLogger())
	s.Add(ctx, burger())
	s.Add(ctx, burger())
	s.Add(ctx, fries())

	reloaded := New(ctx, st, testLogger())
	assert.Equal(t, s.Lines(), reloaded.Lines())
	assert.Equal(t, s.TotalItems(), reloaded.TotalItems())
	assert.Equal(t, s.TotalPrice(), reloaded.TotalPrice())
}

func TestHydrateMissingKeyYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, storage.NewMemoryStore(), testLogger())
	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalItems())
}

func TestHydrateCorruptSnapshotYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	require.NoError(t, st.Set(ctx, storage.KeyCart, "{not json"))

	s := New(ctx, st, testLogger())
	assert.Empty(t, s.Lines())
}

func TestHydrateDropsMalformedLines(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	snapshot := `[{"id":1,"name":"Burger","price":5,"quantity":2},` +
		`{"id":1,"name":"Burger","price":5,"quantity":1},` +
		`{"id":2,"name":"Fries","price":2.5,"quantity":0}]`
	require.NoError(t, st.Set(ctx, storage.KeyCart, snapshot))

	s := New(ctx, st, testLogger())
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestClearPersistsEmptyCollection(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	s := New(ctx, st, testLogger())
	s.Add(ctx, burger())

	s.Clear(ctx)

	raw, err := st.Get(ctx, storage.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
	assert.Empty(t, s.Lines())
}

func TestSnapshotIsDetachedFromLiveCart(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, storage.NewMemoryStore(), testLogger())
	s.Add(ctx, burger())

	snap := s.Snapshot()
	s.Add(ctx, burger())
	s.Add(ctx, fries())

	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
	assert.Equal(t, helper.Cents(500), Total(snap))
}

func TestPanelFlag(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	s := New(ctx, st, testLogger())

	assert.False(t, s.IsOpen())
	s.ToggleOpen()
	assert.True(t, s.IsOpen())
	s.ToggleOpen()
	assert.False(t, s.IsOpen())
	s.ToggleOpen()
	s.Close()
	assert.False(t, s.IsOpen())

	// The flag never reaches storage.
	_, err := st.Get(ctx, storage.KeyCart)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
