package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrsLondon/vivahub-api/internal/model"
)

func newTestStore() *Store {
	return NewStore(Config{TTL: time.Hour, CleanupInterval: time.Hour})
}

func testItem(name string, price float64, duration int) model.CartItem {
	return model.CartItem{
		ServiceID: uuid.New(),
		Name:      name,
		Price:     price,
		Duration:  duration,
	}
}

func TestAddAccumulatesTotals(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	cut := testItem("Haircut", 45, 60)
	color := testItem("Coloring", 30, 45)

	c := store.Add(userID, cut)
	assert.Equal(t, 1, c.Count)
	assert.Equal(t, 45.0, c.TotalPrice)
	assert.Equal(t, 60, c.TotalDuration)

	c = store.Add(userID, color)
	assert.Equal(t, 2, c.Count)
	assert.Equal(t, 75.0, c.TotalPrice)
	assert.Equal(t, 105, c.TotalDuration)

	// Insertion order preserved
	require.Len(t, c.Items, 2)
	assert.Equal(t, "Haircut", c.Items[0].Name)
	assert.Equal(t, "Coloring", c.Items[1].Name)
}

func TestAddExistingServiceIsNoop(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	item := testItem("Haircut", 45, 60)
	store.Add(userID, item)
	c := store.Add(userID, item)

	assert.Equal(t, 1, c.Count)
	assert.Equal(t, 45.0, c.TotalPrice)
	assert.Equal(t, 60, c.TotalDuration)
}

func TestRemoveRecomputesTotals(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	cut := testItem("Haircut", 45, 60)
	color := testItem("Coloring", 30, 45)
	store.Add(userID, cut)
	store.Add(userID, color)

	c := store.Remove(userID, cut.ServiceID)
	assert.Equal(t, 1, c.Count)
	assert.Equal(t, 30.0, c.TotalPrice)
	assert.Equal(t, 45, c.TotalDuration)
	require.Len(t, c.Items, 1)
	assert.Equal(t, color.ServiceID, c.Items[0].ServiceID)
}

func TestRemoveUnknownServiceIsNoop(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	store.Add(userID, testItem("Haircut", 45, 60))
	c := store.Remove(userID, uuid.New())

	assert.Equal(t, 1, c.Count)
	assert.Equal(t, 45.0, c.TotalPrice)
}

func TestClearZeroesAggregates(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	store.Add(userID, testItem("Haircut", 45, 60))
	store.Add(userID, testItem("Coloring", 30, 45))

	c := store.Clear(userID)
	assert.Equal(t, 0, c.Count)
	assert.Equal(t, 0.0, c.TotalPrice)
	assert.Equal(t, 0, c.TotalDuration)
	assert.Empty(t, c.Items)

	c = store.Get(userID)
	assert.Equal(t, 0, c.Count)
}

func TestAggregatesMatchFoldAfterEveryMutation(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	items := []model.CartItem{
		testItem("Haircut", 45, 60),
		testItem("Coloring", 30, 45),
		testItem("Manicure", 25, 30),
		testItem("Massage", 80, 90),
	}

	check := func(c *model.Cart) {
		t.Helper()
		var price float64
		var duration int
		for _, item := range c.Items {
			price += item.Price
			duration += item.Duration
		}
		assert.Equal(t, len(c.Items), c.Count)
		assert.Equal(t, price, c.TotalPrice)
		assert.Equal(t, duration, c.TotalDuration)
	}

	for _, item := range items {
		check(store.Add(userID, item))
	}
	check(store.Remove(userID, items[1].ServiceID))
	check(store.Add(userID, items[1]))
	check(store.Remove(userID, items[0].ServiceID))
	check(store.Remove(userID, items[3].ServiceID))
	check(store.Clear(userID))
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	store := newTestStore()
	alice := uuid.New()
	bob := uuid.New()

	store.Add(alice, testItem("Haircut", 45, 60))
	c := store.Get(bob)

	assert.Equal(t, 0, c.Count)
}

func TestSnapshotIsDetachedFromStore(t *testing.T) {
	store := newTestStore()
	userID := uuid.New()

	store.Add(userID, testItem("Haircut", 45, 60))
	c := store.Get(userID)
	c.Items[0].Price = 999

	again := store.Get(userID)
	assert.Equal(t, 45.0, again.Items[0].Price)
}
