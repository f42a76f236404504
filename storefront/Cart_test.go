package storefront

import (
	"math"
	"math/rand"
	"testing"

	"homeBakery/entities"
	"homeBakery/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCatalog struct {
	items   map[int]entities.CatalogItem
	options map[string]entities.DeliveryOption
}

func newTestCatalog() *testCatalog {
	return &testCatalog{
		items: map[int]entities.CatalogItem{
			1: {Id: 1, Name: "honey cake", UnitPrice: 1200},
			2: {Id: 2, Name: "bread", UnitPrice: 150},
			3: {Id: 3, Name: "cookies", UnitPrice: 300},
		},
		options: map[string]entities.DeliveryOption{
			"pickup": {Id: "pickup", Label: "Pickup", Surcharge: 0},
			"city":   {Id: "city", Label: "City", Surcharge: 200},
			"region": {Id: "region", Label: "Region", Surcharge: 500},
		},
	}
}

func (c *testCatalog) GetItemById(id int) (entities.CatalogItem, bool) {
	it, ok := c.items[id]
	return it, ok
}

func (c *testCatalog) GetDeliveryOption(id string) (entities.DeliveryOption, bool) {
	o, ok := c.options[id]
	return o, ok
}

func (c *testCatalog) DefaultDeliveryOption() entities.DeliveryOption {
	return c.options["pickup"]
}

func TestAddSameItemTwiceIncrementsQuantity(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(1))
	require.NoError(t, c.AddItem(1))

	assert.Equal(t, []entities.CartLine{{ItemId: 1, Quantity: 2}}, c.Lines())
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(2))
	require.NoError(t, c.AddItem(1))
	require.NoError(t, c.AddItem(2))
	c.SetQuantity(1, 5)

	assert.Equal(t, []entities.CartLine{{ItemId: 2, Quantity: 2}, {ItemId: 1, Quantity: 5}}, c.Lines())
}

func TestAddUnknownItem(t *testing.T) {
	c := NewCart(newTestCatalog())
	err := c.AddItem(42)

	assert.ErrorIs(t, err, models.ErrUnknownItem)
	assert.ErrorIs(t, err, models.ErrNotFoundError)
	assert.Zero(t, c.Len())
}

func TestRemoveAbsentItemIsNoop(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(1))
	c.RemoveItem(2)

	assert.Equal(t, []entities.CartLine{{ItemId: 1, Quantity: 1}}, c.Lines())
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	build := func() *Cart {
		c := NewCart(newTestCatalog())
		require.NoError(t, c.AddItem(1))
		require.NoError(t, c.AddItem(2))
		require.NoError(t, c.AddItem(3))
		return c
	}
	a, b := build(), build()
	a.SetQuantity(2, 0)
	b.RemoveItem(2)
	assert.Equal(t, b.Lines(), a.Lines())

	c := build()
	c.SetQuantity(2, -3)
	assert.Equal(t, b.Lines(), c.Lines())
}

func TestSetQuantityOnAbsentLineIsNoop(t *testing.T) {
	c := NewCart(newTestCatalog())
	c.SetQuantity(1, 4)
	assert.Zero(t, c.Len())
}

func TestSetQuantityAllowsLargeQuantities(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(3))
	c.SetQuantity(3, 1000)
	assert.Equal(t, 1000, c.Lines()[0].Quantity)
}

func TestSetQuantityRejectsOverflowingSubtotal(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(1))
	require.NoError(t, c.AddItem(2))
	before := c.Lines()

	for _, q := range []int{math.MaxInt64 / 1000, math.MaxInt, models.MaxAmount/1200 + 1} {
		err := c.SetQuantity(1, q)
		assert.ErrorIs(t, err, models.ErrQuantityTooLarge)
		assert.ErrorIs(t, err, models.ErrBadRequest)
		assert.Equal(t, before, c.Lines())
	}

	// the subtotal across lines counts, not just one line
	require.NoError(t, c.SetQuantity(1, models.MaxAmount/1200))
	assert.ErrorIs(t, c.SetQuantity(2, models.MaxAmount/150), models.ErrQuantityTooLarge)

	totals := c.Totals(entities.DeliveryOption{Surcharge: 500})
	assert.Positive(t, totals.GrandTotal)
	assert.LessOrEqual(t, totals.ItemSubtotal, models.MaxAmount)
}

func TestAddItemRejectsOverflowingSubtotal(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(1))
	require.NoError(t, c.SetQuantity(1, models.MaxAmount/1200))

	assert.ErrorIs(t, c.AddItem(1), models.ErrQuantityTooLarge)
	assert.ErrorIs(t, c.AddItem(1), models.ErrQuantityTooLarge)
	assert.Equal(t, models.MaxAmount/1200, c.Lines()[0].Quantity)
	require.NoError(t, c.AddItem(2))
}

func TestClearTwice(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(1))
	c.Clear()
	assert.Zero(t, c.Len())
	c.Clear()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Lines())
}

func TestLinesReturnsCopy(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(1))
	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestTotals(t *testing.T) {
	cat := newTestCatalog()
	c := NewCart(cat)
	require.NoError(t, c.AddItem(1))
	require.NoError(t, c.AddItem(2))
	require.NoError(t, c.AddItem(2))

	assert.Equal(t, []entities.CartLine{{ItemId: 1, Quantity: 1}, {ItemId: 2, Quantity: 2}}, c.Lines())

	city := cat.options["city"]
	first := c.Totals(city)
	assert.Equal(t, entities.Totals{ItemSubtotal: 1500, DeliveryCharge: 200, GrandTotal: 1700, ItemCount: 3}, first)
	assert.Equal(t, first, c.Totals(city))
}

func TestTotalsEmptyCart(t *testing.T) {
	c := NewCart(newTestCatalog())
	assert.Equal(t, entities.Totals{}, c.Totals(entities.DeliveryOption{}))
}

func TestItemsResolvesCatalog(t *testing.T) {
	c := NewCart(newTestCatalog())
	require.NoError(t, c.AddItem(2))
	require.NoError(t, c.AddItem(2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "bread", items[0].Name)
	assert.Equal(t, 300, items[0].SumPrice)
}

func TestCartInvariantsUnderRandomActions(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	c := NewCart(newTestCatalog())
	for i := 0; i < 2000; i++ {
		id := rnd.Intn(5)
		switch rnd.Intn(4) {
		case 0:
			_ = c.AddItem(id)
		case 1:
			c.RemoveItem(id)
		case 2:
			c.SetQuantity(id, rnd.Intn(7)-2)
		case 3:
			if rnd.Intn(20) == 0 {
				c.Clear()
			}
		}

		seen := map[int]bool{}
		for _, l := range c.Lines() {
			require.GreaterOrEqual(t, l.Quantity, 1)
			require.False(t, seen[l.ItemId], "duplicate line for item %d", l.ItemId)
			seen[l.ItemId] = true
		}
	}
}
