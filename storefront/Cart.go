package storefront

import (
	"homeBakery/entities"
	"homeBakery/models"
)

// Cart keeps lines in the order items were first added. Every line has a
// unique item id and a quantity of at least one.
type Cart struct {
	catalog Catalog
	lines   []entities.CartLine
}

func NewCart(catalog Catalog) *Cart {
	return &Cart{catalog: catalog}
}

func (c *Cart) index(itemId int) int {
	for i, l := range c.lines {
		if l.ItemId == itemId {
			return i
		}
	}
	return -1
}

func (c *Cart) AddItem(itemId int) (err error) {
	if _, ok := c.catalog.GetItemById(itemId); !ok {
		err = models.ErrUnknownItem
		return
	}
	quantity := 1
	i := c.index(itemId)
	if i >= 0 {
		quantity = c.lines[i].Quantity + 1
	}
	if !c.fits(itemId, quantity) {
		err = models.ErrQuantityTooLarge
		return
	}
	if i >= 0 {
		c.lines[i].Quantity = quantity
		return
	}
	c.lines = append(c.lines, entities.CartLine{ItemId: itemId, Quantity: 1})
	return
}

// RemoveItem is a no-op for items not in the cart.
func (c *Cart) RemoveItem(itemId int) {
	i := c.index(itemId)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// SetQuantity removes the line when quantity drops to zero or below. Lines
// that do not exist are never created here. A quantity that would push the
// subtotal past models.MaxAmount is rejected and the cart is left as is.
func (c *Cart) SetQuantity(itemId, quantity int) (err error) {
	if quantity <= 0 {
		c.RemoveItem(itemId)
		return
	}
	i := c.index(itemId)
	if i < 0 {
		return
	}
	if !c.fits(itemId, quantity) {
		err = models.ErrQuantityTooLarge
		return
	}
	c.lines[i].Quantity = quantity
	return
}

func (c *Cart) lineTotal(itemId, quantity int) (total int, ok bool) {
	p, _ := c.catalog.GetItemById(itemId)
	if quantity > models.MaxAmount || (p.UnitPrice > 0 && quantity > models.MaxAmount/p.UnitPrice) {
		return
	}
	return quantity * p.UnitPrice, true
}

// fits reports whether the subtotal stays within models.MaxAmount once
// itemId is held at quantity.
func (c *Cart) fits(itemId, quantity int) bool {
	subtotal, seen := 0, false
	for _, l := range c.lines {
		q := l.Quantity
		if l.ItemId == itemId {
			q, seen = quantity, true
		}
		total, ok := c.lineTotal(l.ItemId, q)
		if !ok {
			return false
		}
		if subtotal += total; subtotal > models.MaxAmount {
			return false
		}
	}
	if !seen {
		total, ok := c.lineTotal(itemId, quantity)
		if !ok {
			return false
		}
		subtotal += total
	}
	return subtotal <= models.MaxAmount
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Lines() []entities.CartLine {
	res := make([]entities.CartLine, len(c.lines))
	copy(res, c.lines)
	return res
}

// Items resolves every line against the catalog.
func (c *Cart) Items() []entities.CartItem {
	items := make([]entities.CartItem, 0, len(c.lines))
	for _, l := range c.lines {
		p, _ := c.catalog.GetItemById(l.ItemId)
		items = append(items, entities.CartItem{
			Id:        p.Id,
			Name:      p.Name,
			ImageRef:  p.ImageRef,
			Quantity:  l.Quantity,
			UnitPrice: p.UnitPrice,
			SumPrice:  l.Quantity * p.UnitPrice,
		})
	}
	return items
}

// Totals has no side effects; delivery is the currently selected tier.
func (c *Cart) Totals(delivery entities.DeliveryOption) (t entities.Totals) {
	for _, l := range c.lines {
		p, _ := c.catalog.GetItemById(l.ItemId)
		t.ItemSubtotal += l.Quantity * p.UnitPrice
		t.ItemCount += l.Quantity
	}
	t.DeliveryCharge = delivery.Surcharge
	t.GrandTotal = t.ItemSubtotal + t.DeliveryCharge
	return
}

func (c *Cart) restore(lines []entities.CartLine) {
	c.lines = nil
	for _, l := range lines {
		if _, ok := c.catalog.GetItemById(l.ItemId); !ok || l.Quantity <= 0 || c.index(l.ItemId) >= 0 || !c.fits(l.ItemId, l.Quantity) {
			continue
		}
		c.lines = append(c.lines, l)
	}
}
