package storefront

import (
	"homeBakery/entities"
)

// Session owns one cart and one order form. Presentation code observes
// visibility changes through Subscribe instead of reading hidden state.
type Session struct {
	catalog   Catalog
	cart      *Cart
	form      *OrderForm
	cartOpen  bool
	listeners []Listener
}

func NewSession(catalog Catalog) *Session {
	return &Session{
		catalog: catalog,
		cart:    NewCart(catalog),
		form:    NewOrderForm(catalog),
	}
}

// RestoreSession rebuilds a session from a snapshot. Lines or delivery
// ids the catalog no longer knows are dropped.
func RestoreSession(catalog Catalog, state entities.SessionState) *Session {
	s := NewSession(catalog)
	s.cart.restore(state.Lines)
	s.form.restore(state.Form)
	s.cartOpen = state.CartOpen
	return s
}

func (s *Session) Snapshot() entities.SessionState {
	return entities.SessionState{
		Lines:    s.cart.Lines(),
		Form:     s.form.Fields(),
		CartOpen: s.cartOpen,
	}
}

func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Session) emit(e Event) {
	for _, l := range s.listeners {
		l(e)
	}
}

func (s *Session) setCartOpen(open bool) {
	s.cartOpen = open
	if open {
		s.emit(CartOpened)
	} else {
		s.emit(CartClosed)
	}
}

func (s *Session) AddItem(itemId int) (err error) {
	if err = s.cart.AddItem(itemId); err != nil {
		return
	}
	s.setCartOpen(true)
	return
}

func (s *Session) RemoveItem(itemId int) {
	s.cart.RemoveItem(itemId)
}

func (s *Session) SetQuantity(itemId, quantity int) error {
	return s.cart.SetQuantity(itemId, quantity)
}

func (s *Session) ClearCart() {
	s.cart.Clear()
}

func (s *Session) OpenCart() {
	s.setCartOpen(true)
}

func (s *Session) CloseCart() {
	s.setCartOpen(false)
}

func (s *Session) CartOpen() bool {
	return s.cartOpen
}

func (s *Session) SetName(name string) {
	s.form.SetName(name)
}

func (s *Session) SetPhone(phone string) {
	s.form.SetPhone(phone)
}

func (s *Session) SetAddress(address string) {
	s.form.SetAddress(address)
}

func (s *Session) SelectDelivery(optionId string) error {
	return s.form.SelectDelivery(optionId)
}

func (s *Session) Form() entities.OrderForm {
	return s.form.Fields()
}

func (s *Session) Lines() []entities.CartLine {
	return s.cart.Lines()
}

func (s *Session) Totals() entities.Totals {
	return s.cart.Totals(s.form.Delivery())
}

func (s *Session) View() entities.CartResponse {
	return entities.CartResponse{
		Products: s.cart.Items(),
		Totals:   s.Totals(),
		CartOpen: s.cartOpen,
	}
}
