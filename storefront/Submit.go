package storefront

import (
	"context"
	"fmt"
	"strings"
	"time"

	"homeBakery/entities"
	"homeBakery/models"
)

// OrderIntake receives a validated order. It is the boundary to whatever
// stores or dispatches orders.
type OrderIntake interface {
	Accept(ctx context.Context, order entities.Order) (orderId int, err error)
}

// Validate checks the cart, then name, then phone, stopping at the first failure.
func (s *Session) Validate() error {
	if s.cart.Len() == 0 {
		return models.ErrEmptyCart
	}
	form := s.form.Fields()
	if strings.TrimSpace(form.Name) == "" {
		return &models.MissingRequiredFieldError{Field: "name"}
	}
	if strings.TrimSpace(form.Phone) == "" {
		return &models.MissingRequiredFieldError{Field: "phone"}
	}
	return nil
}

func (s *Session) composeOrder() entities.Order {
	return entities.Order{
		Date:           time.Now().UTC(),
		Products:       s.cart.Items(),
		Totals:         s.Totals(),
		Form:           s.form.Fields(),
		DeliveryOption: s.form.Delivery(),
	}
}

// Submit hands the order to intake and resets the session. Nothing is
// mutated when validation or intake fails.
func (s *Session) Submit(ctx context.Context, intake OrderIntake) (order entities.Order, err error) {
	if err = s.Validate(); err != nil {
		return
	}
	composed := s.composeOrder()
	composed.OrderId, err = intake.Accept(ctx, composed)
	if err != nil {
		err = fmt.Errorf("order intake: %w", err)
		return
	}
	order = composed
	s.cart.Clear()
	s.form.Reset()
	s.emit(OrderSubmitted)
	s.setCartOpen(false)
	return
}
