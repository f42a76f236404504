package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrBadRequest = errors.New("bad request")
var ErrServerError = errors.New("server error")
var ErrNotFoundError = errors.New("not found")
var ErrNotAllowed = errors.New("not acceptable")

var ErrEmptyCart = fmt.Errorf("%w: cart is empty", ErrBadRequest)
var ErrUnknownItem = fmt.Errorf("%w: unknown catalog item", ErrNotFoundError)
var ErrUnknownDeliveryOption = fmt.Errorf("%w: unknown delivery option", ErrBadRequest)
var ErrQuantityTooLarge = fmt.Errorf("%w: quantity too large", ErrBadRequest)

// MaxAmount bounds prices, surcharges, quantities and the cart subtotal, in
// minor units. Price plus surcharge stays inside a 32-bit INTEGER column.
const MaxAmount = 1_000_000_000

// MissingRequiredFieldError reports a blank mandatory order form field.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return "missing required field: " + e.Field
}

func (e *MissingRequiredFieldError) Unwrap() error {
	return ErrBadRequest
}

type Order_db struct {
	Id               int
	Date             time.Time
	Name             string
	Phone            string
	Address          string
	DeliveryOptionId string
	DeliveryLabel    string
	DeliveryCharge   int
	ItemSubtotal     int
	TotalPrice       int
	Status           string
}

type OrdersProducts_db struct {
	Id        int
	OrderId   int
	ProductId int
	Name      string
	Quantity  int
	Price     int
}
