package entities

import "time"

type CatalogItem struct {
	Id          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	UnitPrice   int    `json:"unit_price" yaml:"unit_price"`
	ImageRef    string `json:"image" yaml:"image"`
	Description string `json:"description" yaml:"description"`
}

type DeliveryOption struct {
	Id          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Surcharge   int    `json:"surcharge" yaml:"surcharge"`
	Description string `json:"description" yaml:"description"`
}

type Review struct {
	Id       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Rating   int    `json:"rating" yaml:"rating"`
	Text     string `json:"text" yaml:"text"`
	ImageRef string `json:"image" yaml:"image"`
}

type CartLine struct {
	ItemId   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// CartItem is a cart line resolved against the catalog for display.
type CartItem struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	ImageRef  string `json:"image"`
	Quantity  int    `json:"quantity"`
	UnitPrice int    `json:"unit_price"`
	SumPrice  int    `json:"sum_price"`
}

type Totals struct {
	ItemSubtotal   int `json:"item_subtotal"`
	DeliveryCharge int `json:"delivery_charge"`
	GrandTotal     int `json:"grand_total"`
	ItemCount      int `json:"item_count"`
}

type OrderForm struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	DeliveryOptionId string `json:"delivery_option_id"`
}

// OrderFormRequest carries a partial form update; nil fields are left as is.
type OrderFormRequest struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	DeliveryOptionId *string `json:"deliveryOptionId"`
}

type CartRequest struct {
	ItemId   int `json:"itemId"`
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Products []CartItem `json:"products"`
	Totals   Totals     `json:"totals"`
	CartOpen bool       `json:"cart_open"`
	Events   []string   `json:"events,omitempty"`
}

type SessionState struct {
	Lines    []CartLine `json:"lines"`
	Form     OrderForm  `json:"form"`
	CartOpen bool       `json:"cart_open"`
}

// Order is the composed submission handed to order intake.
type Order struct {
	OrderId        int            `json:"order_id,omitempty"`
	Date           time.Time      `json:"date"`
	Status         string         `json:"status,omitempty"`
	Products       []CartItem     `json:"products"`
	Totals         Totals         `json:"totals"`
	Form           OrderForm      `json:"form"`
	DeliveryOption DeliveryOption `json:"delivery_option"`
}

type OrderResponse struct {
	OrderId int      `json:"order_id"`
	Totals  Totals   `json:"totals"`
	Events  []string `json:"events,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
