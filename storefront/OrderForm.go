package storefront

import (
	"homeBakery/entities"
	"homeBakery/models"
)

type OrderForm struct {
	catalog Catalog
	fields  entities.OrderForm
}

func NewOrderForm(catalog Catalog) *OrderForm {
	f := &OrderForm{catalog: catalog}
	f.Reset()
	return f
}

func (f *OrderForm) SetName(name string) {
	f.fields.Name = name
}

func (f *OrderForm) SetPhone(phone string) {
	f.fields.Phone = phone
}

func (f *OrderForm) SetAddress(address string) {
	f.fields.Address = address
}

func (f *OrderForm) SelectDelivery(optionId string) (err error) {
	if _, ok := f.catalog.GetDeliveryOption(optionId); !ok {
		err = models.ErrUnknownDeliveryOption
		return
	}
	f.fields.DeliveryOptionId = optionId
	return
}

// Delivery returns the selected tier. A zero value is returned for an id
// missing from the catalog, which counts as a free delivery in totals.
func (f *OrderForm) Delivery() entities.DeliveryOption {
	opt, _ := f.catalog.GetDeliveryOption(f.fields.DeliveryOptionId)
	return opt
}

func (f *OrderForm) Fields() entities.OrderForm {
	return f.fields
}

// Reset clears every field and selects the free delivery tier.
func (f *OrderForm) Reset() {
	f.fields = entities.OrderForm{DeliveryOptionId: f.catalog.DefaultDeliveryOption().Id}
}

func (f *OrderForm) restore(fields entities.OrderForm) {
	f.fields = fields
	if _, ok := f.catalog.GetDeliveryOption(fields.DeliveryOptionId); !ok {
		f.fields.DeliveryOptionId = f.catalog.DefaultDeliveryOption().Id
	}
}
