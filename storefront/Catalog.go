// Package storefront holds the cart and order state of a single shopper
// session. Nothing in it is safe for concurrent use: a Session belongs to
// exactly one actor for its whole lifetime.
package storefront

import "homeBakery/entities"

// Catalog is the read-only reference data a Session resolves ids against.
type Catalog interface {
	GetItemById(id int) (item entities.CatalogItem, exists bool)
	GetDeliveryOption(id string) (opt entities.DeliveryOption, exists bool)
	DefaultDeliveryOption() entities.DeliveryOption
}
