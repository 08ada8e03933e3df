package entity

import "time"

// LineItem is one product entry of a cart: a catalog product id and a
// positive quantity. A cart holds at most one line item per product.
type LineItem struct {
	ProductID int `json:"id"`
	Quantity  int `json:"quantity"`
}

// Cart is a mutable set of line items with derived payment totals. Carts are
// created empty, receive an expiry mirroring the session lifetime, and are
// removed on successful checkout or by the garbage collector.
type Cart struct {
	ID        string     `json:"cartId"`
	UserID    string     `json:"userId"`
	Items     []LineItem `json:"products"`
	Payment   Price      `json:"payment"`
	ExpiresAt time.Time  `json:"expires"`
}

// Expired reports whether the cart has outlived its expiry at the given instant.
func (c *Cart) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// MergeItem folds a line item into the cart: an existing entry for the same
// product has its quantity incremented, otherwise the item is appended.
func (c *Cart) MergeItem(item LineItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity

			return
		}
	}
	c.Items = append(c.Items, item)
}

// RecomputeTotals rebuilds the payment totals from scratch over the current
// line items at current catalog prices. Totals are never adjusted
// incrementally; a full recomputation avoids drift.
func (c *Cart) RecomputeTotals(catalog *Catalog) {
	var total, tax float64
	for _, item := range c.Items {
		product, ok := catalog.Lookup(item.ProductID)
		if !ok {
			continue
		}
		total += product.Price.Total * float64(item.Quantity)
		tax += product.Price.Tax * float64(item.Quantity)
	}
	c.Payment.Total = total
	c.Payment.Tax = tax
}
