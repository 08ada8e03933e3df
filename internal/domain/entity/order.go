package entity

import "time"

// OrderItem is a priced snapshot of one cart line item at checkout time.
// Later catalog price changes must not alter historical orders, so the name
// and unit price are copied rather than referenced.
type OrderItem struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Price     Price  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order is the immutable record of a completed checkout. The human-readable
// order number (random code plus timestamp) serves as its document key; the
// store's exclusive create is the uniqueness backstop.
type Order struct {
	Number    string      `json:"number"`
	Customer  string      `json:"customer"`
	ChargeID  string      `json:"chargeId"`
	Items     []OrderItem `json:"items"`
	Totals    Price       `json:"totals"`
	CreatedAt time.Time   `json:"datetime"`
}
