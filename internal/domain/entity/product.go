// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// Price carries a product's base amount, tax amount and ISO 4217 currency code.
// Amounts are in major units; conversion to minor units happens at the
// payment boundary.
type Price struct {
	Total    float64 `json:"total"`
	Tax      float64 `json:"tax"`
	Currency string  `json:"currency"`
}

// Product is a single entry of the static catalog.
type Product struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

// Catalog is the immutable product table. It is constructed once at process
// start and passed by reference to the components that price carts and
// snapshot orders; it is never mutated afterwards.
type Catalog struct {
	products []Product
	byID     map[int]Product
}

// NewCatalog builds a catalog from a fixed product list.
func NewCatalog(products []Product) *Catalog {
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &Catalog{products: products, byID: byID}
}

// Products returns a copy of the product list.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)

	return out
}

// Lookup returns the product with the given id, if present.
func (c *Catalog) Lookup(id int) (Product, bool) {
	p, ok := c.byID[id]

	return p, ok
}

// DefaultCatalog returns the catalog the service is seeded with at startup.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Product{
		{ID: 298740, Name: "Regular Pizza", Price: Price{Total: 20, Tax: 1.76, Currency: "USD"}},
		{ID: 298741, Name: "Margherita Pizza", Price: Price{Total: 22, Tax: 1.94, Currency: "USD"}},
		{ID: 298742, Name: "Quattro Formaggi Pizza", Price: Price{Total: 24.5, Tax: 2.16, Currency: "USD"}},
		{ID: 298743, Name: "Quattro Stagioni Pizza", Price: Price{Total: 24.5, Tax: 2.16, Currency: "USD"}},
		{ID: 298744, Name: "Slice and Co. Special Pizza", Price: Price{Total: 24.5, Tax: 2.16, Currency: "USD"}},
		{ID: 298745, Name: "Hawaiian Pizza", Price: Price{Total: 24.5, Tax: 2.16, Currency: "USD"}},
		{ID: 298746, Name: "Vegetarian Pizza", Price: Price{Total: 24.5, Tax: 2.16, Currency: "USD"}},
		{ID: 298747, Name: "Meat Lover's Pizza", Price: Price{Total: 24.5, Tax: 2.16, Currency: "USD"}},
	})
}
