package catalog

import "github.com/shopspring/decimal"

// Product is one normalized catalog row.
//
// ID is the row's position in the segmented source (header excluded) and is
// the stable key used by the HTTP surface. Name stays the identity used by
// the cart; two rows sharing a name collide there, see Catalog.ByName.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Origin   string          `json:"origin"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}
