package storefront

import (
	"time"

	"github.com/angelmondragon/partsdesk-backend/internal/catalog"
	"github.com/angelmondragon/partsdesk-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// UnavailableMessage is shown when there is no catalog to browse.
const UnavailableMessage = "لا توجد بيانات متاحة حالياً. يرجى المحاولة لاحقاً."

// NoMatchesMessage is shown when the search and filter leave nothing.
const NoMatchesMessage = "🔍 لا توجد منتجات تطابق البحث المحدد"

// ProductRowDTO is one product row of a page, with the session's quantity.
type ProductRowDTO struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Origin          string          `json:"origin"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	PriceDisplay    string          `json:"price_display"`
	Quantity        int             `json:"quantity"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	SubtotalDisplay string          `json:"subtotal_display"`
}

// SectionDTO groups consecutive page rows under a category header. The
// first section's category is empty when the page opens with rows that
// have none.
type SectionDTO struct {
	Category string          `json:"category"`
	Products []ProductRowDTO `json:"products"`
}

// NavLinkDTO is one pagination button. Page is 1-based.
type NavLinkDTO struct {
	Page     int  `json:"page"`
	Disabled bool `json:"disabled"`
}

// NavigationDTO carries the first/previous/next/last buttons.
type NavigationDTO struct {
	First NavLinkDTO `json:"first"`
	Prev  NavLinkDTO `json:"prev"`
	Next  NavLinkDTO `json:"next"`
	Last  NavLinkDTO `json:"last"`
}

// CatalogViewDTO is the page a session currently sees.
type CatalogViewDTO struct {
	Available  bool           `json:"available"`
	Message    string         `json:"message,omitempty"`
	Search     string         `json:"search"`
	Origin     string         `json:"origin"`
	Origins    []string       `json:"origins"`
	Sections   []SectionDTO   `json:"sections"`
	Page       types.PageMeta `json:"page"`
	Navigation NavigationDTO  `json:"navigation"`
	Summary    string         `json:"summary"`
	Cart       CartDTO        `json:"cart"`
}

// OriginsDTO lists the origin filter choices, "all" first.
type OriginsDTO struct {
	All     string   `json:"all"`
	Origins []string `json:"origins"`
}

// CartLineDTO is a selected cart line.
type CartLineDTO struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartDTO is the cart sidebar: selected lines and totals. Display values
// are rounded to whole units.
type CartDTO struct {
	Lines       []CartLineDTO   `json:"lines"`
	Items       int             `json:"items"`
	Units       int             `json:"units"`
	Cost        decimal.Decimal `json:"cost"`
	CostDisplay string          `json:"cost_display"`
	Currency    string          `json:"currency"`
	Quantity    *int            `json:"quantity,omitempty"`
}

// OrderDTO is the checkout result.
type OrderDTO struct {
	Message string  `json:"message"`
	Link    string  `json:"link"`
	Cart    CartDTO `json:"cart"`
}

// CatalogStatusDTO reports the outcome of a catalog reload.
type CatalogStatusDTO struct {
	Available  bool                  `json:"available"`
	Stale      bool                  `json:"stale"`
	Products   int                   `json:"products"`
	Categories []string              `json:"categories"`
	FetchedAt  *time.Time            `json:"fetched_at,omitempty"`
	Error      string                `json:"error,omitempty"`
	Report     catalog.SegmentReport `json:"report"`
}
