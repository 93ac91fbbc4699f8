package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AllOrigins is the sentinel that disables origin filtering.
const AllOrigins = "ALL"

// allOriginAliases are the labels the storefront UI has historically sent for
// "every origin".
var allOriginAliases = []string{AllOrigins, "الكل"}

// IsAllOrigins reports whether origin disables the origin filter.
func IsAllOrigins(origin string) bool {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return true
	}
	for _, alias := range allOriginAliases {
		if strings.EqualFold(origin, alias) {
			return true
		}
	}
	return false
}

// Query combines a search string and an origin filter with logical AND.
type Query struct {
	Search string
	Origin string
}

type indexed struct {
	product  Product
	foldName string
}

// Catalog is an immutable ordered product list built once per fetch.
type Catalog struct {
	items      []indexed
	byName     map[string]int
	byID       map[int]int
	categories []string
	locale     language.Tag
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithLocale sets the collation used by DistinctOrigins.
func WithLocale(tag language.Tag) Option {
	return func(c *Catalog) {
		c.locale = tag
	}
}

// New indexes products, keeping their order. When names repeat, ByName
// resolves to the later row.
func New(products []Product, opts ...Option) *Catalog {
	c := &Catalog{
		items:  make([]indexed, 0, len(products)),
		byName: make(map[string]int, len(products)),
		byID:   make(map[int]int, len(products)),
		locale: language.Arabic,
	}
	for _, opt := range opts {
		opt(c)
	}

	fold := cases.Fold()
	seenCategory := map[string]struct{}{}
	for i, p := range products {
		c.items = append(c.items, indexed{
			product:  p,
			foldName: fold.String(p.Name),
		})
		c.byName[p.Name] = i
		c.byID[p.ID] = i
		if _, ok := seenCategory[p.Category]; !ok && p.Category != "" {
			seenCategory[p.Category] = struct{}{}
			c.categories = append(c.categories, p.Category)
		}
	}
	return c
}

// Empty returns a catalog with no products.
func Empty() *Catalog {
	return New(nil)
}

// Len is the number of products.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Products returns every product in source order.
func (c *Catalog) Products() []Product {
	return c.collect(func(indexed) bool { return true })
}

// ByID looks a product up by its row id.
func (c *Catalog) ByID(id int) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.items[i].product, true
}

// ByName looks a product up by name; the last row with that name wins.
func (c *Catalog) ByName(name string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return Product{}, false
	}
	return c.items[i].product, true
}

// Categories lists non-empty categories in order of first appearance.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Search returns products whose name contains query, ignoring case. Origins
// are narrowed with FilterByOrigin, not searched.
// An empty query returns the whole catalog.
func (c *Catalog) Search(query string) []Product {
	return c.Find(Query{Search: query})
}

// FilterByOrigin returns products with exactly this origin. The AllOrigins
// sentinel, or a blank value, disables the filter.
func (c *Catalog) FilterByOrigin(origin string) []Product {
	return c.Find(Query{Origin: origin})
}

// Find applies search and origin filter together, preserving source order.
func (c *Catalog) Find(q Query) []Product {
	needle := cases.Fold().String(strings.TrimSpace(q.Search))
	origin := strings.TrimSpace(q.Origin)
	filterOrigin := !IsAllOrigins(origin)

	return c.collect(func(it indexed) bool {
		if filterOrigin && it.product.Origin != origin {
			return false
		}
		if needle == "" {
			return true
		}
		return strings.Contains(it.foldName, needle)
	})
}

// DistinctOrigins lists every non-empty origin once, collated for the
// catalog's locale.
func (c *Catalog) DistinctOrigins() []string {
	if c == nil {
		return nil
	}
	seen := map[string]struct{}{}
	origins := []string{}
	for _, it := range c.items {
		o := it.product.Origin
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		origins = append(origins, o)
	}
	collate.New(c.locale).SortStrings(origins)
	return origins
}

// DuplicateNames lists names carried by more than one row, in first-seen order.
func (c *Catalog) DuplicateNames() []string {
	if c == nil {
		return nil
	}
	counts := map[string]int{}
	order := []string{}
	for _, it := range c.items {
		name := it.product.Name
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}
	out := []string{}
	for _, name := range order {
		if counts[name] > 1 {
			out = append(out, name)
		}
	}
	return out
}

func (c *Catalog) collect(keep func(indexed) bool) []Product {
	if c == nil {
		return []Product{}
	}
	out := make([]Product, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it.product)
		}
	}
	return out
}
