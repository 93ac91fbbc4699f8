package catalog

import (
	"strings"

	"github.com/angelmondragon/partsdesk-backend/pkg/money"
)

// Layout names the column positions of a source row.
type Layout struct {
	CategoryCol int
	NameCol     int
	OriginCol   int
	PriceCol    int
}

// DefaultLayout is [category-or-blank, item-name-or-blank, origin, price].
var DefaultLayout = Layout{CategoryCol: 0, NameCol: 1, OriginCol: 2, PriceCol: 3}

// SegmentReport counts what segmentation recovered from. Every product row is
// still emitted; these are tallies, not drops.
type SegmentReport struct {
	Rows           int `json:"rows"`
	MarkerRows     int `json:"marker_rows"`
	Products       int `json:"products"`
	BlankPrice     int `json:"blank_price"`
	InvalidPrice   int `json:"invalid_price"`
	MissingOrigin  int `json:"missing_origin"`
	Uncategorized  int `json:"uncategorized"`
	DuplicateNames int `json:"duplicate_names"`
}

// Segment turns raw rows into products. A row whose name cell is blank is a
// marker row and sets the current category to its label cell (blank resets
// it); any other row is a product in the current category.
func Segment(rows [][]string, layout Layout) ([]Product, SegmentReport) {
	report := SegmentReport{Rows: len(rows)}
	products := make([]Product, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	current := ""

	for i, row := range rows {
		name := cell(row, layout.NameCol)
		if name == "" {
			current = cell(row, layout.CategoryCol)
			report.MarkerRows++
			continue
		}

		rawPrice := cell(row, layout.PriceCol)
		price, ok := money.Parse(rawPrice)
		if !ok {
			if rawPrice == "" {
				report.BlankPrice++
			} else {
				report.InvalidPrice++
			}
		}

		origin := cell(row, layout.OriginCol)
		if origin == "" {
			report.MissingOrigin++
		}
		if current == "" {
			report.Uncategorized++
		}
		if _, dup := seen[name]; dup {
			report.DuplicateNames++
		}
		seen[name] = struct{}{}

		products = append(products, Product{
			ID:       i,
			Name:     name,
			Origin:   origin,
			Category: current,
			Price:    price,
		})
	}

	report.Products = len(products)
	return products, report
}

// SkipHeader drops the first n rows; the source's header is never segmented.
func SkipHeader(rows [][]string, n int) [][]string {
	if n <= 0 {
		return rows
	}
	if n >= len(rows) {
		return nil
	}
	return rows[n:]
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
