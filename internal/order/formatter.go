// Package order renders a cart into the checkout message and its deep link.
package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/partsdesk-backend/internal/cart"
	"github.com/angelmondragon/partsdesk-backend/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	defaultTimeLayout = "2006-01-02 15:04:05"
	separatorWidth    = 30
)

// Labels holds the fixed text of the order message.
type Labels struct {
	BusinessName  string
	OrderDate     string
	Details       string
	Quantity      string
	UnitPrice     string
	LineTotal     string
	Summary       string
	DistinctItems string
	TotalUnits    string
	GrandTotal    string
	ThankYou      string
	FollowUp      string
	Currency      string
}

// DefaultLabels is the Arabic message the shop sends.
var DefaultLabels = Labels{
	BusinessName:  "شركة المهندس لقطع غيار السيارات",
	OrderDate:     "تاريخ الطلب:",
	Details:       "تفاصيل الطلبية:",
	Quantity:      "الكمية:",
	UnitPrice:     "السعر:",
	LineTotal:     "الإجمالي:",
	Summary:       "ملخص الطلبية:",
	DistinctItems: "عدد الأصناف:",
	TotalUnits:    "إجمالي القطع:",
	GrandTotal:    "الإجمالي النهائي:",
	ThankYou:      "شكراً لثقتكم بنا! 🙏",
	FollowUp:      "سيتم التواصل معكم قريباً لتأكيد الطلبية.",
	Currency:      "ج.م",
}

// Options configures a Formatter. Zero fields fall back to DefaultLabels,
// the default layout and UTC.
type Options struct {
	Labels     Labels
	TimeLayout string
	Location   *time.Location
}

// Formatter renders order messages. It holds no state between calls.
type Formatter struct {
	labels Labels
	layout string
	loc    *time.Location
}

// NewFormatter builds a Formatter.
func NewFormatter(opts Options) *Formatter {
	labels := DefaultLabels
	overrideLabels(&labels, opts.Labels)
	layout := opts.TimeLayout
	if strings.TrimSpace(layout) == "" {
		layout = defaultTimeLayout
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{labels: labels, layout: layout, loc: loc}
}

// Format renders items in the given order. Unit prices come from prices,
// falling back to the line's own price when the lookup has no entry. Lines
// with a non-positive quantity are skipped; with nothing left the result is
// the empty string.
func (f *Formatter) Format(items []cart.Line, prices cart.PriceLookup, at time.Time) string {
	type row struct {
		name  string
		qty   int
		price decimal.Decimal
	}
	rows := make([]row, 0, len(items))
	unitPrices := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		price := item.UnitPrice
		if prices != nil {
			if p, ok := prices.UnitPrice(item.Name); ok {
				price = p
			}
		}
		rows = append(rows, row{name: item.Name, qty: item.Quantity, price: price})
		unitPrices = append(unitPrices, price)
	}
	if len(rows) == 0 {
		return ""
	}

	policy := money.PolicyFor(unitPrices...)
	l := f.labels
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("🌟 *%s* 🌟", l.BusinessName)
	line("")
	line("📅 *%s* %s", l.OrderDate, at.In(f.loc).Format(f.layout))
	line("")
	line("📋 *%s*", l.Details)
	line("")

	units := 0
	total := decimal.Zero
	for _, r := range rows {
		subtotal := r.price.Mul(decimal.NewFromInt(int64(r.qty)))
		units += r.qty
		total = total.Add(subtotal)

		line("🔹 *%s*", r.name)
		line("   %s %d", l.Quantity, r.qty)
		line("   %s %s %s", l.UnitPrice, policy.Format(r.price), l.Currency)
		line("   %s %s %s", l.LineTotal, policy.Format(subtotal), l.Currency)
		line("")
	}

	line("%s", strings.Repeat("─", separatorWidth))
	line("📊 *%s*", l.Summary)
	line("   📦 %s %d", l.DistinctItems, len(rows))
	line("   🛒 %s %d", l.TotalUnits, units)
	line("   💰 %s *%s %s*", l.GrandTotal, money.Fixed2.Format(total), l.Currency)
	line("")
	line("%s", l.ThankYou)
	b.WriteString(l.FollowUp)

	return b.String()
}

func overrideLabels(dst *Labels, src Labels) {
	set := func(target *string, value string) {
		if strings.TrimSpace(value) != "" {
			*target = value
		}
	}
	set(&dst.BusinessName, src.BusinessName)
	set(&dst.OrderDate, src.OrderDate)
	set(&dst.Details, src.Details)
	set(&dst.Quantity, src.Quantity)
	set(&dst.UnitPrice, src.UnitPrice)
	set(&dst.LineTotal, src.LineTotal)
	set(&dst.Summary, src.Summary)
	set(&dst.DistinctItems, src.DistinctItems)
	set(&dst.TotalUnits, src.TotalUnits)
	set(&dst.GrandTotal, src.GrandTotal)
	set(&dst.ThankYou, src.ThankYou)
	set(&dst.FollowUp, src.FollowUp)
	set(&dst.Currency, src.Currency)
}
