// Package cart holds the per-session quantity ledger.
package cart

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Line is one touched product: its quantity and the unit price captured the
// first time it was touched.
type Line struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal is quantity times unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PriceLookup resolves the unit price used for a product name.
type PriceLookup interface {
	UnitPrice(name string) (decimal.Decimal, bool)
}

// Totals summarizes the selected lines.
type Totals struct {
	Items int             `json:"items"`
	Units int             `json:"units"`
	Cost  decimal.Decimal `json:"cost"`
}

// Ledger maps product name to quantity in first-touch order. Lines that drop
// back to zero keep their position and price.
type Ledger struct {
	lines []Line
	index map[string]int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{index: map[string]int{}}
}

// Adjust adds delta to the quantity of name and returns the new quantity,
// clamped to [0, math.MaxInt]. The price is only recorded on first touch.
// A change that would leave an untouched product at zero records nothing.
func (l *Ledger) Adjust(name string, price decimal.Decimal, delta int) int {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0
	}
	l.ensure()

	i, ok := l.index[name]
	if !ok {
		qty := clampAdd(0, delta)
		if qty == 0 {
			return 0
		}
		if price.IsNegative() {
			price = decimal.Zero
		}
		l.index[name] = len(l.lines)
		l.lines = append(l.lines, Line{Name: name, Quantity: qty, UnitPrice: price})
		return qty
	}

	l.lines[i].Quantity = clampAdd(l.lines[i].Quantity, delta)
	return l.lines[i].Quantity
}

// Quantity returns the current quantity of name, zero when untouched.
func (l *Ledger) Quantity(name string) int {
	if line, ok := l.line(name); ok {
		return line.Quantity
	}
	return 0
}

// UnitPrice returns the price captured for name.
func (l *Ledger) UnitPrice(name string) (decimal.Decimal, bool) {
	line, ok := l.line(name)
	if !ok {
		return decimal.Zero, false
	}
	return line.UnitPrice, true
}

// SelectedItems returns lines with a positive quantity in first-touch order.
func (l *Ledger) SelectedItems() []Line {
	out := []Line{}
	if l == nil {
		return out
	}
	for _, line := range l.lines {
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

// Lines returns every touched line, zero quantities included.
func (l *Ledger) Lines() []Line {
	if l == nil {
		return []Line{}
	}
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// LineSubtotal is quantity times captured price for name.
func (l *Ledger) LineSubtotal(name string) decimal.Decimal {
	line, ok := l.line(name)
	if !ok {
		return decimal.Zero
	}
	return line.Subtotal()
}

// Totals sums the selected lines.
func (l *Ledger) Totals() Totals {
	totals := Totals{Cost: decimal.Zero}
	for _, line := range l.SelectedItems() {
		totals.Items++
		totals.Units = clampAdd(totals.Units, line.Quantity)
		totals.Cost = totals.Cost.Add(line.Subtotal())
	}
	return totals
}

// Empty reports whether nothing is selected.
func (l *Ledger) Empty() bool {
	return len(l.SelectedItems()) == 0
}

// Reset clears every line.
func (l *Ledger) Reset() {
	l.lines = nil
	l.index = map[string]int{}
}

type ledgerJSON struct {
	Lines []Line `json:"lines"`
}

// MarshalJSON encodes the ledger with its line order.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(ledgerJSON{Lines: l.Lines()})
}

// UnmarshalJSON restores a ledger, folding repeated names into the first line
// and clamping any negative quantity to zero.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var payload ledgerJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	l.Reset()
	for _, line := range payload.Lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			continue
		}
		qty := line.Quantity
		if qty < 0 {
			qty = 0
		}
		if i, ok := l.index[name]; ok {
			l.lines[i].Quantity = clampAdd(l.lines[i].Quantity, qty)
			continue
		}
		price := line.UnitPrice
		if price.IsNegative() {
			price = decimal.Zero
		}
		l.index[name] = len(l.lines)
		l.lines = append(l.lines, Line{Name: name, Quantity: qty, UnitPrice: price})
	}
	return nil
}

func (l *Ledger) line(name string) (Line, bool) {
	if l == nil {
		return Line{}, false
	}
	i, ok := l.index[strings.TrimSpace(name)]
	if !ok {
		return Line{}, false
	}
	return l.lines[i], true
}

func (l *Ledger) ensure() {
	if l.index == nil {
		l.index = make(map[string]int, len(l.lines))
		for i, line := range l.lines {
			l.index[line.Name] = i
		}
	}
}

// clampAdd returns qty+delta saturated to [0, math.MaxInt].
func clampAdd(qty, delta int) int {
	if delta > 0 && qty > math.MaxInt-delta {
		return math.MaxInt
	}
	sum := qty + delta
	if sum < 0 {
		return 0
	}
	return sum
}
