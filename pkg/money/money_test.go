package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: "123", want: "123", ok: true},
		{raw: " 45.5 ", want: "45.5", ok: true},
		{raw: "", want: "0", ok: false},
		{raw: "   ", want: "0", ok: false},
		{raw: "abc", want: "0", ok: false},
		{raw: "-10", want: "0", ok: false},
		{raw: "12abc", want: "0", ok: false},
		{raw: "١٢٣", want: "123", ok: true},
		{raw: " ٤٥٫٥ ", want: "45.5", ok: true},
		{raw: "۷۵۰", want: "750", ok: true},
		{raw: "١٢3", want: "123", ok: true},
		{raw: "١٢س", want: "0", ok: false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.raw)
		if ok != tt.ok {
			t.Fatalf("Parse(%q) ok=%v want %v", tt.raw, ok, tt.ok)
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("Parse(%q)=%s want %s", tt.raw, got, tt.want)
		}
	}
}

func TestPolicyFor(t *testing.T) {
	whole := PolicyFor(decimal.NewFromInt(50), decimal.NewFromInt(30))
	if whole != Integral {
		t.Fatalf("expected integral policy")
	}
	if got := whole.Format(decimal.NewFromInt(130)); got != "130" {
		t.Fatalf("unexpected integral render %q", got)
	}

	mixed := PolicyFor(decimal.NewFromInt(50), decimal.RequireFromString("12.5"))
	if mixed != Fixed2 {
		t.Fatalf("expected fixed policy")
	}
	if got := mixed.Format(decimal.NewFromInt(50)); got != "50.00" {
		t.Fatalf("unexpected fixed render %q", got)
	}
	if got := mixed.Format(decimal.RequireFromString("12.5")); got != "12.50" {
		t.Fatalf("unexpected fixed render %q", got)
	}

	if PolicyFor() != Integral {
		t.Fatalf("empty input should be integral")
	}
}

func TestDisplayRounds(t *testing.T) {
	if got := Display(decimal.RequireFromString("99.5")); got != "100" {
		t.Fatalf("unexpected display %q", got)
	}
}
