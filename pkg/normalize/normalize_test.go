package normalize

import (
	"math"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/format"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		ok       bool
	}{
		{"Currency with separators", "$12,345.67", 12345.67, true},
		{"Thousand suffix", "10k", 10000, true},
		{"Uppercase thousand suffix", "2.5K", 2500, true},
		{"Million suffix", "1.2M", 1200000, true},
		{"Billion suffix with space", "3 b", 3e9, true},
		{"Noise around number", "abc123def", 123, true},
		{"Empty", "", 0, false},
		{"Whitespace", "   ", 0, false},
		{"No digits", "xyz", 0, false},
		{"First match wins", "12 and 34", 12, true},
		{"Negative", "-45.5", -45.5, true},
		{"Negative currency", "-$1,234.57", -1234.57, true},
		{"Percent sign", "3.5%", 3.5, true},
		{"Leading decimal point", ".75", 0.75, true},
		{"Suffix applied once", "10kk", 10, true},
		{"Letter word is not a suffix", "5 bananas", 5, true},
		{"Euro symbol", "€900", 900, true},
		{"Exponent notation is not followed", "1e999", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, expected %v", tt.input, ok, tt.ok)
			}
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Parse(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseRejectsOverflow(t *testing.T) {
	huge := "9"
	for i := 0; i < 400; i++ {
		huge += "9"
	}
	if _, ok := Parse(huge); ok {
		t.Fatal("expected an overflowing literal to be reported as not found")
	}
}

func TestParseOr(t *testing.T) {
	if got := ParseOr("n/a", 7); got != 7 {
		t.Errorf("ParseOr fallback = %v, expected 7", got)
	}
	if got := ParseOr("$5", 7); got != 5 {
		t.Errorf("ParseOr value = %v, expected 5", got)
	}
}

func TestItems(t *testing.T) {
	items := Items(" 15,000; 15000 |\n\n-2k ;; ")
	expected := []string{"15,000", "15000", "-2k"}
	if len(items) != len(expected) {
		t.Fatalf("Items() = %v, expected %v", items, expected)
	}
	for i := range expected {
		if items[i] != expected[i] {
			t.Errorf("Items()[%d] = %q, expected %q", i, items[i], expected[i])
		}
	}
	if len(Items("")) != 0 {
		t.Error("expected no items for empty input")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	values := []float64{0, 1, 12.5, 1077.71, 12345.67, -9876.54, 1234567.891, 0.004}

	for _, value := range values {
		for _, rendered := range []string{format.Currency(value), format.Decimal(value, 2), format.Percent(value, 2)} {
			parsed, ok := Parse(rendered)
			if !ok {
				t.Fatalf("Parse(%q) found no number", rendered)
			}
			if math.Abs(parsed-value) > 0.005+1e-9 {
				t.Errorf("round trip of %v via %q = %v", value, rendered, parsed)
			}
		}
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank(" \t\n") {
		t.Error("expected whitespace to be blank")
	}
	if IsBlank("0") {
		t.Error("expected 0 to be non-blank")
	}
}
