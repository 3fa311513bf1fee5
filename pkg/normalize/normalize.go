// Package normalize turns free-form user text into numbers.
//
// Parse never fails loudly: it either finds a finite number or reports that
// none was found, and the caller decides what a missing number means.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

var numberPattern = regexp.MustCompile(`-?(?:\d+(?:\.\d+)?|\.\d+)`)

// separators are removed before matching. Commas are thousands separators,
// never decimal marks or list delimiters.
var separators = strings.NewReplacer(
	",", "",
	"$", "",
	"€", "",
	"£", "",
	"¥", "",
)

var magnitudes = map[rune]float64{
	'k': 1e3,
	'm': 1e6,
	'b': 1e9,
}

// Parse extracts the first decimal number in text, scaled by an optional
// magnitude suffix (k, m, b; case-insensitive) directly following it.
// The boolean is false when no finite number can be found.
func Parse(text string) (float64, bool) {
	cleaned := separators.Replace(text)

	loc := numberPattern.FindStringIndex(cleaned)
	if loc == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned[loc[0]:loc[1]], 64)
	if err != nil || !mathutil.IsFinite(value) {
		return 0, false
	}

	value *= magnitude(cleaned[loc[1]:])
	if !mathutil.IsFinite(value) {
		return 0, false
	}
	return value, true
}

// ParseOr is Parse with a fallback for text that holds no number.
func ParseOr(text string, fallback float64) float64 {
	if value, ok := Parse(text); ok {
		return value
	}
	return fallback
}

// IsBlank reports whether text carries nothing but whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Items splits a list entry into its raw items. Items are separated by
// semicolons, pipes, or newlines; empty items are dropped.
func Items(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == '|' || r == '\n' || r == '\r'
	})

	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// magnitude inspects the text right after a number. A suffix letter only
// counts when it is not the start of a longer word, so "10k" scales while
// "123def" does not.
func magnitude(rest string) float64 {
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return 1
	}

	r, size := utf8.DecodeRuneInString(rest)
	multiplier, ok := magnitudes[unicode.ToLower(r)]
	if !ok {
		return 1
	}

	if next, _ := utf8.DecodeRuneInString(rest[size:]); unicode.IsLetter(next) {
		return 1
	}
	return multiplier
}
