// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"testing"

	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

// Raw builds a raw form submission from alternating field names and values.
// It panics on an odd number of arguments since that is always a test bug.
func Raw(pairs ...string) map[string]string {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("testutil.Raw: odd number of arguments (%d)", len(pairs)))
	}
	raw := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		raw[pairs[i]] = pairs[i+1]
	}
	return raw
}

// AssertClose fails the test when got differs from want by more than tol.
func AssertClose(t testing.TB, name string, got, want, tol float64) {
	t.Helper()
	if !mathutil.WithinTolerance(got, want, tol) {
		t.Errorf("%s = %.6f, expected %.6f (tolerance %g)", name, got, want, tol)
	}
}
