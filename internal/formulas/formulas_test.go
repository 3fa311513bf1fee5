package formulas

import (
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/testutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

func newRegistry(t *testing.T) *calculator.Registry {
	t.Helper()
	reg, err := NewRegistry(zap.NewNop())
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

// evaluate runs one calculator and fails the test on any error.
func evaluate(t *testing.T, id string, pairs ...string) *calculator.View {
	t.Helper()
	view, err := newRegistry(t).Evaluate(id, testutil.Raw(pairs...))
	if err != nil {
		t.Fatalf("Evaluate(%s) error = %v", id, err)
	}
	return view
}

func raw(t *testing.T, view *calculator.View, name string) float64 {
	t.Helper()
	v, ok := view.RawValue(name)
	if !ok {
		t.Fatalf("%s: missing output %s", view.Calculator, name)
	}
	return v
}

func display(t *testing.T, view *calculator.View, name string) string {
	t.Helper()
	v, ok := view.Value(name)
	if !ok {
		t.Fatalf("%s: missing output %s", view.Calculator, name)
	}
	return v
}

// expectRejected asserts the submission is rejected with an issue on field.
func expectRejected(t *testing.T, id, field string, pairs ...string) {
	t.Helper()
	view, err := newRegistry(t).Evaluate(id, testutil.Raw(pairs...))
	if view != nil {
		t.Errorf("%s: rejection returned a partial view", id)
	}
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		t.Fatalf("%s: expected validation error, got %v", id, err)
	}
	for _, issue := range vErr.Issues {
		if issue.Field == field {
			return
		}
	}
	t.Errorf("%s: expected an issue on %s, got %v", id, field, vErr.Issues)
}

func TestCatalog(t *testing.T) {
	reg := newRegistry(t)
	if reg.Len() != 29 {
		t.Errorf("expected 29 calculators, got %d", reg.Len())
	}

	for _, spec := range reg.List() {
		t.Run(spec.ID, func(t *testing.T) {
			if spec.Title == "" || spec.Category == "" || spec.Summary == "" {
				t.Error("title, category and summary are required")
			}
			if !strings.HasPrefix(spec.About, "## ") {
				t.Error("about content should open with a heading")
			}
			if len(spec.Outputs) == 0 {
				t.Error("calculator declares no outputs")
			}
		})
	}
}

func TestEmptySubmissionNeverPanics(t *testing.T) {
	reg := newRegistry(t)
	for _, spec := range reg.List() {
		t.Run(spec.ID, func(t *testing.T) {
			view, err := reg.Evaluate(spec.ID, testutil.Raw())
			if err == nil && view == nil {
				t.Fatal("neither a view nor an error was returned")
			}
			var vErr *validation.Error
			if err != nil && !errors.As(err, &vErr) {
				t.Errorf("blank submission should be a validation failure, got %v", err)
			}
		})
	}
}

func TestGarbageSubmissionNeverRendersNonFinite(t *testing.T) {
	reg := newRegistry(t)
	for _, spec := range reg.List() {
		raw := make(map[string]string, len(spec.Fields))
		for _, f := range spec.Fields {
			raw[f.Name] = "0"
		}
		t.Run(spec.ID, func(t *testing.T) {
			_, err := reg.Evaluate(spec.ID, raw)
			if errors.Is(err, calculator.ErrNonFiniteResult) {
				t.Errorf("all-zero inputs produced a non-finite result: %v", err)
			}
		})
	}
}

func TestExtremeMagnitudesAreRejectedNotOverflowed(t *testing.T) {
	baselines := []string{"1", "99.99", "-99.99"}
	extremes := []string{
		"999999999999999",
		"-999999999999999",
		"0.000001",
		"0.0000000001",
		strings.Repeat("9", 308),
		"0",
	}

	reg := newRegistry(t)
	for _, spec := range reg.List() {
		t.Run(spec.ID, func(t *testing.T) {
			for _, base := range baselines {
				for _, extreme := range extremes {
					// Every field extreme at once, then one field at a time.
					assertNoOverflow(t, reg, spec, submission(spec, base, "", extreme))
					for _, f := range spec.Fields {
						assertNoOverflow(t, reg, spec, submission(spec, base, f.Name, extreme))
					}
				}
			}
		})
	}
}

// submission fills every numeric field with base, except target which gets
// value; an empty target sets every numeric field to value. Choice fields
// get their first option.
func submission(spec calculator.Spec, base, target, value string) calculator.RawInput {
	raw := make(calculator.RawInput, len(spec.Fields))
	for _, f := range spec.Fields {
		switch {
		case f.Kind == calculator.Choice:
			raw[f.Name] = f.Choices[0]
		case target == "" || f.Name == target:
			raw[f.Name] = value
		default:
			raw[f.Name] = base
		}
	}
	return raw
}

func assertNoOverflow(t *testing.T, reg *calculator.Registry, spec calculator.Spec, raw calculator.RawInput) {
	t.Helper()
	view, err := reg.Evaluate(spec.ID, raw)
	if err == nil {
		if view == nil {
			t.Fatalf("neither a view nor an error for %v", raw)
		}
		return
	}
	var vErr *validation.Error
	if errors.Is(err, calculator.ErrNonFiniteResult) || !errors.As(err, &vErr) {
		t.Fatalf("inputs %v: expected a validation error, got %v", raw, err)
	}
}
