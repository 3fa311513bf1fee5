package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/normalize"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// RawInput maps field names to the text the user entered.
type RawInput map[string]string

// Inputs holds normalized field values. Every number in it is finite and
// no larger in magnitude than constants.MaxInputMagnitude.
type Inputs struct {
	numbers   map[string]float64
	lists     map[string][]float64
	choices   map[string]string
	defaulted []string
}

// Number returns a numeric field, or zero when it was omitted.
func (in Inputs) Number(name string) float64 {
	return in.numbers[name]
}

// List returns a list field's values.
func (in Inputs) List(name string) []float64 {
	return in.lists[name]
}

// Choice returns the canonical option selected for a choice field.
func (in Inputs) Choice(name string) string {
	return in.choices[name]
}

// Has reports whether the field carries a value after normalization.
// Only Optional fields can be absent.
func (in Inputs) Has(name string) bool {
	if _, ok := in.numbers[name]; ok {
		return true
	}
	if _, ok := in.lists[name]; ok {
		return true
	}
	_, ok := in.choices[name]
	return ok
}

// Defaulted lists the Permissive fields whose value came from the default
// rather than from the user.
func (in Inputs) Defaulted() []string {
	return append([]string(nil), in.defaulted...)
}

// Normalize applies each field's kind and policy to the raw submission.
// Unknown keys are ignored. Strict failures are collected into a single
// *validation.Error.
func Normalize(spec Spec, raw RawInput) (Inputs, error) {
	in := Inputs{
		numbers: make(map[string]float64),
		lists:   make(map[string][]float64),
		choices: make(map[string]string),
	}
	var check validation.Checker

	for _, field := range spec.Fields {
		text := raw[field.Name]
		switch field.Kind {
		case Number:
			in.normalizeNumber(field, text, &check)
		case List:
			in.normalizeList(field, text, &check)
		case Choice:
			in.normalizeChoice(field, text, &check)
		}
	}

	if err := check.Err(); err != nil {
		return Inputs{}, err
	}
	return in, nil
}

var magnitudeLimit = strconv.FormatFloat(constants.MaxInputMagnitude, 'f', -1, 64)

// inRange flushes values below the input resolution to zero and reports
// whether the result is within the magnitude cap.
func inRange(value float64) (float64, bool) {
	if math.Abs(value) < constants.InputResolution {
		return 0, true
	}
	return value, math.Abs(value) <= constants.MaxInputMagnitude
}

func (in *Inputs) normalizeNumber(field Field, text string, check *validation.Checker) {
	if value, ok := normalize.Parse(text); ok {
		value, ok = inRange(value)
		if !ok {
			check.Addf(field.Name, "must not exceed %s in magnitude", magnitudeLimit)
			return
		}
		in.numbers[field.Name] = value
		return
	}

	switch field.Policy {
	case Strict:
		if normalize.IsBlank(text) {
			check.Add(field.Name, "is required")
		} else {
			check.Add(field.Name, "must be a number")
		}
	case Permissive:
		in.numbers[field.Name] = field.Default
		in.defaulted = append(in.defaulted, field.Name)
	}
}

func (in *Inputs) normalizeList(field Field, text string, check *validation.Checker) {
	items := normalize.Items(text)
	values := make([]float64, 0, len(items))
	substituted := false

	for i, item := range items {
		value, ok := normalize.Parse(item)
		if ok {
			if value, ok = inRange(value); !ok {
				check.Addf(field.Name, "item %d must not exceed %s in magnitude", i+1, magnitudeLimit)
				continue
			}
			values = append(values, value)
			continue
		}
		switch field.Policy {
		case Strict:
			check.Addf(field.Name, "item %d (%q) is not a number", i+1, item)
		case Permissive:
			values = append(values, field.Default)
			substituted = true
		}
	}

	if len(values) == 0 {
		switch field.Policy {
		case Strict:
			if len(items) == 0 {
				check.Add(field.Name, "requires at least one value")
			}
		case Permissive:
			in.lists[field.Name] = []float64{}
			in.defaulted = append(in.defaulted, field.Name)
		}
		return
	}

	in.lists[field.Name] = values
	if substituted {
		in.defaulted = append(in.defaulted, field.Name)
	}
}

func (in *Inputs) normalizeChoice(field Field, text string, check *validation.Checker) {
	if choice, ok := matchChoice(field.Choices, text); ok {
		in.choices[field.Name] = choice
		return
	}

	switch field.Policy {
	case Strict:
		if normalize.IsBlank(text) {
			check.Add(field.Name, "is required")
		} else {
			check.Addf(field.Name, "must be one of %s", strings.Join(field.Choices, ", "))
		}
	case Permissive:
		in.choices[field.Name] = field.DefaultChoice
		in.defaulted = append(in.defaulted, field.Name)
	}
}

func matchChoice(choices []string, text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}
	for _, choice := range choices {
		if strings.EqualFold(choice, trimmed) {
			return choice, true
		}
	}
	return "", false
}
