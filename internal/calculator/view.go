package calculator

// OutputValue is one rendered output. Raw is nil for text outputs.
type OutputValue struct {
	Name  string   `json:"name"`
	Label string   `json:"label"`
	Value string   `json:"value"`
	Raw   *float64 `json:"raw,omitempty"`
}

// View is the rendered outcome of one evaluation, ready for the
// presentation shell. Outputs follow the calculator's declaration order.
type View struct {
	Calculator string        `json:"calculator"`
	Outputs    []OutputValue `json:"outputs"`
	Label      string        `json:"label,omitempty"`
	Status     Status        `json:"status,omitempty"`
	Defaulted  []string      `json:"defaulted,omitempty"`
}

// Value returns the display string of the named output.
func (v *View) Value(name string) (string, bool) {
	for _, out := range v.Outputs {
		if out.Name == name {
			return out.Value, true
		}
	}
	return "", false
}

// RawValue returns the unformatted number behind the named output.
func (v *View) RawValue(name string) (float64, bool) {
	for _, out := range v.Outputs {
		if out.Name == name && out.Raw != nil {
			return *out.Raw, true
		}
	}
	return 0, false
}
