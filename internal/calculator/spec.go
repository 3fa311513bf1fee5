// Package calculator defines the shape every calculator shares: the fields
// it reads, how blank or malformed entries are treated, the outputs it
// produces, and a registry that runs submissions through normalization,
// evaluation and formatting.
package calculator

// Kind describes how a field's raw text is interpreted.
type Kind int

const (
	// Number is a single numeric entry.
	Number Kind = iota
	// List is a sequence of numbers separated by semicolons, pipes, or newlines.
	List
	// Choice is one of a fixed set of options.
	Choice
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case List:
		return "list"
	case Choice:
		return "choice"
	}
	return "unknown"
}

// Policy decides what a blank or unparseable entry means for a field.
type Policy int

const (
	// Strict rejects the submission.
	Strict Policy = iota
	// Permissive substitutes the field's default (zero unless declared).
	Permissive
	// Optional leaves the field out; Inputs.Has reports false.
	Optional
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Permissive:
		return "permissive"
	case Optional:
		return "optional"
	}
	return "unknown"
}

// Field declares one form input.
type Field struct {
	Name          string
	Label         string
	Kind          Kind
	Policy        Policy
	Default       float64
	DefaultChoice string
	Choices       []string
	Help          string
}

// Format selects how an output value is rendered.
type Format int

const (
	Currency Format = iota
	Percent
	Ratio
	Decimal
	Units
	Count
	Years
	Text
	Flag
)

func (f Format) String() string {
	switch f {
	case Currency:
		return "currency"
	case Percent:
		return "percent"
	case Ratio:
		return "ratio"
	case Decimal:
		return "decimal"
	case Units:
		return "units"
	case Count:
		return "count"
	case Years:
		return "years"
	case Text:
		return "text"
	case Flag:
		return "flag"
	}
	return "unknown"
}

// NoDecimals as an Output's Decimals renders a whole number.
const NoDecimals = -1

// Output declares one displayed result. Decimals applies to Percent, Ratio,
// Decimal and Years; zero selects the format's default precision.
type Output struct {
	Name     string
	Label    string
	Format   Format
	Decimals int
}

// Status is a qualitative flag the presentation shell can style.
type Status string

const (
	StatusNone    Status = ""
	StatusHealthy Status = "healthy"
	StatusWarning Status = "warning"
	StatusNeutral Status = "neutral"
)

// Result is what a formula returns: raw numbers keyed by output name, text
// for Text outputs, and an optional qualitative label.
type Result struct {
	Values map[string]float64
	Text   map[string]string
	Label  string
	Status Status
}

// NewResult returns a Result with its maps allocated.
func NewResult() Result {
	return Result{
		Values: make(map[string]float64),
		Text:   make(map[string]string),
	}
}

// Set stores a numeric output and returns the result for chaining.
func (r Result) Set(name string, value float64) Result {
	r.Values[name] = value
	return r
}

// Evaluator is the pure computation behind a calculator.
type Evaluator func(in Inputs) (Result, error)

// Spec is the static definition of one calculator.
type Spec struct {
	ID       string
	Title    string
	Category string
	Summary  string
	// About is markdown: the formula, benchmark tables and tips.
	About    string
	Fields   []Field
	Outputs  []Output
	Evaluate Evaluator
}

// Field returns the named field declaration.
func (s Spec) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
