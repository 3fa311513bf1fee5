package calculator

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/format"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

var (
	// ErrUnknownCalculator is returned for an ID with no registered spec.
	ErrUnknownCalculator = errors.New("unknown calculator")
	// ErrDuplicateCalculator is returned when two specs share an ID.
	ErrDuplicateCalculator = errors.New("duplicate calculator")
	// ErrNonFiniteResult is returned when a formula produced NaN or an
	// infinity; such values are never rendered.
	ErrNonFiniteResult = errors.New("result is not a finite number")
)

// Registry is the lookup table of calculators keyed by ID. It is immutable
// after construction and safe for concurrent use.
type Registry struct {
	logger          *zap.Logger
	specs           map[string]Spec
	order           []string
	percentDecimals int
}

// NewRegistry registers specs in the given order.
func NewRegistry(logger *zap.Logger, specs ...Spec) (*Registry, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{
		logger:          logger,
		specs:           make(map[string]Spec, len(specs)),
		percentDecimals: constants.DefaultPercentDecimals,
	}

	for _, spec := range specs {
		if err := r.register(spec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(spec Spec) error {
	if spec.ID == "" {
		return fmt.Errorf("calculator %q has no ID", spec.Title)
	}
	if spec.Evaluate == nil {
		return fmt.Errorf("calculator %s has no evaluator", spec.ID)
	}
	if _, exists := r.specs[spec.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCalculator, spec.ID)
	}

	seen := make(map[string]struct{}, len(spec.Fields))
	for _, field := range spec.Fields {
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("calculator %s declares field %s twice", spec.ID, field.Name)
		}
		seen[field.Name] = struct{}{}
		if field.Kind == Choice && len(field.Choices) == 0 {
			return fmt.Errorf("calculator %s choice field %s has no choices", spec.ID, field.Name)
		}
	}

	r.specs[spec.ID] = spec
	r.order = append(r.order, spec.ID)
	return nil
}

// SetPercentDecimals changes the precision used by Percent outputs that do
// not declare their own. Values outside 0..4 are ignored.
func (r *Registry) SetPercentDecimals(decimals int) {
	if decimals >= 0 && decimals <= 4 {
		r.percentDecimals = decimals
	}
}

// Get returns the spec registered under id.
func (r *Registry) Get(id string) (Spec, bool) {
	spec, ok := r.specs[id]
	return spec, ok
}

// List returns every spec in registration order.
func (r *Registry) List() []Spec {
	specs := make([]Spec, 0, len(r.order))
	for _, id := range r.order {
		specs = append(specs, r.specs[id])
	}
	return specs
}

// Len returns the number of registered calculators.
func (r *Registry) Len() int {
	return len(r.order)
}

// Evaluate normalizes raw, runs the calculator and formats its outputs.
// Rejections come back as *validation.Error with no partial view.
func (r *Registry) Evaluate(id string, raw RawInput) (*View, error) {
	start := time.Now()

	spec, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, id)
	}

	in, err := Normalize(spec, raw)
	if err != nil {
		r.logRejection(spec.ID, "normalize", err)
		return nil, err
	}

	result, err := spec.Evaluate(in)
	if err != nil {
		r.logRejection(spec.ID, "evaluate", err)
		return nil, err
	}

	view, err := r.render(spec, in, result)
	if err != nil {
		r.logger.Error("calculator produced an unusable result",
			zap.String("op", "calculator.Evaluate"),
			zap.String("calculator", spec.ID),
			zap.Error(err),
		)
		return nil, err
	}

	r.logger.Debug("calculator evaluated",
		zap.String("op", "calculator.Evaluate"),
		zap.String("calculator", spec.ID),
		zap.Int("outputs", len(view.Outputs)),
		zap.Strings("defaulted", view.Defaulted),
		zap.Duration("duration", time.Since(start)),
	)
	return view, nil
}

func (r *Registry) logRejection(id, stage string, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		r.logger.Debug("calculator input rejected",
			zap.String("op", "calculator.Evaluate"),
			zap.String("calculator", id),
			zap.String("stage", stage),
			zap.Int("issues", len(vErr.Issues)),
		)
		return
	}
	r.logger.Warn("calculator evaluation failed",
		zap.String("op", "calculator.Evaluate"),
		zap.String("calculator", id),
		zap.String("stage", stage),
		zap.Error(err),
	)
}

func (r *Registry) render(spec Spec, in Inputs, result Result) (*View, error) {
	view := &View{
		Calculator: spec.ID,
		Outputs:    make([]OutputValue, 0, len(spec.Outputs)),
		Label:      result.Label,
		Status:     result.Status,
		Defaulted:  in.Defaulted(),
	}

	for _, out := range spec.Outputs {
		if out.Format == Text {
			text, ok := result.Text[out.Name]
			if !ok {
				continue
			}
			view.Outputs = append(view.Outputs, OutputValue{Name: out.Name, Label: out.Label, Value: text})
			continue
		}

		value, ok := result.Values[out.Name]
		if !ok {
			continue
		}
		if !mathutil.IsFinite(value) {
			return nil, fmt.Errorf("%w: %s.%s", ErrNonFiniteResult, spec.ID, out.Name)
		}
		raw := value
		view.Outputs = append(view.Outputs, OutputValue{
			Name:  out.Name,
			Label: out.Label,
			Value: r.formatValue(out, value),
			Raw:   &raw,
		})
	}

	return view, nil
}

func (r *Registry) formatValue(out Output, value float64) string {
	switch out.Format {
	case Currency:
		return format.Currency(value)
	case Percent:
		return format.Percent(value, decimalsOr(out.Decimals, r.percentDecimals))
	case Ratio:
		return format.Decimal(value, decimalsOr(out.Decimals, constants.DefaultRatioDecimals))
	case Decimal:
		return format.Decimal(value, decimalsOr(out.Decimals, constants.CurrencyDecimals))
	case Units:
		return format.Units(value)
	case Count:
		return format.Count(value)
	case Years:
		return format.Years(value, decimalsOr(out.Decimals, constants.CurrencyDecimals))
	case Flag:
		return format.Flag(value)
	}
	return format.Decimal(value, constants.CurrencyDecimals)
}

func decimalsOr(declared, fallback int) int {
	switch {
	case declared == NoDecimals:
		return 0
	case declared > 0:
		return declared
	}
	return fallback
}
