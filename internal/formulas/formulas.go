// Package formulas holds every calculator the site offers. Each calculator
// is a static calculator.Spec built at init time; All returns them in the
// order the catalog lists them.
package formulas

import (
	"math"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
)

// Catalog categories.
const (
	CategoryLending    = "Lending"
	CategoryGrowth     = "Growth & Savings"
	CategoryBusiness   = "Business"
	CategoryRatios     = "Financial Ratios"
	CategoryValuation  = "Valuation"
	CategoryBonds      = "Bonds"
	CategoryTax        = "Tax"
	CategoryRetirement = "Retirement"
	CategoryLearning   = "Learning"
)

// All returns every calculator spec in catalog order.
func All() []calculator.Spec {
	return []calculator.Spec{
		loanSpec(),
		mortgageSpec(),
		simpleInterestSpec(),
		compoundInterestSpec(),
		stakingSpec(),
		timeValueSpec(),
		cagrSpec(),
		breakEvenSpec(),
		ebitdaSpec(),
		grossProfitSpec(),
		markupSpec(),
		profitMarginSpec(),
		currentRatioSpec(),
		workingCapitalSpec(),
		quickRatioSpec(),
		debtToEquitySpec(),
		roeSpec(),
		roaSpec(),
		roiSpec(),
		paybackPeriodSpec(),
		dividendYieldSpec(),
		evaSpec(),
		npvSpec(),
		dcfSpec(),
		bondDurationSpec(),
		incomeTaxSpec(),
		socialSecuritySpec(),
		nashEquilibriumSpec(),
		quizSpec(),
	}
}

// NewRegistry builds a registry holding every calculator.
func NewRegistry(logger *zap.Logger) (*calculator.Registry, error) {
	return calculator.NewRegistry(logger, All()...)
}

func strict(name, label string) calculator.Field {
	return calculator.Field{Name: name, Label: label, Kind: calculator.Number, Policy: calculator.Strict}
}

func permissive(name, label string, def float64) calculator.Field {
	return calculator.Field{Name: name, Label: label, Kind: calculator.Number, Policy: calculator.Permissive, Default: def}
}

func optional(name, label string) calculator.Field {
	return calculator.Field{Name: name, Label: label, Kind: calculator.Number, Policy: calculator.Optional}
}

func output(name, label string, format calculator.Format) calculator.Output {
	return calculator.Output{Name: name, Label: label, Format: format}
}

func percentOutput(name, label string) calculator.Output {
	return calculator.Output{Name: name, Label: label, Format: calculator.Percent}
}

// percentPlaces is a Percent output shown with exactly decimals places.
func percentPlaces(name, label string, decimals int) calculator.Output {
	if decimals == 0 {
		decimals = calculator.NoDecimals
	}
	return calculator.Output{Name: name, Label: label, Format: calculator.Percent, Decimals: decimals}
}

// termMonths converts a term in years to whole monthly payments.
func termMonths(years float64) int {
	return int(math.Round(years * constants.MonthsPerYear))
}

// Longest horizons accepted, in years.
const (
	maxTermYears    = 50
	maxHorizonYears = 200
)

// duration validates a span in years as positive and at most limit.
func duration(check *validation.Checker, field string, years, limit float64) {
	check.Positive(field, years)
	if years > limit {
		check.Addf(field, "must be at most %g", limit)
	}
}

// computable flags field when any of values overflowed float64.
func computable(check *validation.Checker, field string, values ...float64) {
	for _, value := range values {
		if !mathutil.IsFinite(value) {
			check.Add(field, "is too large to compute a result")
			return
		}
	}
}

// ratePercent validates an annual rate entered in percent.
func ratePercent(check *validation.Checker, field string, rate float64) {
	check.Range(field, rate, 0, constants.PercentageMultiplier)
}

func rejected(err error) (calculator.Result, error) {
	return calculator.Result{}, err
}
