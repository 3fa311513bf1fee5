package formulas

import (
	"math"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// bracket is one step of a progressive schedule. An upper of zero marks
// the top bracket, which has no limit.
type bracket struct {
	upper float64
	rate  float64
}

// 2024 federal ordinary income brackets.
var taxBrackets = map[string][]bracket{
	"single": {
		{11600, 10}, {47150, 12}, {100525, 22}, {191950, 24}, {243725, 32}, {609350, 35}, {0, 37},
	},
	"married_joint": {
		{23200, 10}, {94300, 12}, {201050, 22}, {383900, 24}, {487450, 32}, {731200, 35}, {0, 37},
	},
	"married_separate": {
		{11600, 10}, {47150, 12}, {100525, 22}, {191950, 24}, {243725, 32}, {365600, 35}, {0, 37},
	},
	"head_of_household": {
		{16550, 10}, {63100, 12}, {100500, 22}, {191950, 24}, {243700, 32}, {609350, 35}, {0, 37},
	},
}

func incomeTaxSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "income-tax",
		Title:    "Income Tax Calculator",
		Category: CategoryTax,
		Summary:  "Federal income tax from the 2024 progressive brackets.",
		About: `## How it works

Taxable income is gross income minus deductions. Each slice of taxable
income is taxed at the rate of the bracket it falls in:

    tax = Σ (income in bracket × bracket rate)

| Rate | Single | Married filing jointly | Head of household |
|---|---|---|---|
| 10% | up to $11,600 | up to $23,200 | up to $16,550 |
| 12% | up to $47,150 | up to $94,300 | up to $63,100 |
| 22% | up to $100,525 | up to $201,050 | up to $100,500 |
| 24% | up to $191,950 | up to $383,900 | up to $191,950 |
| 32% | up to $243,725 | up to $487,450 | up to $243,700 |
| 35% | up to $609,350 | up to $731,200 | up to $609,350 |
| 37% | above | above | above |

## Tips

- Moving into a higher bracket only raises the rate on the dollars above
  the threshold.
- Credits, state taxes and payroll taxes are not included.
`,
		Fields: []calculator.Field{
			strict("income", "Gross income"),
			{
				Name:    "filingStatus",
				Label:   "Filing status",
				Kind:    calculator.Choice,
				Policy:  calculator.Strict,
				Choices: []string{"single", "married_joint", "married_separate", "head_of_household"},
			},
			permissive("deductions", "Deductions", 0),
		},
		Outputs: []calculator.Output{
			output("taxableIncome", "Taxable income", calculator.Currency),
			output("totalTax", "Total tax", calculator.Currency),
			percentOutput("effectiveRate", "Effective tax rate"),
			percentPlaces("marginalRate", "Marginal tax rate", 0),
			output("afterTaxIncome", "After-tax income", calculator.Currency),
		},
		Evaluate: evaluateIncomeTax,
	}
}

func evaluateIncomeTax(in calculator.Inputs) (calculator.Result, error) {
	income := in.Number("income")
	deductions := in.Number("deductions")

	var check validation.Checker
	check.NonNegative("income", income)
	check.NonNegative("deductions", deductions)
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	taxable := math.Max(0, income-deductions)
	tax, marginal := progressiveTax(taxBrackets[in.Choice("filingStatus")], taxable)
	tax = mathutil.Round(tax)

	res := calculator.NewResult()
	res.Set("taxableIncome", taxable)
	res.Set("totalTax", tax)
	res.Set("effectiveRate", mathutil.CalculatePercentage(tax, income))
	res.Set("marginalRate", marginal)
	res.Set("afterTaxIncome", income-tax)
	return res, nil
}

// progressiveTax walks the brackets from the bottom and returns the total
// tax with the rate applied to the last taxed dollar.
func progressiveTax(brackets []bracket, taxable float64) (tax, marginal float64) {
	lower := 0.0
	for _, b := range brackets {
		marginal = b.rate
		if b.upper == 0 || taxable <= b.upper {
			tax += mathutil.ApplyPercentage(taxable-lower, b.rate)
			return tax, marginal
		}
		tax += mathutil.ApplyPercentage(b.upper-lower, b.rate)
		lower = b.upper
	}
	return tax, marginal
}
