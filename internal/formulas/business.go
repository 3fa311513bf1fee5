package formulas

import (
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

func breakEvenSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "break-even",
		Title:    "Break-Even Calculator",
		Category: CategoryBusiness,
		Summary:  "Units and revenue needed to cover fixed costs.",
		About: `## How it works

    units = ⌈fixed costs ÷ (price − variable cost)⌉

The denominator is the contribution margin per unit. Partial units cannot
be sold, so the result is always rounded up.

## Tips

- Raising the price or cutting the variable cost both widen the margin.
- A price at or below the variable cost never breaks even.
`,
		Fields: []calculator.Field{
			strict("fixedCosts", "Fixed costs"),
			strict("variableCostPerUnit", "Variable cost per unit"),
			strict("pricePerUnit", "Price per unit"),
		},
		Outputs: []calculator.Output{
			output("breakEvenUnits", "Break-even units", calculator.Units),
			output("breakEvenRevenue", "Break-even revenue", calculator.Currency),
			output("contributionMargin", "Contribution margin per unit", calculator.Currency),
			percentOutput("contributionMarginRatio", "Contribution margin ratio"),
		},
		Evaluate: evaluateBreakEven,
	}
}

func evaluateBreakEven(in calculator.Inputs) (calculator.Result, error) {
	fixed := in.Number("fixedCosts")
	variable := in.Number("variableCostPerUnit")
	price := in.Number("pricePerUnit")

	var check validation.Checker
	check.NonNegative("fixedCosts", fixed)
	check.NonNegative("variableCostPerUnit", variable)
	check.Positive("pricePerUnit", price)
	if price > 0 && price <= variable {
		check.Add("pricePerUnit", "must be greater than the variable cost per unit")
	}
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	margin := price - variable
	units := mathutil.CeilUnits(fixed / margin)

	res := calculator.NewResult()
	res.Set("breakEvenUnits", units)
	res.Set("breakEvenRevenue", units*price)
	res.Set("contributionMargin", margin)
	res.Set("contributionMarginRatio", mathutil.CalculatePercentage(margin, price))
	return res, nil
}

func ebitdaSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "ebitda",
		Title:    "EBITDA Calculator",
		Category: CategoryBusiness,
		Summary:  "Earnings before interest, taxes, depreciation and amortization.",
		About: `## How it works

    EBITDA = revenue − cost of goods sold − operating expenses
    EBITDA margin = EBITDA ÷ revenue

Operating expenses here exclude depreciation and amortization.

| EBITDA margin | Reading |
|---|---|
| 20% and above | Strong |
| 10% to 20% | Moderate |
| 0% to 10% | Thin |
| Below 0% | Negative |
`,
		Fields: []calculator.Field{
			strict("revenue", "Revenue"),
			permissive("cogs", "Cost of goods sold", 0),
			permissive("operatingExpenses", "Operating expenses", 0),
		},
		Outputs: []calculator.Output{
			output("ebitda", "EBITDA", calculator.Currency),
			percentOutput("ebitdaMargin", "EBITDA margin"),
			output("grossProfit", "Gross profit", calculator.Currency),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			revenue := in.Number("revenue")
			cogs := in.Number("cogs")
			opex := in.Number("operatingExpenses")

			var check validation.Checker
			check.Positive("revenue", revenue)
			check.NonNegative("cogs", cogs)
			check.NonNegative("operatingExpenses", opex)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			gross := revenue - cogs
			ebitda := gross - opex
			margin := mathutil.CalculatePercentage(ebitda, revenue)

			res := calculator.NewResult()
			res.Set("ebitda", ebitda)
			res.Set("ebitdaMargin", margin)
			res.Set("grossProfit", gross)
			res.Label, res.Status = marginLabel(margin, 20, 10)
			return res, nil
		},
	}
}

// marginLabel grades a margin against strong and moderate cut-offs.
func marginLabel(margin, strong, moderate float64) (string, calculator.Status) {
	switch {
	case margin >= strong:
		return "Strong", calculator.StatusHealthy
	case margin >= moderate:
		return "Moderate", calculator.StatusNeutral
	case margin >= 0:
		return "Thin", calculator.StatusWarning
	default:
		return "Negative", calculator.StatusWarning
	}
}

func grossProfitSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "gross-profit",
		Title:    "Gross Profit Calculator",
		Category: CategoryBusiness,
		Summary:  "Gross profit and gross margin from revenue and cost of goods sold.",
		About: `## How it works

    gross profit = revenue − cost of goods sold
    gross margin = gross profit ÷ revenue
`,
		Fields: []calculator.Field{
			strict("revenue", "Revenue"),
			strict("cogs", "Cost of goods sold"),
		},
		Outputs: []calculator.Output{
			output("grossProfit", "Gross profit", calculator.Currency),
			percentOutput("grossMargin", "Gross margin"),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			revenue := in.Number("revenue")
			cogs := in.Number("cogs")

			var check validation.Checker
			check.Positive("revenue", revenue)
			check.NonNegative("cogs", cogs)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			gross := revenue - cogs
			res := calculator.NewResult()
			res.Set("grossProfit", gross)
			res.Set("grossMargin", mathutil.CalculatePercentage(gross, revenue))
			return res, nil
		},
	}
}

func markupSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "markup",
		Title:    "Markup Calculator",
		Category: CategoryBusiness,
		Summary:  "Markup on cost and margin on price for a single item.",
		About: `## How it works

    markup = (price − cost) ÷ cost
    margin = (price − cost) ÷ price

Markup is measured against cost, margin against the selling price, so a
50% markup is only a 33.3% margin.
`,
		Fields: []calculator.Field{
			strict("cost", "Cost"),
			strict("sellingPrice", "Selling price"),
		},
		Outputs: []calculator.Output{
			output("profit", "Profit per item", calculator.Currency),
			percentOutput("markup", "Markup"),
			percentOutput("margin", "Margin"),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			cost := in.Number("cost")
			price := in.Number("sellingPrice")

			var check validation.Checker
			check.Positive("cost", cost)
			check.NonNegative("sellingPrice", price)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			profit := price - cost
			res := calculator.NewResult()
			res.Set("profit", profit)
			res.Set("markup", mathutil.CalculatePercentage(profit, cost))
			if price > 0 {
				res.Set("margin", mathutil.CalculatePercentage(profit, price))
			}
			return res, nil
		},
	}
}

func profitMarginSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "profit-margin",
		Title:    "Profit Margin Calculator",
		Category: CategoryBusiness,
		Summary:  "Net profit and net margin from revenue and total costs.",
		About: `## How it works

    net profit = revenue − total costs
    net margin = net profit ÷ revenue

| Net margin | Reading |
|---|---|
| 20% and above | Strong |
| 10% to 20% | Moderate |
| 0% to 10% | Thin |
| Below 0% | Negative |
`,
		Fields: []calculator.Field{
			strict("revenue", "Revenue"),
			strict("totalCosts", "Total costs"),
		},
		Outputs: []calculator.Output{
			output("netProfit", "Net profit", calculator.Currency),
			percentOutput("profitMargin", "Net profit margin"),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			revenue := in.Number("revenue")
			costs := in.Number("totalCosts")

			var check validation.Checker
			check.Positive("revenue", revenue)
			check.NonNegative("totalCosts", costs)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			profit := revenue - costs
			margin := mathutil.CalculatePercentage(profit, revenue)
			res := calculator.NewResult()
			res.Set("netProfit", profit)
			res.Set("profitMargin", margin)
			res.Label, res.Status = marginLabel(margin, 20, 10)
			return res, nil
		},
	}
}
