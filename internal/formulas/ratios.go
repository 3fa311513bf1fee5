package formulas

import (
	"math"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

func currentRatioSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "current-ratio",
		Title:    "Current Ratio Calculator",
		Category: CategoryRatios,
		Summary:  "Short-term liquidity: current assets against current liabilities.",
		About: `## How it works

    current ratio = current assets ÷ current liabilities

| Ratio | Reading |
|---|---|
| 2.0 and above | Strong |
| 1.0 to 2.0 | Healthy |
| Below 1.0 | Needs attention |

## Tips

- A very high ratio can mean idle cash or slow-moving inventory.
- Compare against businesses in the same industry.
`,
		Fields: []calculator.Field{
			strict("currentAssets", "Current assets"),
			strict("currentLiabilities", "Current liabilities"),
		},
		Outputs: []calculator.Output{
			output("currentRatio", "Current ratio", calculator.Ratio),
			output("workingCapital", "Working capital", calculator.Currency),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			assets := in.Number("currentAssets")
			liabilities := in.Number("currentLiabilities")

			var check validation.Checker
			check.NonNegative("currentAssets", assets)
			check.Positive("currentLiabilities", liabilities)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			ratio := assets / liabilities
			res := calculator.NewResult()
			res.Set("currentRatio", ratio)
			res.Set("workingCapital", assets-liabilities)
			res.Label, res.Status = liquidityLabel(ratio)
			return res, nil
		},
	}
}

func liquidityLabel(ratio float64) (string, calculator.Status) {
	switch {
	case ratio >= 2:
		return "Strong", calculator.StatusHealthy
	case ratio >= 1:
		return "Healthy", calculator.StatusHealthy
	default:
		return "Needs Attention", calculator.StatusWarning
	}
}

func workingCapitalSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "working-capital",
		Title:    "Working Capital Calculator",
		Category: CategoryRatios,
		Summary:  "Current assets left after paying current liabilities.",
		About: `## How it works

    working capital = current assets − current liabilities

Blank entries count as zero. The current ratio is shown only when there
are liabilities to divide by.
`,
		Fields: []calculator.Field{
			permissive("currentAssets", "Current assets", 0),
			permissive("currentLiabilities", "Current liabilities", 0),
		},
		Outputs: []calculator.Output{
			output("workingCapital", "Working capital", calculator.Currency),
			output("currentRatio", "Current ratio", calculator.Ratio),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			assets := in.Number("currentAssets")
			liabilities := in.Number("currentLiabilities")

			var check validation.Checker
			check.NonNegative("currentAssets", assets)
			check.NonNegative("currentLiabilities", liabilities)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			wc := assets - liabilities
			res := calculator.NewResult()
			res.Set("workingCapital", wc)
			if ratio, ok := mathutil.SafeDiv(assets, liabilities); ok {
				res.Set("currentRatio", ratio)
			}
			if wc >= 0 {
				res.Label, res.Status = "Positive working capital", calculator.StatusHealthy
			} else {
				res.Label, res.Status = "Negative working capital", calculator.StatusWarning
			}
			return res, nil
		},
	}
}

func quickRatioSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "quick-ratio",
		Title:    "Quick Ratio Calculator",
		Category: CategoryRatios,
		Summary:  "Acid-test liquidity excluding inventory.",
		About: `## How it works

    quick ratio = (current assets − inventory) ÷ current liabilities

A quick ratio of 1.0 or more means liquid assets cover short-term
obligations without selling inventory.
`,
		Fields: []calculator.Field{
			strict("currentAssets", "Current assets"),
			permissive("inventory", "Inventory", 0),
			strict("currentLiabilities", "Current liabilities"),
		},
		Outputs: []calculator.Output{
			output("quickRatio", "Quick ratio", calculator.Ratio),
			output("quickAssets", "Quick assets", calculator.Currency),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			assets := in.Number("currentAssets")
			inventory := in.Number("inventory")
			liabilities := in.Number("currentLiabilities")

			var check validation.Checker
			check.NonNegative("currentAssets", assets)
			check.NonNegative("inventory", inventory)
			if inventory > assets {
				check.Add("inventory", "must not exceed current assets")
			}
			check.Positive("currentLiabilities", liabilities)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			quick := assets - inventory
			ratio := quick / liabilities
			res := calculator.NewResult()
			res.Set("quickRatio", ratio)
			res.Set("quickAssets", quick)
			if ratio >= 1 {
				res.Label, res.Status = "Healthy", calculator.StatusHealthy
			} else {
				res.Label, res.Status = "Needs Attention", calculator.StatusWarning
			}
			return res, nil
		},
	}
}

func debtToEquitySpec() calculator.Spec {
	return calculator.Spec{
		ID:       "debt-to-equity",
		Title:    "Debt-to-Equity Calculator",
		Category: CategoryRatios,
		Summary:  "How much of the business is financed by creditors versus owners.",
		About: `## How it works

    debt-to-equity = total liabilities ÷ shareholders' equity

| Ratio | Reading |
|---|---|
| Up to 1.0 | Conservative |
| 1.0 to 2.0 | Moderate |
| Above 2.0 | High leverage |

Negative or zero equity makes the ratio meaningless and is rejected.
`,
		Fields: []calculator.Field{
			strict("totalLiabilities", "Total liabilities"),
			strict("shareholdersEquity", "Shareholders' equity"),
		},
		Outputs: []calculator.Output{
			output("debtToEquity", "Debt-to-equity ratio", calculator.Ratio),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			liabilities := in.Number("totalLiabilities")
			equity := in.Number("shareholdersEquity")

			var check validation.Checker
			check.NonNegative("totalLiabilities", liabilities)
			check.Positive("shareholdersEquity", equity)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			ratio := liabilities / equity
			res := calculator.NewResult()
			res.Set("debtToEquity", ratio)
			switch {
			case ratio <= 1:
				res.Label, res.Status = "Conservative", calculator.StatusHealthy
			case ratio <= 2:
				res.Label, res.Status = "Moderate", calculator.StatusNeutral
			default:
				res.Label, res.Status = "High Leverage", calculator.StatusWarning
			}
			return res, nil
		},
	}
}

func roeSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "roe",
		Title:    "Return on Equity Calculator",
		Category: CategoryRatios,
		Summary:  "Net income earned on shareholders' equity.",
		About: `## How it works

    ROE = net income ÷ shareholders' equity

| ROE | Reading |
|---|---|
| 15% and above | Strong |
| 0% to 15% | Moderate |
| Below 0% | Negative |
`,
		Fields: []calculator.Field{
			strict("netIncome", "Net income"),
			strict("shareholdersEquity", "Shareholders' equity"),
		},
		Outputs: []calculator.Output{
			percentOutput("roe", "Return on equity"),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			income := in.Number("netIncome")
			equity := in.Number("shareholdersEquity")

			if equity <= 0 {
				return rejected(validation.Reject("shareholdersEquity", "must be greater than zero"))
			}

			roe := mathutil.CalculatePercentage(income, equity)
			res := calculator.NewResult()
			res.Set("roe", roe)
			switch {
			case roe >= 15:
				res.Label, res.Status = "Strong", calculator.StatusHealthy
			case roe >= 0:
				res.Label, res.Status = "Moderate", calculator.StatusNeutral
			default:
				res.Label, res.Status = "Negative", calculator.StatusWarning
			}
			return res, nil
		},
	}
}

func roaSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "roa",
		Title:    "Return on Assets Calculator",
		Category: CategoryRatios,
		Summary:  "How efficiently assets produce net income.",
		About: `## How it works

    ROA = net income ÷ total assets
`,
		Fields: []calculator.Field{
			strict("netIncome", "Net income"),
			strict("totalAssets", "Total assets"),
		},
		Outputs: []calculator.Output{
			percentOutput("roa", "Return on assets"),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			assets := in.Number("totalAssets")
			if assets <= 0 {
				return rejected(validation.Reject("totalAssets", "must be greater than zero"))
			}
			res := calculator.NewResult()
			res.Set("roa", mathutil.CalculatePercentage(in.Number("netIncome"), assets))
			return res, nil
		},
	}
}

func roiSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "roi",
		Title:    "Return on Investment Calculator",
		Category: CategoryRatios,
		Summary:  "Total and annualized return on an investment.",
		About: `## How it works

    ROI = (final value − initial investment) ÷ initial investment

When a holding period is given the annualized return is
(final ÷ initial)^(1/years) − 1.
`,
		Fields: []calculator.Field{
			strict("initialInvestment", "Initial investment"),
			strict("finalValue", "Final value"),
			optional("years", "Holding period (years)"),
		},
		Outputs: []calculator.Output{
			output("gain", "Gain", calculator.Currency),
			percentOutput("roi", "Return on investment"),
			percentOutput("annualizedRoi", "Annualized return"),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			initial := in.Number("initialInvestment")
			final := in.Number("finalValue")

			var check validation.Checker
			check.Positive("initialInvestment", initial)
			check.NonNegative("finalValue", final)
			if in.Has("years") {
				check.Positive("years", in.Number("years"))
			}
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			gain := final - initial
			res := calculator.NewResult()
			res.Set("gain", gain)
			res.Set("roi", mathutil.CalculatePercentage(gain, initial))
			if in.Has("years") {
				annualized := (math.Pow(final/initial, 1/in.Number("years")) - 1) * constants.PercentageMultiplier
				computable(&check, "years", annualized)
				if err := check.Err(); err != nil {
					return rejected(err)
				}
				res.Set("annualizedRoi", annualized)
			}
			return res, nil
		},
	}
}

func paybackPeriodSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "payback-period",
		Title:    "Payback Period Calculator",
		Category: CategoryRatios,
		Summary:  "Years of even cash flow needed to recover an investment.",
		About: `## How it works

    payback period = initial investment ÷ annual cash flow

The payback period ignores the time value of money; use NPV to compare
projects with different timings.
`,
		Fields: []calculator.Field{
			strict("initialInvestment", "Initial investment"),
			strict("annualCashFlow", "Annual cash flow"),
		},
		Outputs: []calculator.Output{
			output("paybackYears", "Payback period", calculator.Years),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			initial := in.Number("initialInvestment")
			flow := in.Number("annualCashFlow")

			var check validation.Checker
			check.Positive("initialInvestment", initial)
			check.Positive("annualCashFlow", flow)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			res := calculator.NewResult()
			res.Set("paybackYears", initial/flow)
			return res, nil
		},
	}
}

func dividendYieldSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "dividend-yield",
		Title:    "Dividend Yield Calculator",
		Category: CategoryRatios,
		Summary:  "Annual dividend income as a share of the price paid.",
		About: `## How it works

    dividend yield = annual dividend per share ÷ share price
`,
		Fields: []calculator.Field{
			strict("annualDividend", "Annual dividend per share"),
			strict("sharePrice", "Share price"),
		},
		Outputs: []calculator.Output{
			percentOutput("dividendYield", "Dividend yield"),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			dividend := in.Number("annualDividend")
			price := in.Number("sharePrice")

			var check validation.Checker
			check.NonNegative("annualDividend", dividend)
			check.Positive("sharePrice", price)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			res := calculator.NewResult()
			res.Set("dividendYield", mathutil.CalculatePercentage(dividend, price))
			return res, nil
		},
	}
}

func evaSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "eva",
		Title:    "Economic Value Added Calculator",
		Category: CategoryRatios,
		Summary:  "Operating profit left after charging for the capital employed.",
		About: `## How it works

    EVA = NOPAT − invested capital × WACC

A positive EVA means the business earns more than its cost of capital.
`,
		Fields: []calculator.Field{
			strict("nopat", "Net operating profit after tax"),
			strict("investedCapital", "Invested capital"),
			strict("wacc", "Weighted average cost of capital (%)"),
		},
		Outputs: []calculator.Output{
			output("capitalCharge", "Capital charge", calculator.Currency),
			output("eva", "Economic value added", calculator.Currency),
			percentOutput("roic", "Return on invested capital"),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			nopat := in.Number("nopat")
			capital := in.Number("investedCapital")
			wacc := in.Number("wacc")

			var check validation.Checker
			check.NonNegative("investedCapital", capital)
			check.Range("wacc", wacc, 0, constants.PercentageMultiplier)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			charge := mathutil.ApplyPercentage(capital, wacc)
			eva := nopat - charge
			res := calculator.NewResult()
			res.Set("capitalCharge", charge)
			res.Set("eva", eva)
			if capital > 0 {
				res.Set("roic", mathutil.CalculatePercentage(nopat, capital))
			}
			if eva >= 0 {
				res.Label, res.Status = "Value Creating", calculator.StatusHealthy
			} else {
				res.Label, res.Status = "Value Destroying", calculator.StatusWarning
			}
			return res, nil
		},
	}
}
