package formulas

import (
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/tvm"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

func npvSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "npv",
		Title:    "Net Present Value Calculator",
		Category: CategoryValuation,
		Summary:  "Discount a series of yearly cash flows and net off the initial outlay.",
		About: `## How it works

    NPV = Σ CFₜ ÷ (1 + r)^t − initial investment,  t = 1 … n

Cash flows are received at the end of each year. Enter them separated by
semicolons, pipes or new lines; commas are read as thousands separators.
Negative cash flows (for example a refit in year three) are allowed.

| NPV | Decision |
|---|---|
| Positive | Project earns more than the discount rate |
| Zero or negative | Project does not clear the hurdle |
`,
		Fields: []calculator.Field{
			strict("initialInvestment", "Initial investment"),
			strict("discountRate", "Discount rate (%)"),
			{Name: "cashFlows", Label: "Yearly cash flows", Kind: calculator.List, Policy: calculator.Strict},
		},
		Outputs: []calculator.Output{
			output("presentValue", "Present value of cash flows", calculator.Currency),
			output("npv", "Net present value", calculator.Currency),
			{Name: "profitabilityIndex", Label: "Profitability index", Format: calculator.Ratio},
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			initial := in.Number("initialInvestment")
			rate := in.Number("discountRate")
			flows := in.List("cashFlows")

			var check validation.Checker
			check.NonNegative("initialInvestment", initial)
			check.NonNegative("discountRate", rate)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			pv := tvm.PresentValueOfFlows(rate, flows)
			npv := pv - initial

			res := calculator.NewResult()
			res.Set("presentValue", pv)
			res.Set("npv", npv)
			if initial > 0 {
				res.Set("profitabilityIndex", pv/initial)
			}
			if npv > 0 {
				res.Label, res.Status = "Profitable", calculator.StatusHealthy
			} else {
				res.Label, res.Status = "Not Profitable", calculator.StatusWarning
			}
			return res, nil
		},
	}
}

func dcfSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "dcf",
		Title:    "Discounted Cash Flow Calculator",
		Category: CategoryValuation,
		Summary:  "Enterprise and equity value from projected free cash flows.",
		About: `## How it works

    EV = Σ FCFₜ ÷ (1 + r)^t + TV ÷ (1 + r)^n

The terminal value *TV* is either entered directly or derived with the
Gordon growth model:

    TV = FCFₙ × (1 + g) ÷ (r − g)

which needs the discount rate *r* to exceed the growth rate *g*.
Equity value is enterprise value minus net debt; dividing by the share
count gives a value per share.

## Tips

- Terminal value often dominates the result; test a few growth rates.
- Keep the growth rate at or below long-run inflation plus real GDP growth.
`,
		Fields: []calculator.Field{
			{Name: "cashFlows", Label: "Projected free cash flows", Kind: calculator.List, Policy: calculator.Strict},
			strict("discountRate", "Discount rate (%)"),
			optional("terminalGrowthRate", "Terminal growth rate (%)"),
			optional("terminalValue", "Terminal value"),
			optional("netDebt", "Net debt"),
			optional("sharesOutstanding", "Shares outstanding"),
		},
		Outputs: []calculator.Output{
			output("pvCashFlows", "Present value of cash flows", calculator.Currency),
			output("terminalValue", "Terminal value", calculator.Currency),
			output("pvTerminalValue", "Present value of terminal value", calculator.Currency),
			output("enterpriseValue", "Enterprise value", calculator.Currency),
			output("equityValue", "Equity value", calculator.Currency),
			output("valuePerShare", "Value per share", calculator.Currency),
		},
		Evaluate: evaluateDCF,
	}
}

func evaluateDCF(in calculator.Inputs) (calculator.Result, error) {
	flows := in.List("cashFlows")
	rate := in.Number("discountRate")

	var check validation.Checker
	check.Positive("discountRate", rate)
	if in.Has("terminalGrowthRate") && !in.Has("terminalValue") && in.Number("terminalGrowthRate") >= rate {
		check.Add("terminalGrowthRate", "must be less than the discount rate")
	}
	if in.Has("sharesOutstanding") {
		check.Positive("sharesOutstanding", in.Number("sharesOutstanding"))
	}
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	res := calculator.NewResult()
	pvFlows := tvm.PresentValueOfFlows(rate, flows)
	res.Set("pvCashFlows", pvFlows)

	ev := pvFlows
	terminal, hasTerminal := terminalValue(in, flows, rate)
	if hasTerminal {
		pvTerminal := terminal * tvm.DiscountFactor(rate, float64(len(flows)))
		res.Set("terminalValue", terminal)
		res.Set("pvTerminalValue", pvTerminal)
		ev += pvTerminal
	}
	res.Set("enterpriseValue", ev)

	equity := ev
	if in.Has("netDebt") {
		equity -= in.Number("netDebt")
		res.Set("equityValue", equity)
	}
	if in.Has("sharesOutstanding") {
		res.Set("valuePerShare", equity/in.Number("sharesOutstanding"))
	}
	return res, nil
}

// terminalValue prefers an explicit entry over the Gordon growth estimate.
func terminalValue(in calculator.Inputs, flows []float64, rate float64) (float64, bool) {
	if in.Has("terminalValue") {
		return in.Number("terminalValue"), true
	}
	if !in.Has("terminalGrowthRate") || len(flows) == 0 {
		return 0, false
	}
	g := in.Number("terminalGrowthRate") / constants.PercentageMultiplier
	r := rate / constants.PercentageMultiplier
	last := flows[len(flows)-1]
	return last * (1 + g) / (r - g), true
}
