package formulas

import (
	"math"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/tvm"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

const (
	maxCompoundsPerYear = 365
	// maxStakingDays bounds the daily compounding loop to ten years.
	maxStakingDays = 3650
)

func compoundInterestSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "compound-interest",
		Title:    "Compound Interest Calculator",
		Category: CategoryGrowth,
		Summary:  "Future value of savings with periodic compounding and optional contributions.",
		About: `## How it works

    A = P(1 + r/n)^(nt)

Contributions are added at the end of each compounding period and grow
as an ordinary annuity: C × ((1 + r/n)^(nt) − 1) / (r/n).

| Compounding | n |
|---|---|
| Annually | 1 |
| Quarterly | 4 |
| Monthly | 12 |
| Daily | 365 |
`,
		Fields: []calculator.Field{
			strict("principal", "Initial deposit"),
			strict("annualRate", "Annual interest rate (%)"),
			strict("years", "Years"),
			permissive("compoundsPerYear", "Compounding periods per year", 12),
			permissive("contribution", "Contribution per period", 0),
		},
		Outputs: []calculator.Output{
			output("futureValue", "Future value", calculator.Currency),
			output("totalContributions", "Total deposited", calculator.Currency),
			output("totalInterest", "Interest earned", calculator.Currency),
		},
		Evaluate: evaluateCompoundInterest,
	}
}

func evaluateCompoundInterest(in calculator.Inputs) (calculator.Result, error) {
	principal := in.Number("principal")
	rate := in.Number("annualRate")
	years := in.Number("years")
	n := in.Number("compoundsPerYear")
	contribution := in.Number("contribution")

	var check validation.Checker
	check.NonNegative("principal", principal)
	ratePercent(&check, "annualRate", rate)
	duration(&check, "years", years, maxHorizonYears)
	check.Range("compoundsPerYear", n, 1, maxCompoundsPerYear)
	check.Whole("compoundsPerYear", n)
	check.NonNegative("contribution", contribution)
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	periods := int(n)
	fv := tvm.FutureValue(principal, rate, periods, years) +
		tvm.AnnuityFutureValue(contribution, rate, periods, years)
	deposited := principal + contribution*n*years
	computable(&check, "years", fv, deposited)
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	res := calculator.NewResult()
	res.Set("futureValue", fv)
	res.Set("totalContributions", deposited)
	res.Set("totalInterest", fv-deposited)
	return res, nil
}

type stakingSchedule struct {
	periodsPerYear float64
	periodDays     float64
}

var stakingSchedules = map[string]stakingSchedule{
	"daily":   {periodsPerYear: 365, periodDays: 1},
	"weekly":  {periodsPerYear: 52, periodDays: 7},
	"monthly": {periodsPerYear: 12, periodDays: constants.DaysPerYear / 12.0},
}

func stakingSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "staking",
		Title:    "Staking Rewards Calculator",
		Category: CategoryGrowth,
		Summary:  "Rewards from staking a token balance with optional auto-compounding.",
		About: `## How it works

Rewards are credited every period at APR ÷ periods-per-year and, when
compounding, added to the staked balance. Days left over after the last
full period accrue simple rewards. Without compounding, rewards are
amount × APR × days ÷ 365.

## Tips

- Auto-compounding matters more the higher the rate and the longer the stake.
- Network fees for claiming are not included.
`,
		Fields: []calculator.Field{
			strict("amount", "Amount staked"),
			strict("apy", "Annual reward rate (%)"),
			strict("days", "Staking period (days)"),
			{
				Name:          "compounding",
				Label:         "Compounding",
				Kind:          calculator.Choice,
				Policy:        calculator.Permissive,
				Choices:       []string{"daily", "weekly", "monthly", "none"},
				DefaultChoice: "daily",
			},
		},
		Outputs: []calculator.Output{
			output("finalBalance", "Final balance", calculator.Currency),
			output("rewards", "Total rewards", calculator.Currency),
			percentPlaces("effectiveApy", "Effective annual yield", 2),
		},
		Evaluate: evaluateStaking,
	}
}

func evaluateStaking(in calculator.Inputs) (calculator.Result, error) {
	amount := in.Number("amount")
	apr := in.Number("apy")
	days := in.Number("days")
	mode := in.Choice("compounding")

	var check validation.Checker
	check.Positive("amount", amount)
	check.Range("apy", apr, 0, 1000)
	check.Range("days", days, 1, maxStakingDays)
	check.Whole("days", days)
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	annual := apr / constants.PercentageMultiplier
	res := calculator.NewResult()

	schedule, compounding := stakingSchedules[mode]
	if !compounding {
		rewards := amount * annual * days / constants.DaysPerYear
		res.Set("finalBalance", amount+rewards)
		res.Set("rewards", rewards)
		res.Set("effectiveApy", apr)
		return res, nil
	}

	perPeriod := annual / schedule.periodsPerYear
	fullPeriods := int(math.Floor(days/schedule.periodDays + constants.UnitEpsilon))
	balance := amount
	for i := 0; i < fullPeriods; i++ {
		balance *= 1 + perPeriod
	}
	leftover := days - float64(fullPeriods)*schedule.periodDays
	if leftover > constants.UnitEpsilon {
		balance += balance * annual * leftover / constants.DaysPerYear
	}

	res.Set("finalBalance", balance)
	res.Set("rewards", balance-amount)
	res.Set("effectiveApy", (math.Pow(1+perPeriod, schedule.periodsPerYear)-1)*constants.PercentageMultiplier)
	return res, nil
}

func timeValueSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "time-value-of-money",
		Title:    "Time Value of Money Calculator",
		Category: CategoryGrowth,
		Summary:  "Move a single amount between today and a future date at a given rate.",
		About: `## How it works

    FV = PV × (1 + r/n)^(nt)        PV = FV ÷ (1 + r/n)^(nt)

Enter either value and the other is solved. When both are entered, the
*solve for* option picks which one is recomputed so the pair is always
consistent.
`,
		Fields: []calculator.Field{
			optional("presentValue", "Present value"),
			optional("futureValue", "Future value"),
			strict("annualRate", "Annual rate (%)"),
			strict("years", "Years"),
			permissive("compoundsPerYear", "Compounding periods per year", 1),
			{
				Name:    "solveFor",
				Label:   "Solve for",
				Kind:    calculator.Choice,
				Policy:  calculator.Optional,
				Choices: []string{"fv", "pv"},
			},
		},
		Outputs: []calculator.Output{
			output("presentValue", "Present value", calculator.Currency),
			output("futureValue", "Future value", calculator.Currency),
			calculator.Output{Name: "growthFactor", Label: "Growth factor", Format: calculator.Decimal, Decimals: 4},
			output("solvedFor", "Solved for", calculator.Text),
		},
		Evaluate: evaluateTimeValue,
	}
}

func evaluateTimeValue(in calculator.Inputs) (calculator.Result, error) {
	rate := in.Number("annualRate")
	years := in.Number("years")
	n := in.Number("compoundsPerYear")

	var check validation.Checker
	if rate <= -constants.PercentageMultiplier || rate > constants.PercentageMultiplier {
		check.Add("annualRate", "must be greater than -100 and at most 100")
	}
	duration(&check, "years", years, maxHorizonYears)
	check.Range("compoundsPerYear", n, 1, maxCompoundsPerYear)
	check.Whole("compoundsPerYear", n)

	hasPV, hasFV := in.Has("presentValue"), in.Has("futureValue")
	target := in.Choice("solveFor")
	if target == "" {
		target = "fv"
		if !hasPV && hasFV {
			target = "pv"
		}
	}
	switch {
	case !hasPV && !hasFV:
		check.Add("presentValue", "enter a present value or a future value")
	case target == "fv" && !hasPV:
		check.Add("presentValue", "is required to solve for the future value")
	case target == "pv" && !hasFV:
		check.Add("futureValue", "is required to solve for the present value")
	}
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	factor := tvm.GrowthFactor(rate, int(n), years)
	pv, fv := in.Number("presentValue"), in.Number("futureValue")
	if target == "fv" {
		fv = tvm.FutureValue(pv, rate, int(n), years)
	} else {
		pv = tvm.PresentValue(fv, rate, int(n), years)
	}
	computable(&check, "years", factor, pv, fv)
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	res := calculator.NewResult()
	res.Set("presentValue", pv)
	res.Set("futureValue", fv)
	res.Set("growthFactor", factor)
	if target == "fv" {
		res.Text["solvedFor"] = "future value"
	} else {
		res.Text["solvedFor"] = "present value"
	}
	return res, nil
}

func cagrSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "cagr",
		Title:    "CAGR Calculator",
		Category: CategoryGrowth,
		Summary:  "Compound annual growth rate between two values.",
		About: `## How it works

    CAGR = (ending ÷ beginning)^(1/years) − 1

CAGR smooths out volatility: it is the constant yearly rate that would
take the beginning value to the ending value.
`,
		Fields: []calculator.Field{
			strict("beginningValue", "Beginning value"),
			strict("endingValue", "Ending value"),
			strict("years", "Years"),
		},
		Outputs: []calculator.Output{
			percentPlaces("cagr", "Compound annual growth rate", 2),
			percentPlaces("totalGrowth", "Total growth", 2),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			begin := in.Number("beginningValue")
			end := in.Number("endingValue")
			years := in.Number("years")

			var check validation.Checker
			check.Positive("beginningValue", begin)
			check.NonNegative("endingValue", end)
			check.Positive("years", years)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			multiple := end / begin
			cagr := (math.Pow(multiple, 1/years) - 1) * constants.PercentageMultiplier
			computable(&check, "years", cagr)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			res := calculator.NewResult()
			res.Set("cagr", cagr)
			res.Set("totalGrowth", (multiple-1)*constants.PercentageMultiplier)
			return res, nil
		},
	}
}
