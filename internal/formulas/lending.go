package formulas

import (
	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/loans"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// pmiThreshold is the down payment share below which lenders usually
// require private mortgage insurance.
const pmiThreshold = 20.0

func loanSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "loan",
		Title:    "Loan Payment Calculator",
		Category: CategoryLending,
		Summary:  "Monthly payment and total interest for a fully amortizing loan.",
		About: `## How it works

The monthly payment follows the standard amortization formula:

    M = P × i(1 + i)^n / ((1 + i)^n − 1)

where *P* is the loan amount, *i* the monthly rate (annual rate ÷ 12) and
*n* the number of monthly payments. At a 0% rate the payment is simply
P ÷ n.

## Tips

- A shorter term raises the payment but cuts total interest sharply.
- Compare offers by total interest, not only by monthly payment.
`,
		Fields: []calculator.Field{
			strict("principal", "Loan amount"),
			strict("annualRate", "Annual interest rate (%)"),
			strict("termYears", "Loan term (years)"),
		},
		Outputs: []calculator.Output{
			output("monthlyPayment", "Monthly payment", calculator.Currency),
			output("numberOfPayments", "Number of payments", calculator.Count),
			output("totalPayment", "Total of all payments", calculator.Currency),
			output("totalInterest", "Total interest", calculator.Currency),
		},
		Evaluate: evaluateLoan,
	}
}

func evaluateLoan(in calculator.Inputs) (calculator.Result, error) {
	principal := in.Number("principal")
	rate := in.Number("annualRate")
	years := in.Number("termYears")

	var check validation.Checker
	check.Positive("principal", principal)
	ratePercent(&check, "annualRate", rate)
	duration(&check, "termYears", years, maxTermYears)
	months := termMonths(years)
	if years > 0 && months < 1 {
		check.Add("termYears", "must cover at least one monthly payment")
	}
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	summary := loans.Summarize(principal, rate, months)

	res := calculator.NewResult()
	res.Set("monthlyPayment", summary.MonthlyPayment)
	res.Set("numberOfPayments", float64(summary.Payments))
	res.Set("totalPayment", summary.TotalPaid)
	res.Set("totalInterest", summary.TotalInterest)
	return res, nil
}

func mortgageSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "mortgage",
		Title:    "Mortgage Calculator",
		Category: CategoryLending,
		Summary:  "Loan amount, monthly payment and lifetime interest for a home purchase.",
		About: `## How it works

The loan amount is the home value minus the down payment. Principal and
interest use the amortization formula; property tax and insurance, when
entered as annual amounts, are spread evenly over twelve months.

| Down payment | What to expect |
|---|---|
| Under 20% | Private mortgage insurance is usually required |
| 20% or more | No PMI on most conventional loans |

## Tips

- Each extra percent of down payment lowers both the payment and the
  interest paid over the life of the loan.
- Interest is front-loaded: the first year's interest is shown separately.
`,
		Fields: []calculator.Field{
			strict("homeValue", "Home value"),
			permissive("downPayment", "Down payment", 0),
			strict("annualRate", "Annual interest rate (%)"),
			strict("termYears", "Loan term (years)"),
			optional("propertyTax", "Annual property tax"),
			optional("insurance", "Annual home insurance"),
		},
		Outputs: []calculator.Output{
			output("loanAmount", "Loan amount", calculator.Currency),
			percentPlaces("downPaymentPercent", "Down payment", 1),
			output("monthlyPayment", "Monthly principal & interest", calculator.Currency),
			output("monthlyTaxesAndInsurance", "Monthly taxes & insurance", calculator.Currency),
			output("totalMonthlyPayment", "Total monthly payment", calculator.Currency),
			output("totalInterest", "Total interest", calculator.Currency),
			output("firstYearInterest", "Interest paid in year one", calculator.Currency),
		},
		Evaluate: evaluateMortgage,
	}
}

func evaluateMortgage(in calculator.Inputs) (calculator.Result, error) {
	homeValue := in.Number("homeValue")
	down := in.Number("downPayment")
	rate := in.Number("annualRate")
	years := in.Number("termYears")

	var check validation.Checker
	check.Positive("homeValue", homeValue)
	check.NonNegative("downPayment", down)
	if homeValue > 0 && down >= homeValue {
		check.Add("downPayment", "must be less than the home value")
	}
	ratePercent(&check, "annualRate", rate)
	duration(&check, "termYears", years, maxTermYears)
	months := termMonths(years)
	if years > 0 && months < 1 {
		check.Add("termYears", "must cover at least one monthly payment")
	}
	if in.Has("propertyTax") {
		check.NonNegative("propertyTax", in.Number("propertyTax"))
	}
	if in.Has("insurance") {
		check.NonNegative("insurance", in.Number("insurance"))
	}
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	loanAmount := homeValue - down
	summary := loans.Summarize(loanAmount, rate, months)

	firstYear, err := loans.NewAmortizationScheduleGenerator(nil).FirstPayments(loanAmount, rate, months, constants.MonthsPerYear)
	if err != nil {
		return rejected(err)
	}

	res := calculator.NewResult()
	res.Set("loanAmount", loanAmount)
	downPercent := mathutil.CalculatePercentage(down, homeValue)
	res.Set("downPaymentPercent", downPercent)
	res.Set("monthlyPayment", summary.MonthlyPayment)

	total := summary.MonthlyPayment
	if in.Has("propertyTax") || in.Has("insurance") {
		escrow := (in.Number("propertyTax") + in.Number("insurance")) / constants.MonthsPerYear
		res.Set("monthlyTaxesAndInsurance", escrow)
		total += escrow
	}
	res.Set("totalMonthlyPayment", total)
	res.Set("totalInterest", summary.TotalInterest)
	res.Set("firstYearInterest", loans.InterestBetween(firstYear, 1, constants.MonthsPerYear))

	if downPercent < pmiThreshold {
		res.Label = "Private mortgage insurance likely"
		res.Status = calculator.StatusWarning
	} else {
		res.Label = "No private mortgage insurance expected"
		res.Status = calculator.StatusHealthy
	}
	return res, nil
}

func simpleInterestSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "simple-interest",
		Title:    "Simple Interest Calculator",
		Category: CategoryLending,
		Summary:  "Interest earned or owed without compounding.",
		About: `## How it works

    I = P × r × t

Interest accrues only on the original principal, so it grows linearly
with time.
`,
		Fields: []calculator.Field{
			strict("principal", "Principal"),
			strict("annualRate", "Annual interest rate (%)"),
			strict("years", "Time (years)"),
		},
		Outputs: []calculator.Output{
			output("interest", "Interest", calculator.Currency),
			output("totalAmount", "Total amount", calculator.Currency),
		},
		Evaluate: func(in calculator.Inputs) (calculator.Result, error) {
			principal := in.Number("principal")
			rate := in.Number("annualRate")
			years := in.Number("years")

			var check validation.Checker
			check.NonNegative("principal", principal)
			ratePercent(&check, "annualRate", rate)
			duration(&check, "years", years, maxHorizonYears)
			if err := check.Err(); err != nil {
				return rejected(err)
			}

			interest := mathutil.ApplyPercentage(principal, rate) * years
			res := calculator.NewResult()
			res.Set("interest", interest)
			res.Set("totalAmount", principal+interest)
			return res, nil
		},
	}
}
