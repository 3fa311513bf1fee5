package formulas

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// Social Security estimate constants. The benefit uses a flat multiplier
// on AIME rather than the bend-point formula.
const (
	wageBase2024        = 168600.0
	careerStartAge      = 22.0
	computationYears    = 35.0
	benefitMultiplier   = 0.42
	earlyReductionFirst = 0.0056
	earlyReductionLater = 0.0042
	delayedCreditFirst  = 0.0067
	delayedCreditLater  = 0.0042
	firstTierMonths     = 36
)

func socialSecuritySpec() calculator.Spec {
	return calculator.Spec{
		ID:       "social-security",
		Title:    "Social Security Benefit Estimator",
		Category: CategoryRetirement,
		Summary:  "Rough monthly benefit from earnings and claiming age.",
		About: `## How it works

This is a simplified estimate:

1. Earnings are capped at the 2024 wage base ($168,600).
2. AIME spreads the capped earnings over the years worked since 22
   (at most 35) and divides by 12.
3. The primary insurance amount is 42% of AIME.
4. Claiming before full retirement age reduces the benefit by 0.56% a
   month for the first 36 months and 0.42% a month after that. Claiming
   later adds 0.67% a month for the first 36 months and 0.42% a month
   after that.

| Born | Full retirement age |
|---|---|
| 1937 or earlier | 65 |
| 1938 to 1942 | 65 and 2 to 10 months |
| 1943 to 1954 | 66 |
| 1955 to 1959 | 66 and 2 to 10 months |
| 1960 or later | 67 |

Use your statement from the Social Security Administration for an
official figure.
`,
		Fields: []calculator.Field{
			strict("birthYear", "Birth year"),
			strict("currentAge", "Current age"),
			strict("retirementAge", "Claiming age"),
			strict("annualIncome", "Average annual income"),
		},
		Outputs: []calculator.Output{
			output("fullRetirementAge", "Full retirement age", calculator.Text),
			output("aime", "Average indexed monthly earnings", calculator.Currency),
			output("primaryInsuranceAmount", "Benefit at full retirement age", calculator.Currency),
			percentPlaces("adjustment", "Claiming-age adjustment", 1),
			output("monthlyBenefit", "Estimated monthly benefit", calculator.Currency),
			output("annualBenefit", "Estimated annual benefit", calculator.Currency),
			{Name: "yearsUntilClaim", Label: "Time until claiming", Format: calculator.Years},
		},
		Evaluate: evaluateSocialSecurity,
	}
}

func evaluateSocialSecurity(in calculator.Inputs) (calculator.Result, error) {
	birthYear := in.Number("birthYear")
	currentAge := in.Number("currentAge")
	claimAge := in.Number("retirementAge")
	income := in.Number("annualIncome")

	var check validation.Checker
	check.Range("birthYear", birthYear, 1900, 2100)
	check.Whole("birthYear", birthYear)
	check.Range("currentAge", currentAge, 0, 120)
	check.Range("retirementAge", claimAge, 62, 70)
	if currentAge > claimAge {
		check.Add("currentAge", "must not be greater than the claiming age")
	}
	check.NonNegative("annualIncome", income)
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	fraMonths := fullRetirementAgeMonths(int(birthYear))
	workYears := mathutil.Clamp(claimAge-careerStartAge, 0, computationYears)
	aime := math.Min(income, wageBase2024) * workYears / computationYears / constants.MonthsPerYear
	pia := aime * benefitMultiplier

	offset := int(math.Round(claimAge*constants.MonthsPerYear)) - fraMonths
	factor := claimingFactor(offset)
	monthly := pia * factor

	res := calculator.NewResult()
	res.Text["fullRetirementAge"] = formatAge(fraMonths)
	res.Set("aime", aime)
	res.Set("primaryInsuranceAmount", pia)
	res.Set("adjustment", (factor-1)*constants.PercentageMultiplier)
	res.Set("monthlyBenefit", monthly)
	res.Set("annualBenefit", monthly*constants.MonthsPerYear)
	res.Set("yearsUntilClaim", claimAge-currentAge)

	switch {
	case offset < 0:
		res.Label, res.Status = "Early claiming reduces the benefit", calculator.StatusWarning
	case offset > 0:
		res.Label, res.Status = "Delayed claiming increases the benefit", calculator.StatusHealthy
	default:
		res.Label, res.Status = "Claiming at full retirement age", calculator.StatusNeutral
	}
	return res, nil
}

// fullRetirementAgeMonths returns the full retirement age in months.
func fullRetirementAgeMonths(birthYear int) int {
	switch {
	case birthYear <= 1937:
		return 65 * 12
	case birthYear <= 1942:
		return 65*12 + 2*(birthYear-1937)
	case birthYear <= 1954:
		return 66 * 12
	case birthYear <= 1959:
		return 66*12 + 2*(birthYear-1954)
	default:
		return 67 * 12
	}
}

// claimingFactor returns the benefit multiplier for claiming offset months
// after (positive) or before (negative) full retirement age.
func claimingFactor(offset int) float64 {
	if offset == 0 {
		return 1
	}
	months := offset
	first, later := delayedCreditFirst, delayedCreditLater
	sign := 1.0
	if offset < 0 {
		months = -offset
		first, later = earlyReductionFirst, earlyReductionLater
		sign = -1
	}
	tier := months
	if tier > firstTierMonths {
		tier = firstTierMonths
	}
	change := float64(tier)*first + float64(months-tier)*later
	return 1 + sign*change
}

func formatAge(months int) string {
	years, rem := months/12, months%12
	if rem == 0 {
		return fmt.Sprintf("%d", years)
	}
	return fmt.Sprintf("%d and %d months", years, rem)
}
