package formulas

import (
	"math"

	"github.com/iwvelando/finance-calculators/internal/calculator"
	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/validation"
)

// maxBondPeriods bounds the cash flow loop (100 years of semiannual coupons).
const maxBondPeriods = 200

func bondDurationSpec() calculator.Spec {
	return calculator.Spec{
		ID:       "bond-duration",
		Title:    "Bond Duration & Convexity Calculator",
		Category: CategoryBonds,
		Summary:  "Price, Macaulay and modified duration, and convexity of a fixed-coupon bond.",
		About: `## How it works

Every coupon and the final repayment of face value are discounted at the
periodic yield *y/f*:

    price     = Σ CFₜ ÷ (1 + y/f)^t
    Macaulay  = Σ t × PV(CFₜ) ÷ price ÷ f
    modified  = Macaulay ÷ (1 + y/f)
    convexity = Σ t(t + 1) × PV(CFₜ) ÷ (price × (1 + y/f)² × f²)

Coupons are paid once (*f* = 1) or twice (*f* = 2) a year.

## Tips

- Modified duration approximates the percent price change for a one
  point move in yield.
- Zero-coupon bonds have a Macaulay duration equal to their maturity.
`,
		Fields: []calculator.Field{
			strict("faceValue", "Face value"),
			strict("couponRate", "Annual coupon rate (%)"),
			strict("yield", "Yield to maturity (%)"),
			strict("yearsToMaturity", "Years to maturity"),
			permissive("frequency", "Coupons per year (1 or 2)", 2),
		},
		Outputs: []calculator.Output{
			output("price", "Price", calculator.Currency),
			{Name: "macaulayDuration", Label: "Macaulay duration (years)", Format: calculator.Decimal, Decimals: 4},
			{Name: "modifiedDuration", Label: "Modified duration", Format: calculator.Decimal, Decimals: 4},
			{Name: "convexity", Label: "Convexity", Format: calculator.Decimal, Decimals: 4},
		},
		Evaluate: evaluateBond,
	}
}

// bondMetrics holds the discounted cash flow sums for one bond.
type bondMetrics struct {
	price     float64
	macaulay  float64
	modified  float64
	convexity float64
}

func evaluateBond(in calculator.Inputs) (calculator.Result, error) {
	face := in.Number("faceValue")
	coupon := in.Number("couponRate")
	yield := in.Number("yield")
	years := in.Number("yearsToMaturity")
	freq := in.Number("frequency")

	var check validation.Checker
	check.Positive("faceValue", face)
	ratePercent(&check, "couponRate", coupon)
	ratePercent(&check, "yield", yield)
	check.Positive("yearsToMaturity", years)
	if freq != 1 && freq != 2 {
		check.Add("frequency", "must be 1 or 2")
	}
	periods := years * freq
	if years > 0 && (freq == 1 || freq == 2) {
		if math.Abs(periods-math.Round(periods)) > constants.UnitEpsilon {
			check.Add("yearsToMaturity", "must be a whole number of coupon periods")
		} else if periods > maxBondPeriods {
			check.Addf("yearsToMaturity", "must not exceed %d coupon periods", maxBondPeriods)
		}
	}
	if err := check.Err(); err != nil {
		return rejected(err)
	}

	m := bondCashFlows(face, coupon, yield, int(freq), int(math.Round(periods)))

	res := calculator.NewResult()
	res.Set("price", m.price)
	res.Set("macaulayDuration", m.macaulay)
	res.Set("modifiedDuration", m.modified)
	res.Set("convexity", m.convexity)
	return res, nil
}

// bondCashFlows walks every coupon period, including the final one that
// repays the face value.
func bondCashFlows(face, couponRate, yield float64, freq, periods int) bondMetrics {
	f := float64(freq)
	coupon := face * couponRate / constants.PercentageMultiplier / f
	y := yield / constants.PercentageMultiplier / f

	var price, weighted, second float64
	for t := 1; t <= periods; t++ {
		cf := coupon
		if t == periods {
			cf += face
		}
		pv := cf / math.Pow(1+y, float64(t))
		price += pv
		weighted += float64(t) * pv
		second += float64(t*(t+1)) * pv
	}

	macaulay := weighted / price / f
	return bondMetrics{
		price:     price,
		macaulay:  macaulay,
		modified:  macaulay / (1 + y),
		convexity: second / (price * math.Pow(1+y, 2) * f * f),
	}
}
