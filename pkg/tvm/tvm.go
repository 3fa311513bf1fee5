// Package tvm provides time-value-of-money primitives shared by the growth
// and valuation calculators. Rates are annual percentages (8 means 8%).
package tvm

import (
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

// GrowthFactor returns (1 + r/n)^(n*t) for an annual rate in percent.
// A non-positive periodsPerYear is treated as annual compounding.
func GrowthFactor(annualRate float64, periodsPerYear int, years float64) float64 {
	if periodsPerYear <= 0 {
		periodsPerYear = 1
	}
	n := float64(periodsPerYear)
	periodic := annualRate / constants.PercentageMultiplier / n
	return math.Pow(1+periodic, n*years)
}

// FutureValue compounds a present amount forward.
func FutureValue(presentValue, annualRate float64, periodsPerYear int, years float64) float64 {
	return presentValue * GrowthFactor(annualRate, periodsPerYear, years)
}

// PresentValue discounts a future amount back; it is the inverse of FutureValue.
func PresentValue(futureValue, annualRate float64, periodsPerYear int, years float64) float64 {
	return futureValue / GrowthFactor(annualRate, periodsPerYear, years)
}

// AnnuityFutureValue returns the future value of a payment made at the end
// of every compounding period.
func AnnuityFutureValue(payment, annualRate float64, periodsPerYear int, years float64) float64 {
	if periodsPerYear <= 0 {
		periodsPerYear = 1
	}
	periods := float64(periodsPerYear) * years
	if annualRate == 0 {
		return payment * periods
	}
	periodic := annualRate / constants.PercentageMultiplier / float64(periodsPerYear)
	return payment * (math.Pow(1+periodic, periods) - 1) / periodic
}

// DiscountFactor returns 1/(1+r)^t for an annual rate in percent.
func DiscountFactor(rate, period float64) float64 {
	return 1 / math.Pow(1+rate/constants.PercentageMultiplier, period)
}

// PresentValueOfFlows discounts flows[i] as received at the end of year i+1
// and returns the sum.
func PresentValueOfFlows(rate float64, flows []float64) float64 {
	total := 0.0
	for i, flow := range flows {
		total += flow * DiscountFactor(rate, float64(i+1))
	}
	return total
}
