// Package loans provides common loan processing utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given payment.
type Payment struct {
	Number             int
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// Summary aggregates a full amortization schedule.
type Summary struct {
	MonthlyPayment float64
	Payments       int
	TotalPaid      float64
	TotalInterest  float64
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}

	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	// Written with a negative exponent so very long terms tend to
	// interest-only instead of overflowing.
	discountFactor := 1.00 - math.Pow(1.00+periodicInterestRate, -float64(termMonths))
	return principal * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// Summarize computes payment totals without building the schedule.
// TotalInterest is exactly MonthlyPayment*Payments - principal.
func Summarize(principal, annualInterestRate float64, termMonths int) Summary {
	monthly := CalculateMonthlyPayment(principal, annualInterestRate, termMonths)
	totalPaid := monthly * float64(termMonths)
	return Summary{
		MonthlyPayment: monthly,
		Payments:       termMonths,
		TotalPaid:      totalPaid,
		TotalInterest:  totalPaid - principal,
	}
}

// AmortizationScheduleGenerator provides utilities for generating loan amortization schedules
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// FirstPayments builds the first count payments of the month-by-month
// schedule for a fully amortizing loan; a count of termMonths or more
// yields the whole schedule. The final payment absorbs floating drift so
// the remaining principal ends at exactly zero.
func (g *AmortizationScheduleGenerator) FirstPayments(principal, annualInterestRate float64, termMonths, count int) ([]Payment, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be at least one payment, got %d", count)
	}
	if termMonths <= 0 {
		return nil, fmt.Errorf("term must be at least one month, got %d", termMonths)
	}
	if principal < 0 {
		return nil, fmt.Errorf("principal must be non-negative, got %.2f", principal)
	}
	if count > termMonths {
		count = termMonths
	}

	monthlyPayment := CalculateMonthlyPayment(principal, annualInterestRate, termMonths)
	schedule := make([]Payment, 0, count)
	remaining := principal

	for month := 1; month <= count; month++ {
		current := Payment{Number: month}
		current.Interest = CalculateInterestPayment(remaining, annualInterestRate)
		current.Principal = monthlyPayment - current.Interest
		current.Payment = monthlyPayment

		if month == termMonths || mathutil.IsZero(remaining-current.Principal) {
			// We will get machine error otherwise so just settle the balance.
			if drift := remaining - current.Principal; drift != 0 {
				g.logger.Debug(fmt.Sprintf("settling final payment %d with drift %.6f", month, drift),
					zap.String("op", "loans.FirstPayments"),
				)
			}
			current.Principal = remaining
			current.Payment = current.Principal + current.Interest
			current.RemainingPrincipal = 0
			schedule = append(schedule, current)
			break
		}

		remaining -= current.Principal
		current.RemainingPrincipal = remaining
		schedule = append(schedule, current)
	}

	return schedule, nil
}

// InterestBetween sums the interest of payments numbered first..last inclusive.
func InterestBetween(schedule []Payment, first, last int) float64 {
	total := 0.0
	for _, payment := range schedule {
		if payment.Number >= first && payment.Number <= last {
			total += payment.Interest
		}
	}
	return total
}
