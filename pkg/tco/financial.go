package tco

import "math"

// LoanPayment computes the level annual payment for a loan using the
// standard annuity formula:
//
//	P * r(1+r)^n / ((1+r)^n - 1)
//
// At 0% interest the payment is principal / term exactly.
func LoanPayment(principal, rate float64, termYears int) float64 {
	if termYears <= 0 {
		return 0
	}
	if rate <= 0 {
		return principal / float64(termYears)
	}
	factor := math.Pow(1+rate, float64(termYears))
	return principal * rate * factor / (factor - 1)
}

// LoanPeriod is one row of an amortization schedule.
type LoanPeriod struct {
	Period    int     `json:"period"` // 1-based year
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Remaining float64 `json:"remaining"`
}

// LoanSchedule generates the full annual amortization schedule. The final
// period retires the exact remaining principal so rounding drift never
// leaves a residual balance.
func LoanSchedule(principal, rate float64, termYears int) []LoanPeriod {
	if termYears <= 0 || principal <= 0 {
		return nil
	}

	payment := LoanPayment(principal, rate, termYears)
	remaining := principal
	schedule := make([]LoanPeriod, 0, termYears)

	for period := 1; period <= termYears; period++ {
		interest := remaining * rate
		principalPart := payment - interest
		if period == termYears {
			principalPart = remaining
			payment = principalPart + interest
		}
		remaining -= principalPart
		if remaining < 0 {
			remaining = 0
		}
		schedule = append(schedule, LoanPeriod{
			Period:    period,
			Payment:   payment,
			Principal: principalPart,
			Interest:  interest,
			Remaining: remaining,
		})
	}
	return schedule
}

// NPV computes the net present value of a series of annual cash flows,
// where cashflows[0] occurs now and cashflows[i] at the end of year i.
func NPV(cashflows []float64, rate float64) float64 {
	total := 0.0
	for i, cf := range cashflows {
		total += cf / math.Pow(1+rate, float64(i))
	}
	return total
}
