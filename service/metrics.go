package service

import (
	"fmt"
	"math"

	"invest-appraisal/domain"
)

// IRRParams bounds the work of the IRR search.
type IRRParams struct {
	Low           float64
	High          float64
	Tolerance     float64
	MaxIterations int
}

var DefaultIRRParams = IRRParams{
	Low:           IRRLowerBound,
	High:          IRRUpperBound,
	Tolerance:     IRRTolerance,
	MaxIterations: IRRMaxIterations,
}

// npvAt discounts flows at a fractional rate; flows[0] is year 1.
func npvAt(rate, investment float64, flows []float64) float64 {
	npv := -investment
	for i, f := range flows {
		npv += f / math.Pow(1+rate, float64(i+1))
	}
	return npv
}

// NPV returns the net present value of flows at ratePercent (10 means 10%).
func NPV(ratePercent, investment float64, flows []float64) float64 {
	return npvAt(ratePercent/100, investment, flows)
}

// IRR finds the internal rate of return with the default bracket and limits.
func IRR(investment float64, flows []float64) domain.IRR {
	return SolveIRR(investment, flows, DefaultIRRParams)
}

// SolveIRR bisects [p.Low, p.High] for the rate where NPV is zero. The result
// is not computable when NPV has the same sign at both ends of the bracket.
func SolveIRR(investment float64, flows []float64, p IRRParams) domain.IRR {
	low, high := p.Low, p.High
	npvLow := npvAt(low, investment, flows)
	npvHigh := npvAt(high, investment, flows)
	if math.IsNaN(npvLow) || math.IsNaN(npvHigh) || npvLow*npvHigh > 0 {
		return domain.IRR{}
	}

	for i := 0; i < p.MaxIterations && high-low > p.Tolerance; i++ {
		mid := (low + high) / 2
		npvMid := npvAt(mid, investment, flows)
		if math.Abs(npvMid) < p.Tolerance {
			return domain.IRR{Rate: mid, Computable: true}
		}
		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low = mid
			npvLow = npvMid
		}
	}
	return domain.IRR{Rate: (low + high) / 2, Computable: true}
}

// ROI returns the net gain over the investment as a fraction.
func ROI(investment float64, flows []float64) float64 {
	if investment == 0 {
		return math.NaN()
	}
	var total float64
	for _, f := range flows {
		total += f
	}
	return (total - investment) / investment
}

// DiscountedPayback returns the fractional number of years after which the
// cumulative discounted flows reach the investment.
func DiscountedPayback(investment float64, flows []float64, ratePercent float64) domain.Payback {
	rate := ratePercent / 100
	var cumulative float64
	for i, f := range flows {
		discounted := f / math.Pow(1+rate, float64(i+1))
		previous := cumulative
		cumulative += discounted
		if cumulative >= investment {
			return domain.Payback{
				Years:       float64(i) + (investment-previous)/discounted,
				Recoverable: true,
			}
		}
	}
	return domain.Payback{}
}

const NotRecoverableLabel = "Not recoverable"

// YearsMonthsLabel renders fractional years as "N years and M months".
// Months that round up to 12 carry into the year count.
func YearsMonthsLabel(decimalYears float64) string {
	if math.IsNaN(decimalYears) || math.IsInf(decimalYears, 0) {
		return NotRecoverableLabel
	}

	years := int(math.Floor(decimalYears))
	months := int(math.Round((decimalYears - float64(years)) * 12))
	if months == 12 {
		return plural(years+1, "year")
	}

	var label string
	if years > 0 {
		label = plural(years, "year")
	}
	if months > 0 {
		if label != "" {
			label += " and "
		}
		label += plural(months, "month")
	}
	if label == "" {
		return "0 months"
	}
	return label
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
