package service

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"invest-appraisal/domain"
)

const missingLabel = "—"

var hundred = decimal.NewFromInt(100)

// FormatCurrency rounds to whole units and groups thousands: "1,234,567 DZD".
func FormatCurrency(value float64, currency string) string {
	if !finite(value) {
		return missingLabel
	}
	digits := decimal.NewFromFloat(value).Round(0).StringFixed(0)

	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if digits == "0" {
		sign = ""
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + " " + currency
}

// FormatPercent renders a fraction as a percentage with two decimals: "19.80 %".
func FormatPercent(fraction float64) string {
	if !finite(fraction) {
		return missingLabel
	}
	return decimal.NewFromFloat(fraction).Mul(hundred).StringFixed(2) + " %"
}

func FormatMetrics(m domain.Metrics, currency string) domain.Display {
	return domain.Display{
		NPV:     FormatCurrency(m.NPV, currency),
		IRR:     FormatPercent(m.IRR.Float64()),
		ROI:     FormatPercent(m.ROI),
		Payback: YearsMonthsLabel(m.Payback.Float64()),
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
