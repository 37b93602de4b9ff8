package service

import (
	"math"
	"testing"

	"invest-appraisal/domain"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{320457.5718, "320,458 DZD"},
		{1000000, "1,000,000 DZD"},
		{999.4, "999 DZD"},
		{-75.13, "-75 DZD"},
		{-1234567.8, "-1,234,568 DZD"},
		{-0.3, "0 DZD"},
		{0, "0 DZD"},
		{math.NaN(), "—"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.value, "DZD"); got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{0.85, "85.00 %"},
		{0.1980394548, "19.80 %"},
		{-0.4, "-40.00 %"},
		{math.Inf(-1), "—"},
	}
	for _, c := range cases {
		if got := FormatPercent(c.value); got != c.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", c.value, got, c.want)
		}
	}
}

func TestFormatMetrics_MissingValues(t *testing.T) {
	d := FormatMetrics(domain.Metrics{NPV: -129.38, ROI: -1.35}, "EUR")

	if d.NPV != "-129 EUR" {
		t.Errorf("npv: %q", d.NPV)
	}
	if d.IRR != "—" {
		t.Errorf("irr: %q", d.IRR)
	}
	if d.Payback != NotRecoverableLabel {
		t.Errorf("payback: %q", d.Payback)
	}
}
