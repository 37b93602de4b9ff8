package service

import (
	"testing"

	"invest-appraisal/domain"
)

func TestInterpretNPV(t *testing.T) {
	cases := []struct {
		npv  float64
		code string
		band domain.Band
	}{
		{320457.57, "NPV_POSITIVE", domain.BandPositive},
		{1e-9, "NPV_POSITIVE", domain.BandPositive},
		{0, "NPV_ZERO", domain.BandNeutral},
		{-1e-9, "NPV_NEGATIVE", domain.BandNegative},
	}
	for _, c := range cases {
		got := InterpretNPV(c.npv)
		if got.Code != c.code || got.Band != c.band {
			t.Errorf("InterpretNPV(%v) = %s/%s, want %s/%s", c.npv, got.Code, got.Band, c.code, c.band)
		}
		if got.Text == "" {
			t.Errorf("InterpretNPV(%v): empty text", c.npv)
		}
	}
}

func TestInterpretIRR(t *testing.T) {
	cases := []struct {
		name string
		irr  domain.IRR
		rate float64
		code string
		band domain.Band
	}{
		{"not computable", domain.IRR{}, 10, "IRR_NOT_COMPUTABLE", domain.BandNegative},
		{"well above rate", domain.IRR{Rate: 0.19804, Computable: true}, 10, "IRR_EXCELLENT", domain.BandExcellent},
		{"margin boundary", domain.IRR{Rate: 0.15, Computable: true}, 10, "IRR_SATISFACTORY", domain.BandPositive},
		{"just above rate", domain.IRR{Rate: 0.12, Computable: true}, 10, "IRR_SATISFACTORY", domain.BandPositive},
		{"equal to rate", domain.IRR{Rate: 0.10, Computable: true}, 10, "IRR_BREAK_EVEN", domain.BandNeutral},
		{"within tolerance below", domain.IRR{Rate: 0.0995, Computable: true}, 10, "IRR_BREAK_EVEN", domain.BandNeutral},
		{"below rate", domain.IRR{Rate: 0.05, Computable: true}, 10, "IRR_INSUFFICIENT", domain.BandNegative},
		{"negative irr", domain.IRR{Rate: -0.42, Computable: true}, 0, "IRR_INSUFFICIENT", domain.BandNegative},
	}
	for _, c := range cases {
		got := InterpretIRR(c.irr, c.rate)
		if got.Code != c.code || got.Band != c.band {
			t.Errorf("%s: got %s/%s, want %s/%s", c.name, got.Code, got.Band, c.code, c.band)
		}
	}
}

func TestInterpretROI(t *testing.T) {
	cases := []struct {
		roi  float64
		code string
		band domain.Band
	}{
		{1.5, "ROI_EXCEPTIONAL", domain.BandExcellent},
		{1.0, "ROI_VERY_GOOD", domain.BandPositive},
		{0.85, "ROI_VERY_GOOD", domain.BandPositive},
		{0.5, "ROI_SATISFACTORY", domain.BandPositive},
		{0.3, "ROI_SATISFACTORY", domain.BandPositive},
		{0.2, "ROI_LOW", domain.BandWeak},
		{0.01, "ROI_LOW", domain.BandWeak},
		{0, "ROI_NEGATIVE", domain.BandNegative},
		{-0.4, "ROI_NEGATIVE", domain.BandNegative},
	}
	for _, c := range cases {
		got := InterpretROI(c.roi)
		if got.Code != c.code || got.Band != c.band {
			t.Errorf("InterpretROI(%v) = %s/%s, want %s/%s", c.roi, got.Code, got.Band, c.code, c.band)
		}
	}
}

func TestInterpretPayback(t *testing.T) {
	cases := []struct {
		p    domain.Payback
		code string
		band domain.Band
	}{
		{domain.Payback{}, "PAYBACK_IMPOSSIBLE", domain.BandNegative},
		{domain.Payback{Years: 1.2, Recoverable: true}, "PAYBACK_VERY_FAST", domain.BandExcellent},
		{domain.Payback{Years: 2, Recoverable: true}, "PAYBACK_VERY_FAST", domain.BandExcellent},
		{domain.Payback{Years: 3.7, Recoverable: true}, "PAYBACK_ACCEPTABLE", domain.BandPositive},
		{domain.Payback{Years: 4, Recoverable: true}, "PAYBACK_ACCEPTABLE", domain.BandPositive},
		{domain.Payback{Years: 4.248875, Recoverable: true}, "PAYBACK_SLOW", domain.BandWeak},
		{domain.Payback{Years: 6, Recoverable: true}, "PAYBACK_SLOW", domain.BandWeak},
		{domain.Payback{Years: 6.01, Recoverable: true}, "PAYBACK_VERY_SLOW", domain.BandNegative},
	}
	for _, c := range cases {
		got := InterpretPayback(c.p)
		if got.Code != c.code || got.Band != c.band {
			t.Errorf("InterpretPayback(%+v) = %s/%s, want %s/%s", c.p, got.Code, got.Band, c.code, c.band)
		}
	}
}

func TestInterpret_ExampleScenario(t *testing.T) {
	flows := exampleFlows()
	m := domain.Metrics{
		NPV:     NPV(10, exampleInvestment, flows),
		IRR:     IRR(exampleInvestment, flows),
		ROI:     ROI(exampleInvestment, flows),
		Payback: DiscountedPayback(exampleInvestment, flows, 10),
	}

	got := Interpret(m, 10)

	if got.NPV.Code != "NPV_POSITIVE" {
		t.Errorf("npv: %s", got.NPV.Code)
	}
	if got.IRR.Code != "IRR_EXCELLENT" {
		t.Errorf("irr: %s", got.IRR.Code)
	}
	if got.ROI.Code != "ROI_VERY_GOOD" {
		t.Errorf("roi: %s", got.ROI.Code)
	}
	if got.Payback.Code != "PAYBACK_SLOW" {
		t.Errorf("payback: %s", got.Payback.Code)
	}
}
