package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"invest-appraisal/domain"
)

func newTestAppraisalService() *AppraisalService {
	s := NewAppraisalService(DefaultSettings(), NewAdvisorService(AdvisorConfig{}, nil), nil)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	return s
}

func TestAppraisalService_CalculateExampleScenario(t *testing.T) {
	svc := newTestAppraisalService()

	result, err := svc.Calculate(context.Background(), domain.AppraisalInput{
		Investment:  exampleInvestment,
		RatePercent: 10,
		Flows:       exampleFlows(),
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.Metrics.NPV-320457.57) > 0.01 {
		t.Errorf("npv: got %.4f", result.Metrics.NPV)
	}
	if !result.Metrics.IRR.Computable || math.Abs(result.Metrics.IRR.Rate-0.19804) > 1e-4 {
		t.Errorf("irr: got %+v", result.Metrics.IRR)
	}
	if math.Abs(result.Metrics.ROI-0.85) > 1e-12 {
		t.Errorf("roi: got %v", result.Metrics.ROI)
	}
	if !result.Metrics.Payback.Recoverable || result.Metrics.Payback.Years < 4 || result.Metrics.Payback.Years > 5 {
		t.Errorf("payback: got %+v", result.Metrics.Payback)
	}
	if result.Recommendation.Tier != domain.TierRecommended {
		t.Errorf("tier: got %s", result.Recommendation.Tier)
	}
	if result.Display.NPV != "320,458 DZD" {
		t.Errorf("display npv: got %q", result.Display.NPV)
	}
	if result.Display.ROI != "85.00 %" {
		t.Errorf("display roi: got %q", result.Display.ROI)
	}
	if result.Display.Payback != "4 years and 3 months" {
		t.Errorf("display payback: got %q", result.Display.Payback)
	}
	if result.Metadata.CalculationID == "" {
		t.Error("expected a calculation id")
	}
	if result.Metadata.CalculationDurationMs != 0 {
		t.Errorf("duration: got %d", result.Metadata.CalculationDurationMs)
	}
	if result.Explanation != "" {
		t.Errorf("explanation not requested, got %q", result.Explanation)
	}
}

func TestAppraisalService_CalculateSnapshotsFlows(t *testing.T) {
	svc := newTestAppraisalService()
	flows := exampleFlows()

	result, err := svc.Calculate(context.Background(), domain.AppraisalInput{
		Investment:  exampleInvestment,
		RatePercent: 10,
		Flows:       flows,
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flows[0] = -1
	if result.Input.Flows[0] != 250000 {
		t.Fatalf("result input aliases caller slice: %v", result.Input.Flows)
	}
}

func TestAppraisalService_CalculateRejectsInvalidInput(t *testing.T) {
	svc := newTestAppraisalService()
	three := []float64{1, 2, 3}

	cases := []struct {
		name  string
		input domain.AppraisalInput
	}{
		{"zero investment", domain.AppraisalInput{Investment: 0, RatePercent: 10, Flows: three}},
		{"negative investment", domain.AppraisalInput{Investment: -5, RatePercent: 10, Flows: three}},
		{"nan investment", domain.AppraisalInput{Investment: math.NaN(), RatePercent: 10, Flows: three}},
		{"huge investment", domain.AppraisalInput{Investment: 2e12, RatePercent: 10, Flows: three}},
		{"negative rate", domain.AppraisalInput{Investment: 100, RatePercent: -1, Flows: three}},
		{"huge rate", domain.AppraisalInput{Investment: 100, RatePercent: 1001, Flows: three}},
		{"too few flows", domain.AppraisalInput{Investment: 100, RatePercent: 10, Flows: []float64{1, 2}}},
		{"too many flows", domain.AppraisalInput{Investment: 100, RatePercent: 10, Flows: make([]float64, 31)}},
		{"infinite flow", domain.AppraisalInput{Investment: 100, RatePercent: 10, Flows: []float64{1, math.Inf(1), 3}}},
		{"huge flow", domain.AppraisalInput{Investment: 100, RatePercent: 10, Flows: []float64{1, -2e12, 3}}},
	}
	for _, c := range cases {
		_, err := svc.Calculate(context.Background(), c.input, false)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestAppraisalService_CalculateAcceptsBoundaryInput(t *testing.T) {
	svc := newTestAppraisalService()

	_, err := svc.Calculate(context.Background(), domain.AppraisalInput{
		Investment:  100,
		RatePercent: 0,
		Flows:       make([]float64, 30),
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAppraisalService_CalculateWithFallbackExplanation(t *testing.T) {
	svc := newTestAppraisalService()

	result, err := svc.Calculate(context.Background(), domain.AppraisalInput{
		Investment:  exampleInvestment,
		RatePercent: 10,
		Flows:       exampleFlows(),
	}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(result.Explanation, "Project recommended.") {
		t.Fatalf("unexpected explanation: %q", result.Explanation)
	}
	if !strings.Contains(result.Explanation, "320,458 DZD") {
		t.Errorf("explanation misses the NPV: %q", result.Explanation)
	}
}

func TestAppraisalService_NotComputableIRRStillReturnsResult(t *testing.T) {
	svc := newTestAppraisalService()

	result, err := svc.Calculate(context.Background(), domain.AppraisalInput{
		Investment:  100,
		RatePercent: 10,
		Flows:       []float64{-10, -20, -5},
	}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Metrics.IRR.Computable {
		t.Errorf("expected IRR not computable, got %+v", result.Metrics.IRR)
	}
	if result.Metrics.Payback.Recoverable {
		t.Errorf("expected payback not recoverable, got %+v", result.Metrics.Payback)
	}
	if result.Interpretations.IRR.Code != "IRR_NOT_COMPUTABLE" {
		t.Errorf("irr code: %s", result.Interpretations.IRR.Code)
	}
	if result.Recommendation.Tier != domain.TierNotRecommended {
		t.Errorf("tier: %s", result.Recommendation.Tier)
	}
}
