package domain

import (
	"math"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func TestMetrics_MissingValuesEncodeAsNull(t *testing.T) {
	b, err := json.Marshal(Metrics{NPV: -10, ROI: -0.35})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(b)
	if !strings.Contains(got, `"irr":null`) || !strings.Contains(got, `"payback_years":null`) {
		t.Fatalf("unexpected encoding: %s", got)
	}
}

func TestMetrics_RoundTrip(t *testing.T) {
	in := Metrics{
		NPV:     320457.57,
		IRR:     IRR{Rate: 0.198, Computable: true},
		ROI:     0.85,
		Payback: Payback{Years: 4.25, Recoverable: true},
	}

	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Metrics
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out != in {
		t.Fatalf("expected %+v, got %+v", in, out)
	}
}

func TestOptionalValues_DecodeNull(t *testing.T) {
	out := Metrics{IRR: IRR{Rate: 1, Computable: true}}

	if err := json.Unmarshal([]byte(`{"irr":null,"payback_years":null}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.IRR.Computable || out.Payback.Recoverable {
		t.Fatalf("expected missing values, got %+v", out)
	}
	if !math.IsNaN(out.IRR.Float64()) || !math.IsNaN(out.Payback.Float64()) {
		t.Fatal("missing values must read as NaN")
	}
}

func TestPayback_NaNYearsEncodeAsNull(t *testing.T) {
	b, err := json.Marshal(Payback{Years: math.NaN(), Recoverable: true})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("expected null, got %s", b)
	}
}
