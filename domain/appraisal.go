package domain

import (
	"bytes"
	"math"
	"strconv"
	"time"
)

type AppraisalInput struct {
	Investment  float64   `json:"investment"`
	RatePercent float64   `json:"rate_percent"`
	Flows       []float64 `json:"flows"`
}

// IRR is an internal rate of return as a fraction. Computable is false
// when the search bracket holds no sign change.
type IRR struct {
	Rate       float64
	Computable bool
}

// Float64 returns the rate, or NaN when it is not computable.
func (r IRR) Float64() float64 {
	if !r.Computable {
		return math.NaN()
	}
	return r.Rate
}

func (r IRR) MarshalJSON() ([]byte, error) {
	return marshalOptional(r.Rate, r.Computable), nil
}

// UnmarshalJSON lets Go clients of the API decode an AppraisalResult; null
// reads back as not computable.
func (r *IRR) UnmarshalJSON(b []byte) error {
	v, ok, err := unmarshalOptional(b)
	if err != nil {
		return err
	}
	*r = IRR{Rate: v, Computable: ok}
	return nil
}

// Payback is a discounted payback period in fractional years. Recoverable
// is false when the cumulative discounted flows never reach the investment.
type Payback struct {
	Years       float64
	Recoverable bool
}

// Float64 returns the period, or NaN when it is not recoverable.
func (p Payback) Float64() float64 {
	if !p.Recoverable {
		return math.NaN()
	}
	return p.Years
}

func (p Payback) MarshalJSON() ([]byte, error) {
	return marshalOptional(p.Years, p.Recoverable), nil
}

// UnmarshalJSON is the decoding counterpart of MarshalJSON for API clients;
// null reads back as not recoverable.
func (p *Payback) UnmarshalJSON(b []byte) error {
	v, ok, err := unmarshalOptional(b)
	if err != nil {
		return err
	}
	*p = Payback{Years: v, Recoverable: ok}
	return nil
}

var jsonNull = []byte("null")

func marshalOptional(v float64, ok bool) []byte {
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return jsonNull
	}
	return strconv.AppendFloat(nil, v, 'g', -1, 64)
}

func unmarshalOptional(b []byte) (float64, bool, error) {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

type Metrics struct {
	NPV     float64 `json:"npv"`
	IRR     IRR     `json:"irr"`
	ROI     float64 `json:"roi"`
	Payback Payback `json:"payback_years"`
}

// Band is the qualitative grade attached to a metric.
type Band string

const (
	BandExcellent Band = "excellent"
	BandPositive  Band = "positive"
	BandNeutral   Band = "neutral"
	BandWeak      Band = "weak"
	BandNegative  Band = "negative"
)

type Interpretation struct {
	Code string `json:"code"`
	Text string `json:"text"`
	Band Band   `json:"band"`
}

type Interpretations struct {
	NPV     Interpretation `json:"npv"`
	IRR     Interpretation `json:"irr"`
	ROI     Interpretation `json:"roi"`
	Payback Interpretation `json:"payback"`
}

type Tier string

const (
	TierHighlyRecommended Tier = "highly_recommended"
	TierRecommended       Tier = "recommended"
	TierStudyNeeded       Tier = "study_needed"
	TierNotRecommended    Tier = "not_recommended"
)

type Recommendation struct {
	Tier Tier   `json:"tier"`
	Text string `json:"text"`
}

// Display carries the formatted labels of each metric.
type Display struct {
	NPV     string `json:"npv"`
	IRR     string `json:"irr"`
	ROI     string `json:"roi"`
	Payback string `json:"payback"`
}

type CalculationMetadata struct {
	CalculationID          string    `json:"calculation_id"`
	CalculationStartedAt   time.Time `json:"calculation_started_at"`
	CalculationCompletedAt time.Time `json:"calculation_completed_at"`
	CalculationDurationMs  int64     `json:"calculation_duration_ms"`
}

type AppraisalResult struct {
	Metadata        CalculationMetadata `json:"calculation_metadata"`
	Input           AppraisalInput      `json:"input"`
	Metrics         Metrics             `json:"metrics"`
	Interpretations Interpretations     `json:"interpretations"`
	Recommendation  Recommendation      `json:"recommendation"`
	Display         Display             `json:"display"`
	Explanation     string              `json:"explanation,omitempty"`
}
