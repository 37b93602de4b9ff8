package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrYearsOutOfBounds = errors.New("year count out of bounds")
	ErrYearNotFound     = errors.New("year not in series")
	ErrFlowNotSet       = errors.New("cash flow not set")
	ErrFlowNotFinite    = errors.New("cash flow is not a finite number")
)

// SeriesBounds holds the limits applied to a cash-flow series.
type SeriesBounds struct {
	MinYears     int       `json:"min_years"`
	MaxYears     int       `json:"max_years"`
	DefaultYears int       `json:"default_years"`
	ExampleFlows []float64 `json:"example_flows"`
}

// Flow is the cash flow of a single year. Set is false while the slot is empty.
type Flow struct {
	Amount float64 `json:"amount"`
	Set    bool    `json:"set"`
}

// CashFlowSeries is the ordered list of yearly cash flows, year 1 first.
type CashFlowSeries struct {
	MinYears int       `json:"min_years"`
	MaxYears int       `json:"max_years"`
	Examples []float64 `json:"examples,omitempty"`
	Flows    []Flow    `json:"flows"`
}

// NewCashFlowSeries returns a series of bounds.DefaultYears slots. When prefill
// is true, new slots take the matching entry of bounds.ExampleFlows.
func NewCashFlowSeries(bounds SeriesBounds, prefill bool) *CashFlowSeries {
	s := &CashFlowSeries{
		MinYears: bounds.MinYears,
		MaxYears: bounds.MaxYears,
		Flows:    []Flow{},
	}
	if prefill {
		s.Examples = append([]float64(nil), bounds.ExampleFlows...)
	}
	s.grow(bounds.DefaultYears)
	return s
}

func (s *CashFlowSeries) Count() int {
	return len(s.Flows)
}

func (s *CashFlowSeries) CanAppend() bool {
	return len(s.Flows) < s.MaxYears
}

func (s *CashFlowSeries) CanRemove() bool {
	return len(s.Flows) > s.MinYears
}

// Resize sets the number of years. Values of years that still exist are kept.
func (s *CashFlowSeries) Resize(count int) error {
	if count < s.MinYears || count > s.MaxYears {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrYearsOutOfBounds, count, s.MinYears, s.MaxYears)
	}
	if count < len(s.Flows) {
		s.Flows = s.Flows[:count]
		return nil
	}
	s.grow(count)
	return nil
}

// Append adds one year. It reports false and leaves the series untouched at MaxYears.
func (s *CashFlowSeries) Append() bool {
	if !s.CanAppend() {
		return false
	}
	s.grow(len(s.Flows) + 1)
	return true
}

// RemoveLast drops the last year. It reports false and leaves the series untouched at MinYears.
func (s *CashFlowSeries) RemoveLast() bool {
	if !s.CanRemove() {
		return false
	}
	s.Flows = s.Flows[:len(s.Flows)-1]
	return true
}

// Set stores the cash flow of a year, 1-based.
func (s *CashFlowSeries) Set(year int, amount float64) error {
	if year < 1 || year > len(s.Flows) {
		return fmt.Errorf("%w: year %d", ErrYearNotFound, year)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: year %d", ErrFlowNotFinite, year)
	}
	s.Flows[year-1] = Flow{Amount: amount, Set: true}
	return nil
}

// Clear empties the slot of a year, 1-based.
func (s *CashFlowSeries) Clear(year int) error {
	if year < 1 || year > len(s.Flows) {
		return fmt.Errorf("%w: year %d", ErrYearNotFound, year)
	}
	s.Flows[year-1] = Flow{}
	return nil
}

// Values returns a copy of the slots, year 1 first.
func (s *CashFlowSeries) Values() []Flow {
	out := make([]Flow, len(s.Flows))
	copy(out, s.Flows)
	return out
}

// Amounts returns a snapshot of the amounts. Every slot must hold a finite value.
func (s *CashFlowSeries) Amounts() ([]float64, error) {
	out := make([]float64, len(s.Flows))
	for i, f := range s.Flows {
		if !f.Set {
			return nil, fmt.Errorf("%w: year %d", ErrFlowNotSet, i+1)
		}
		if math.IsNaN(f.Amount) || math.IsInf(f.Amount, 0) {
			return nil, fmt.Errorf("%w: year %d", ErrFlowNotFinite, i+1)
		}
		out[i] = f.Amount
	}
	return out, nil
}

func (s *CashFlowSeries) grow(count int) {
	for year := len(s.Flows) + 1; year <= count; year++ {
		f := Flow{}
		if year <= len(s.Examples) {
			f = Flow{Amount: s.Examples[year-1], Set: true}
		}
		s.Flows = append(s.Flows, f)
	}
}
