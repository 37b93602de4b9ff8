package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"invest-appraisal/domain"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrCalculationFailed = errors.New("calculation failed")
)

type AppraisalSettings struct {
	Bounds   domain.SeriesBounds
	IRR      IRRParams
	Currency string
}

func DefaultSettings() AppraisalSettings {
	return AppraisalSettings{
		Bounds: domain.SeriesBounds{
			MinYears:     MinYears,
			MaxYears:     MaxYears,
			DefaultYears: DefaultYears,
			ExampleFlows: append([]float64(nil), ExampleFlows...),
		},
		IRR:      DefaultIRRParams,
		Currency: DefaultCurrency,
	}
}

type AppraisalService struct {
	settings AppraisalSettings
	advisor  *AdvisorService
	logger   *zap.Logger
	now      func() time.Time
}

// NewAppraisalService creates an AppraisalService. advisor may be nil.
func NewAppraisalService(settings AppraisalSettings, advisor *AdvisorService, logger *zap.Logger) *AppraisalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppraisalService{
		settings: settings,
		advisor:  advisor,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AppraisalService) Bounds() domain.SeriesBounds {
	return s.settings.Bounds
}

// Calculate computes, grades and recommends on one investment scenario. When
// explain is set and an advisor is configured, a narrative is attached.
func (s *AppraisalService) Calculate(
	ctx context.Context,
	input domain.AppraisalInput,
	explain bool,
) (domain.AppraisalResult, error) {

	if err := s.validate(input); err != nil {
		return domain.AppraisalResult{}, err
	}

	// Snapshot the flows so the caller cannot alter them mid-calculation.
	input.Flows = append([]float64(nil), input.Flows...)

	started := s.now()
	metrics, err := s.evaluate(input)
	if err != nil {
		s.logger.Error("appraisal calculation failed",
			zap.Float64("investment", input.Investment),
			zap.Float64("rate_percent", input.RatePercent),
			zap.Int("years", len(input.Flows)),
			zap.Error(err),
		)
		return domain.AppraisalResult{}, err
	}

	result := domain.AppraisalResult{
		Input:           input,
		Metrics:         metrics,
		Interpretations: Interpret(metrics, input.RatePercent),
		Recommendation:  Recommend(metrics.NPV, metrics.IRR, metrics.ROI, metrics.Payback, input.RatePercent),
		Display:         FormatMetrics(metrics, s.settings.Currency),
	}
	completed := s.now()
	result.Metadata = domain.CalculationMetadata{
		CalculationID:          uuid.New().String(),
		CalculationStartedAt:   started.UTC(),
		CalculationCompletedAt: completed.UTC(),
		CalculationDurationMs:  completed.Sub(started).Milliseconds(),
	}

	if explain && s.advisor != nil {
		result.Explanation = s.advisor.Explain(ctx, result)
	}

	s.logger.Debug("appraisal calculated",
		zap.String("calculation_id", result.Metadata.CalculationID),
		zap.String("tier", string(result.Recommendation.Tier)),
		zap.Float64("npv", metrics.NPV),
	)

	return result, nil
}

func (s *AppraisalService) validate(input domain.AppraisalInput) error {
	b := s.settings.Bounds

	if !finite(input.Investment) || input.Investment <= 0 {
		return fmt.Errorf("%w: investment must be a positive number", ErrInvalidInput)
	}
	if input.Investment > MaxInvestment {
		return fmt.Errorf("%w: investment exceeds the maximum of %.0f", ErrInvalidInput, MaxInvestment)
	}
	if !finite(input.RatePercent) || input.RatePercent < 0 {
		return fmt.Errorf("%w: discount rate must be zero or positive", ErrInvalidInput)
	}
	if input.RatePercent > MaxDiscountRate {
		return fmt.Errorf("%w: discount rate exceeds the maximum of %.0f%%", ErrInvalidInput, MaxDiscountRate)
	}
	if n := len(input.Flows); n < b.MinYears || n > b.MaxYears {
		return fmt.Errorf("%w: %d cash flows given, between %d and %d required", ErrInvalidInput, n, b.MinYears, b.MaxYears)
	}
	for i, f := range input.Flows {
		if !finite(f) {
			return fmt.Errorf("%w: cash flow of year %d is not a number", ErrInvalidInput, i+1)
		}
		if f > MaxFlowAmount || f < -MaxFlowAmount {
			return fmt.Errorf("%w: cash flow of year %d exceeds %.0f", ErrInvalidInput, i+1, MaxFlowAmount)
		}
	}
	return nil
}

// evaluate turns any fault of the numeric routines into ErrCalculationFailed
// so no partial result leaves the service.
func (s *AppraisalService) evaluate(input domain.AppraisalInput) (m domain.Metrics, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = domain.Metrics{}, fmt.Errorf("%w: %v", ErrCalculationFailed, r)
		}
	}()

	m = domain.Metrics{
		NPV:     NPV(input.RatePercent, input.Investment, input.Flows),
		IRR:     SolveIRR(input.Investment, input.Flows, s.settings.IRR),
		ROI:     ROI(input.Investment, input.Flows),
		Payback: DiscountedPayback(input.Investment, input.Flows, input.RatePercent),
	}
	if !finite(m.NPV) || !finite(m.ROI) {
		return domain.Metrics{}, fmt.Errorf("%w: non-finite result", ErrCalculationFailed)
	}
	return m, nil
}
