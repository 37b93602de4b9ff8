package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"invest-appraisal/domain"
	"invest-appraisal/repository"
)

// SessionService edits the cash-flow series of a session and runs
// calculations on a snapshot of it. Edits go through SessionRepository.Update,
// so concurrent edits from several instances sharing redis do not lose writes.
type SessionService struct {
	repo      repository.SessionRepository
	appraisal *AppraisalService
	logger    *zap.Logger
	now       func() time.Time
}

func NewSessionService(
	repo repository.SessionRepository,
	appraisal *AppraisalService,
	logger *zap.Logger,
) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		repo:      repo,
		appraisal: appraisal,
		logger:    logger,
		now:       time.Now,
	}
}

// Create starts a session with the default number of years, or input.Years when set.
func (s *SessionService) Create(ctx context.Context, input domain.SessionInput) (domain.Session, error) {
	series := domain.NewCashFlowSeries(s.appraisal.Bounds(), input.Prefill)
	if input.Years != 0 {
		if err := series.Resize(input.Years); err != nil {
			return domain.Session{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	now := s.now().UTC()
	session := domain.Session{
		ID:        uuid.New().String(),
		Series:    *series,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.Int("years", series.Count()),
		zap.Bool("prefill", input.Prefill),
	)
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.repo.Get(ctx, id)
}

func (s *SessionService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AppendYear adds a year. changed is false when the series is already at its maximum.
func (s *SessionService) AppendYear(ctx context.Context, id string) (session domain.Session, changed bool, err error) {
	session, err = s.mutate(ctx, id, func(series *domain.CashFlowSeries) error {
		changed = series.Append()
		return nil
	})
	if err == nil {
		s.logger.Debug("year appended", zap.String("session_id", id), zap.Int("years", session.Series.Count()), zap.Bool("changed", changed))
	}
	return session, changed, err
}

// RemoveLastYear drops the last year. changed is false when the series is already at its minimum.
func (s *SessionService) RemoveLastYear(ctx context.Context, id string) (session domain.Session, changed bool, err error) {
	session, err = s.mutate(ctx, id, func(series *domain.CashFlowSeries) error {
		changed = series.RemoveLast()
		return nil
	})
	if err == nil {
		s.logger.Debug("year removed", zap.String("session_id", id), zap.Int("years", session.Series.Count()), zap.Bool("changed", changed))
	}
	return session, changed, err
}

func (s *SessionService) Resize(ctx context.Context, id string, count int) (domain.Session, error) {
	return s.mutate(ctx, id, func(series *domain.CashFlowSeries) error {
		return series.Resize(count)
	})
}

func (s *SessionService) SetFlow(ctx context.Context, id string, year int, amount float64) (domain.Session, error) {
	return s.mutate(ctx, id, func(series *domain.CashFlowSeries) error {
		return series.Set(year, amount)
	})
}

func (s *SessionService) ClearFlow(ctx context.Context, id string, year int) (domain.Session, error) {
	return s.mutate(ctx, id, func(series *domain.CashFlowSeries) error {
		return series.Clear(year)
	})
}

// Calculate appraises the session's current flows. Every year must hold a value.
func (s *SessionService) Calculate(
	ctx context.Context,
	id string,
	input domain.SessionCalculationInput,
) (domain.AppraisalResult, error) {

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.AppraisalResult{}, err
	}

	flows, err := session.Series.Amounts()
	if err != nil {
		return domain.AppraisalResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return s.appraisal.Calculate(ctx, domain.AppraisalInput{
		Investment:  input.Investment,
		RatePercent: input.RatePercent,
		Flows:       flows,
	}, input.Explain)
}

// mutate applies fn to the stored series in one atomic cycle. fn may run again
// when the store retries after a conflicting write.
func (s *SessionService) mutate(
	ctx context.Context,
	id string,
	fn func(series *domain.CashFlowSeries) error,
) (domain.Session, error) {

	return s.repo.Update(ctx, id, func(session *domain.Session) error {
		if err := fn(&session.Series); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		session.UpdatedAt = s.now().UTC()
		return nil
	})
}
