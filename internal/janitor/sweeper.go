// Package janitor removes expired sessions and verification tokens on a
// cron schedule.
package janitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/dashboard-api/internal/metrics"
	"github.com/robfig/cron/v3"
)

type sessionSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type tokenSweeper interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type Result struct {
	Sessions int64
	Tokens   int64
}

type Sweeper struct {
	sessions sessionSweeper
	tokens   tokenSweeper
	schedule cron.Schedule
	logger   *slog.Logger
}

// NewSweeper parses spec as a standard cron expression or descriptor
// (e.g. "@every 15m", "0 * * * *").
func NewSweeper(spec string, sessions sessionSweeper, tokens tokenSweeper, logger *slog.Logger) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", spec, err)
	}
	return &Sweeper{
		sessions: sessions,
		tokens:   tokens,
		schedule: schedule,
		logger:   logger.With("component", "janitor"),
	}, nil
}

// Start blocks until ctx is cancelled, sweeping at every scheduled tick.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("janitor started", "next_run", s.schedule.Next(time.Now()))

	for {
		timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("janitor shut down")
			return
		case <-timer.C:
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.ErrorContext(ctx, "janitor sweep", "error", err)
			}
		}
	}
}

// Sweep deletes expired rows once. A failure on one table does not skip
// the other; both errors are joined.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	start := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(start).Seconds()) }()

	var res Result
	var errs []error

	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("sessions: %w", err))
	} else {
		res.Sessions = n
		metrics.SweepDeletedTotal.WithLabelValues("session").Add(float64(n))
	}

	n, err = s.tokens.DeleteExpired(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("verification tokens: %w", err))
	} else {
		res.Tokens = n
		metrics.SweepDeletedTotal.WithLabelValues("verification_token").Add(float64(n))
	}

	if res.Sessions > 0 || res.Tokens > 0 {
		s.logger.InfoContext(ctx, "janitor swept expired rows", "sessions", res.Sessions, "tokens", res.Tokens)
	}
	return res, errors.Join(errs...)
}
