package app

import (
	"context"
	"time"

	"foodbridge-matching/internal/logx"
)

type expiringStore interface {
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

// expireSweeper periodically marks pending donations past their expiry
// date as expired so they stop appearing in match candidate sets.
type expireSweeper struct {
	donations expiringStore
	interval  time.Duration
	logger    logx.Logger
}

func (s *expireSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *expireSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	n, err := s.donations.ExpirePending(sweepCtx, time.Now().UTC())
	if err != nil {
		s.logger.Error("donation expiry sweep failed", logx.Any("err", err))
		return
	}
	if n > 0 {
		s.logger.Info("donations expired", logx.Int64("count", n))
	}
}
