package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes the retry behavior of RetryingSink.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingSink retries emits that failed on a dependency error, with
// bounded exponential backoff. Validation-class failures are not
// retried.
type RetryingSink struct {
	next    Sink
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingSink wraps next in retry behavior. Returns nil when next is nil.
func NewRetryingSink(next Sink, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingSink {
	if next == nil {
		return nil
	}
	return &RetryingSink{next: next, logger: logger, retries: retries, cfg: cfg}
}

// Emit forwards to the wrapped sink, retrying dependency failures.
func (s *RetryingSink) Emit(ctx context.Context, userID uuid.UUID, message string, meta domain.NotificationMeta) error {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		err := s.next.Emit(ctx, userID, message, meta)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == s.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(s.cfg.BaseDelay, s.cfg.MaxDelay, attempt)
		if s.retries != nil {
			s.retries.Inc()
		}
		s.logger.Warn("notification emit retry",
			logx.String("user_id", userID.String()),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable determines whether the emit failure is worth retrying.
func isRetryable(err error) bool {
	return errors.Is(err, apperr.ErrDependency)
}

// backoff computes the delay before the next attempt.
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

var _ Sink = (*RetryingSink)(nil)
