package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"foodbridge-matching/internal/config"
	"foodbridge-matching/internal/http/handlers"
	"foodbridge-matching/internal/http/middleware"
	"foodbridge-matching/internal/http/middleware/ratelimit"
	"foodbridge-matching/internal/http/router"
	"foodbridge-matching/internal/logx"
)

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}

func routerProvider(
	h *handlers.Handlers,
	donation *handlers.DonationHandler,
	need *handlers.NeedHandler,
	clm *handlers.ClaimHandler,
	delivery *handlers.DeliveryHandler,
	notification *handlers.NotificationHandler,
	rl *ratelimit.Middleware,
	logger logx.Logger,
) http.Handler {
	return router.New(h, donation, need, clm, delivery, notification,
		middleware.Observability(logger),
		rl.Handler(),
	)
}
