package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"foodbridge-matching/internal/config"
	"foodbridge-matching/internal/http/handlers"
	"foodbridge-matching/internal/http/pprofserver"
	"foodbridge-matching/internal/logx"
	"foodbridge-matching/internal/metrics"
	"foodbridge-matching/internal/notify"
	"foodbridge-matching/internal/repository"
	"foodbridge-matching/internal/service/claim"
	"foodbridge-matching/internal/service/deliveries"
	"foodbridge-matching/internal/service/matching"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...interface{})
	worker    bool
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// ForWorker registers the worker side (Kafka intake, expiry sweeper)
// instead of the HTTP surface.
func (b *ContainerBuilder) ForWorker() *ContainerBuilder {
	b.worker = true
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// build builds and returns a new dig container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if b.worker {
		if err := registerWorker(container); err != nil {
			return nil, fmt.Errorf("worker: %w", err)
		}
		return container, nil
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the container for the intake worker
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().ForWorker().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		NewLogger,
		config.Load,
		func() time.Duration { return 3 * time.Second },
	)
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		return dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
	}
	return provideAll(container, providerDB)
}

func registerMetrics(container *dig.Container) error {
	named := []struct {
		name string
		ctor any
	}{
		{"rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal},
		{"claim_conflicts_total", metrics.NewClaimConflictsTotal},
		{"notification_retries_total", metrics.NewNotificationRetriesTotal},
		{"match_suggestions_total", metrics.NewMatchSuggestionsTotal},
	}
	for _, m := range named {
		if err := container.Provide(m.ctor, dig.Name(m.name)); err != nil {
			return fmt.Errorf("provide counter %s: %w", m.name, err)
		}
	}
	return nil
}

type sinkIn struct {
	dig.In
	Store   *notify.StoreSink
	Logger  logx.Logger
	Retries prometheus.Counter `name:"notification_retries_total"`
	Cfg     *config.Config
}

type matchingIn struct {
	dig.In
	Donations   *repository.DonationRepo
	Needs       *repository.NeedRepo
	Sink        notify.Sink
	Suggestions prometheus.Counter `name:"match_suggestions_total"`
	Timeout     time.Duration
	Logger      logx.Logger
}

type claimIn struct {
	dig.In
	Repo      *repository.ClaimRepo
	Staff     *repository.StaffRepo
	Sink      notify.Sink
	Conflicts prometheus.Counter `name:"claim_conflicts_total"`
	Timeout   time.Duration
	Logger    logx.Logger
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		repository.NewDonationRepo,
		repository.NewNeedRepo,
		repository.NewClaimRepo,
		repository.NewDeliveryRepo,
		repository.NewNotificationRepo,
		repository.NewStaffRepo,
		func(repo *repository.NotificationRepo) *notify.StoreSink {
			return notify.NewStoreSink(repo)
		},
		func(in sinkIn) notify.Sink {
			return notify.NewRetryingSink(in.Store, in.Logger, in.Retries, notify.RetryConfig{
				MaxAttempts: in.Cfg.Notify.MaxAttempts,
				BaseDelay:   in.Cfg.Notify.BaseDelay,
				MaxDelay:    in.Cfg.Notify.MaxDelay,
			})
		},
		func(in matchingIn) *matching.Service {
			return matching.NewService(in.Donations, in.Needs, in.Sink, in.Suggestions, in.Timeout, in.Logger)
		},
		func(in claimIn) *claim.Service {
			return claim.NewService(in.Repo, in.Staff, in.Sink, in.Conflicts, in.Timeout, in.Logger)
		},
		func(repo *repository.ClaimRepo, timeout time.Duration, logger logx.Logger) *deliveries.Service {
			return deliveries.NewService(repo, timeout, logger)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config) *http.Server {
		if !cfg.Pprof.Enabled {
			return nil
		}
		return &http.Server{
			Addr: cfg.Pprof.Addr,
			Handler: pprofserver.Handler(pprofserver.Config{
				User: cfg.Pprof.User,
				Pass: cfg.Pprof.Pass,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	if err := container.Provide(pprofProvider, dig.Name("pprof_server")); err != nil {
		return fmt.Errorf("provide pprof server: %w", err)
	}
	return provideAll(container,
		handlers.New,
		handlers.NewMatchUsecase,
		handlers.NewClaimUsecase,
		handlers.NewDeliveryUsecase,
		handlers.NewNotificationStore,
		handlers.NewDonationHandler,
		handlers.NewNeedHandler,
		handlers.NewClaimHandler,
		handlers.NewDeliveryHandler,
		handlers.NewNotificationHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		routerProvider,
		serverProvider,
	)
}
