package app

import (
	"context"
	"time"

	"go.uber.org/dig"

	"foodbridge-matching/internal/config"
	"foodbridge-matching/internal/logx"
	"foodbridge-matching/internal/repository"
	"foodbridge-matching/internal/service/intake"
	"foodbridge-matching/internal/service/matching"
	"foodbridge-matching/internal/transport/kafka"
)

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(svc *matching.Service) intake.MatchPort { return svc },
		intake.NewProcessor,
		makeIntakeKafka,
		func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
		func(cfg *config.Config, repo *repository.DonationRepo, logger logx.Logger) *expireSweeper {
			return &expireSweeper{
				donations: repo,
				interval:  cfg.Donations.ExpireSweepInterval,
				logger:    logger,
			}
		},
	)
}

func makeIntakeKafka(p *intake.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event intake.Event) error {
		handleCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return p.Handle(handleCtx, event)
	}
}
