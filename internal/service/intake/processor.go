package intake

import (
	"context"
	"errors"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/logx"
	"foodbridge-matching/internal/service/matching"
)

// Processor dispatches intake events to the match finder. Malformed
// events are logged and skipped so a poison message cannot stall the
// partition; dependency failures are returned for redelivery.
type Processor struct {
	matcher MatchPort
	logger  logx.Logger
	actions map[string]func(context.Context, Event) error
}

// NewProcessor creates a new intake.Processor.
func NewProcessor(matcher MatchPort, logger logx.Logger) *Processor {
	p := &Processor{matcher: matcher, logger: logger}
	p.actions = map[string]func(context.Context, Event) error{
		TypeDonationCreated: p.onDonationCreated,
		TypeNeedCreated:     p.onNeedCreated,
	}
	return p
}

// Handle processes a single intake Event.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.actions[e.Type]
	if !ok {
		p.logger.Warn("intake: unknown event type skipped",
			logx.String("type", e.Type),
		)
		return nil
	}

	err := fn(ctx, e)
	if errors.Is(err, apperr.ErrInvalid) {
		p.logger.Warn("intake: invalid event skipped",
			logx.String("type", e.Type),
			logx.Any("err", err),
		)
		return nil
	}
	return err
}

func (p *Processor) onDonationCreated(ctx context.Context, e Event) error {
	_, err := p.matcher.CreateDonation(ctx,
		domain.Actor{Role: domain.RoleDonor, ID: e.ActorID},
		matching.DonationInput{
			FoodType:      e.FoodType,
			Quantity:      e.Quantity,
			Location:      e.Location,
			LocationID:    e.LocationID,
			ExpiryDate:    e.ExpiryDate,
			AvailableFrom: e.AvailableFrom,
			AvailableTo:   e.AvailableTo,
		})
	return err
}

func (p *Processor) onNeedCreated(ctx context.Context, e Event) error {
	_, err := p.matcher.CreateNeed(ctx,
		domain.Actor{Role: domain.RoleRecipient, ID: e.ActorID},
		matching.NeedInput{
			FoodType:          e.FoodType,
			Quantity:          e.Quantity,
			DropoffLocationID: e.DropoffLocationID,
			DropoffAddress:    e.DropoffAddress,
			ContactPhone:      e.ContactPhone,
		})
	return err
}
