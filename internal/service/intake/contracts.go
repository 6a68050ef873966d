package intake

import (
	"context"

	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/service/matching"
)

// MatchPort abstracts the subset of matching operations needed by the
// intake Processor when handling submission events.
type MatchPort interface {
	CreateDonation(ctx context.Context, actor domain.Actor, in matching.DonationInput) (*domain.Donation, error)
	CreateNeed(ctx context.Context, actor domain.Actor, in matching.NeedInput) (*domain.RecipientNeed, error)
}
