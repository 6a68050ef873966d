package matching

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foodbridge-matching/internal/domain"
)

// donationRepository defines donation storage operations required by
// the match finder.
type donationRepository interface {
	Create(ctx context.Context, d *domain.Donation) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	List(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, error)
	ListPendingUnexpired(ctx context.Context, foodType string, now time.Time) ([]domain.Donation, error)
}

// needRepository defines need storage operations required by the match
// finder.
type needRepository interface {
	Create(ctx context.Context, n *domain.RecipientNeed) error
	Get(ctx context.Context, id uuid.UUID) (*domain.RecipientNeed, error)
	ListPendingByFoodType(ctx context.Context, foodType string) ([]domain.RecipientNeed, error)
}

type counter interface {
	Inc()
}
