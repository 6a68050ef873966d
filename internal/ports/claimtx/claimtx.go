package claimtx

import (
	"context"
	"time"

	"github.com/google/uuid"

	"foodbridge-matching/internal/domain"
)

// Repository is the set of row operations available inside one claim
// transaction. Reads marked ForUpdate take row locks held until the
// scope commits or rolls back.
type Repository interface {
	GetDonationForUpdate(ctx context.Context, id uuid.UUID) (*domain.Donation, error)
	GetNeedForUpdate(ctx context.Context, id uuid.UUID) (*domain.RecipientNeed, error)
	RecipientExists(ctx context.Context, id uuid.UUID) (bool, error)

	MarkDonationMatched(ctx context.Context, donationID, needID uuid.UUID) error
	MarkDonationClaimed(ctx context.Context, donationID, recipientID uuid.UUID) error
	MarkNeedMatched(ctx context.Context, needID, donationID uuid.UUID) error
	MarkNeedFulfilled(ctx context.Context, needID uuid.UUID) error

	InsertDelivery(ctx context.Context, d *domain.Delivery) error
	GetDeliveryForUpdate(ctx context.Context, id uuid.UUID) (*domain.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status domain.DeliveryStatus, staffID *uuid.UUID, deliveredAt *time.Time) error
}

// Runner is a transaction runner: fn executes inside a single
// transaction that commits on nil and rolls back on error or panic.
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
