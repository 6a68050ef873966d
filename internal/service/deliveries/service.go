package deliveries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/logx"
	"foodbridge-matching/internal/ports/claimtx"
)

// txRunner abstracts the transactional scope of delivery transitions.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx claimtx.Repository) error) error
}

// Service drives the delivery state machine:
// PENDING -> ASSIGNED -> IN_PROGRESS -> DELIVERED, with FAILED and
// CANCELLED reachable from any non-terminal state.
type Service struct {
	repo             txRunner
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a deliveries Service.
func NewService(repo txRunner, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Assign hands a pending delivery to a logistics staff member.
func (s *Service) Assign(ctx context.Context, deliveryID, staffID uuid.UUID) (domain.Delivery, error) {
	if deliveryID == uuid.Nil || staffID == uuid.Nil {
		return domain.Delivery{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.Delivery

	err := s.repo.WithTx(ctx, func(tx claimtx.Repository) error {
		dv, err := tx.GetDeliveryForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if dv == nil {
			return fmt.Errorf("%w: delivery %s", apperr.ErrNotFound, deliveryID)
		}
		if !dv.Status.CanTransitionTo(domain.DeliveryAssigned) {
			return fmt.Errorf("%w: delivery not assignable from %s", apperr.ErrConflict, dv.Status)
		}

		if err := tx.UpdateDeliveryStatus(ctx, dv.ID, domain.DeliveryAssigned, &staffID, nil); err != nil {
			return err
		}

		dv.Status = domain.DeliveryAssigned
		dv.LogisticsStaffID = &staffID
		result = *dv
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	s.logger.Info("delivery assigned",
		logx.String("event", "delivery_assigned"),
		logx.String("delivery_id", result.ID.String()),
		logx.String("staff_id", staffID.String()),
	)

	return result, nil
}

// UpdateStatus applies one state transition. DeliveredAt is set if and
// only if the transition target is DELIVERED; completing a delivery
// also moves the matched need to fulfilled in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, deliveryID uuid.UUID, next domain.DeliveryStatus) (domain.Delivery, error) {
	if deliveryID == uuid.Nil || !next.Valid() {
		return domain.Delivery{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.Delivery

	err := s.repo.WithTx(ctx, func(tx claimtx.Repository) error {
		dv, err := tx.GetDeliveryForUpdate(ctx, deliveryID)
		if err != nil {
			return err
		}
		if dv == nil {
			return fmt.Errorf("%w: delivery %s", apperr.ErrNotFound, deliveryID)
		}
		if !dv.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: delivery transition %s -> %s", apperr.ErrConflict, dv.Status, next)
		}

		var deliveredAt *time.Time
		if next == domain.DeliveryDelivered {
			t := s.now()
			deliveredAt = &t
		}

		if err := tx.UpdateDeliveryStatus(ctx, dv.ID, next, nil, deliveredAt); err != nil {
			return err
		}

		if next == domain.DeliveryDelivered {
			if err := s.fulfillNeed(ctx, tx, dv.DonationID); err != nil {
				return err
			}
		}

		dv.Status = next
		dv.DeliveredAt = deliveredAt
		result = *dv
		return nil
	})
	if err != nil {
		return domain.Delivery{}, err
	}

	s.logger.Info("delivery status updated",
		logx.String("event", "delivery_status_updated"),
		logx.String("delivery_id", result.ID.String()),
		logx.String("status", string(result.Status)),
	)

	return result, nil
}

// fulfillNeed closes the loop on a completed delivery: the need the
// donation was claimed for becomes fulfilled. Direct claims have no
// need record, so a nil matched need is fine.
func (s *Service) fulfillNeed(ctx context.Context, tx claimtx.Repository, donationID uuid.UUID) error {
	d, err := tx.GetDonationForUpdate(ctx, donationID)
	if err != nil {
		return err
	}
	if d == nil || d.MatchedNeedID == nil {
		return nil
	}
	return tx.MarkNeedFulfilled(ctx, *d.MatchedNeedID)
}
