package claim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/logx"
	"foodbridge-matching/internal/notify"
	"foodbridge-matching/internal/ports/claimtx"
)

// Service executes the atomic transition that commits one donation to
// one need or recipient. The donation and need rows are read under row
// locks and written in the same transaction, so two racing claims on
// one donation resolve to exactly one winner.
type Service struct {
	repo             txRunner
	staff            staffDirectory
	sink             notify.Sink
	conflicts        counter
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService creates and configures a claim Service.
func NewService(repo txRunner, staff staffDirectory, sink notify.Sink, conflicts counter, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		repo:             repo,
		staff:            staff,
		sink:             sink,
		conflicts:        conflicts,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// DirectDetails carries the delivery details supplied by a recipient
// claiming an advertised donation without a need record.
type DirectDetails struct {
	DropoffLocationID uuid.UUID
	ContactPhone      string
}

// Claim binds a pending donation to a pending need. The donation
// update, the need update and the new delivery row commit or roll back
// together; a partial claim is never observable. Notifications fan out
// only after the transaction commits.
func (s *Service) Claim(ctx context.Context, needID, donationID uuid.UUID) (domain.ClaimResult, error) {
	if needID == uuid.Nil || donationID == uuid.Nil {
		return domain.ClaimResult{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var result domain.ClaimResult

	err := s.repo.WithTx(ctx, func(tx claimtx.Repository) error {
		d, err := tx.GetDonationForUpdate(ctx, donationID)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("%w: donation %s", apperr.ErrNotFound, donationID)
		}
		if d.Status != domain.DonationPending {
			return fmt.Errorf("%w: donation not claimable", apperr.ErrConflict)
		}

		n, err := tx.GetNeedForUpdate(ctx, needID)
		if err != nil {
			return err
		}
		if n == nil {
			return fmt.Errorf("%w: need %s", apperr.ErrNotFound, needID)
		}
		if n.Status != domain.NeedPending {
			return fmt.Errorf("%w: need not claimable", apperr.ErrConflict)
		}

		if err := tx.MarkDonationMatched(ctx, d.ID, n.ID); err != nil {
			return err
		}
		if err := tx.MarkNeedMatched(ctx, n.ID, d.ID); err != nil {
			return err
		}

		delivery := &domain.Delivery{
			ID:                uuid.New(),
			DonationID:        d.ID,
			PickupLocationID:  d.LocationID,
			DropoffLocationID: n.DropoffLocationID,
			RecipientPhone:    n.ContactPhone,
			Status:            domain.DeliveryPending,
		}
		if err := tx.InsertDelivery(ctx, delivery); err != nil {
			return err
		}

		d.Status = domain.DonationMatched
		d.MatchedNeedID = &n.ID
		n.Status = domain.NeedMatched
		n.MatchedDonationID = &d.ID

		result = domain.ClaimResult{Need: *n, Donation: *d, Delivery: *delivery}
		return nil
	})
	if err != nil {
		return domain.ClaimResult{}, s.claimError(err)
	}

	s.logger.Info("donation claimed",
		logx.String("event", "donation_claimed"),
		logx.String("donation_id", result.Donation.ID.String()),
		logx.String("need_id", result.Need.ID.String()),
		logx.String("delivery_id", result.Delivery.ID.String()),
	)

	s.fanOut(ctx,
		result.Need.RecipientID,
		result.Donation.DonorID,
		domain.NotificationMeta{
			NeedID:     &result.Need.ID,
			DonationID: &result.Donation.ID,
			DeliveryID: &result.Delivery.ID,
		},
		fmt.Sprintf("A %s donation was reserved for your need", result.Donation.FoodType),
		fmt.Sprintf("Your %s donation was claimed by a recipient", result.Donation.FoodType),
	)

	return result, nil
}

// ClaimDirect binds a pending donation directly to a recipient, with
// delivery details supplied in the request instead of a need record.
func (s *Service) ClaimDirect(ctx context.Context, donationID, recipientID uuid.UUID, details DirectDetails) (domain.Donation, error) {
	if donationID == uuid.Nil || recipientID == uuid.Nil {
		return domain.Donation{}, apperr.ErrInvalid
	}
	if details.DropoffLocationID == uuid.Nil || !domain.ValidatePhone(details.ContactPhone) {
		return domain.Donation{}, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var (
		donation domain.Donation
		delivery domain.Delivery
	)

	err := s.repo.WithTx(ctx, func(tx claimtx.Repository) error {
		d, err := tx.GetDonationForUpdate(ctx, donationID)
		if err != nil {
			return err
		}
		if d == nil {
			return fmt.Errorf("%w: donation %s", apperr.ErrNotFound, donationID)
		}
		if d.Status != domain.DonationPending {
			return fmt.Errorf("%w: donation not claimable", apperr.ErrConflict)
		}

		ok, err := tx.RecipientExists(ctx, recipientID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: recipient %s", apperr.ErrNotFound, recipientID)
		}

		if err := tx.MarkDonationClaimed(ctx, d.ID, recipientID); err != nil {
			return err
		}

		dv := &domain.Delivery{
			ID:                uuid.New(),
			DonationID:        d.ID,
			PickupLocationID:  d.LocationID,
			DropoffLocationID: details.DropoffLocationID,
			RecipientPhone:    details.ContactPhone,
			Status:            domain.DeliveryPending,
		}
		if err := tx.InsertDelivery(ctx, dv); err != nil {
			return err
		}

		d.Status = domain.DonationClaimed
		d.ClaimedByRecipientID = &recipientID

		donation = *d
		delivery = *dv
		return nil
	})
	if err != nil {
		return domain.Donation{}, s.claimError(err)
	}

	s.logger.Info("donation claimed",
		logx.String("event", "donation_claimed_direct"),
		logx.String("donation_id", donation.ID.String()),
		logx.String("recipient_id", recipientID.String()),
		logx.String("delivery_id", delivery.ID.String()),
	)

	s.fanOut(ctx,
		recipientID,
		donation.DonorID,
		domain.NotificationMeta{
			DonationID: &donation.ID,
			DeliveryID: &delivery.ID,
		},
		fmt.Sprintf("The %s donation is reserved for you", donation.FoodType),
		fmt.Sprintf("Your %s donation was claimed by a recipient", donation.FoodType),
	)

	return donation, nil
}

// claimError maps transaction outcomes for the caller and counts
// conflicts. A lock wait that ran out of time behaves like a conflict:
// the caller should re-query suggestions and retry.
func (s *Service) claimError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: claim timed out waiting for donation lock", apperr.ErrConflict)
	}
	if errors.Is(err, apperr.ErrConflict) && s.conflicts != nil {
		s.conflicts.Inc()
	}
	return err
}

// fanOut emits the post-commit notifications: one to the recipient,
// one to the donor, one to every registered logistics staff member.
// The claim is already committed; emit failures are logged, never
// propagated.
func (s *Service) fanOut(ctx context.Context, recipientID, donorID uuid.UUID, meta domain.NotificationMeta, recipientMsg, donorMsg string) {
	s.emit(ctx, recipientID, recipientMsg, meta)
	s.emit(ctx, donorID, donorMsg, meta)

	staff, err := s.staff.LogisticsStaffIDs(ctx)
	if err != nil {
		s.logger.Error("staff roster read failed, staff not notified",
			logx.Any("err", err),
		)
		return
	}
	for _, id := range staff {
		s.emit(ctx, id, "New delivery scheduled", meta)
	}
}

func (s *Service) emit(ctx context.Context, userID uuid.UUID, message string, meta domain.NotificationMeta) {
	if err := s.sink.Emit(ctx, userID, message, meta); err != nil {
		s.logger.Warn("claim notification emit failed",
			logx.String("user_id", userID.String()),
			logx.Any("err", err),
		)
	}
}
