package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodbridge-matching/internal/domain"
	"foodbridge-matching/internal/ports/claimtx"
)

// ClaimRepo owns the transactional scope used by the claim and delivery
// transition paths.
type ClaimRepo struct {
	db *pgxpool.Pool
}

// NewClaimRepo creates a new ClaimRepo.
func NewClaimRepo(db *pgxpool.Pool) *ClaimRepo {
	return &ClaimRepo{db: db}
}

// WithTx opens a transaction and executes fn within it. The transaction
// commits when fn returns nil and rolls back on error or panic, so a
// partially applied claim is never observable.
func (r *ClaimRepo) WithTx(ctx context.Context, fn func(tx claimtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

// GetDonationForUpdate - load a donation row and lock it for the
// remainder of the transaction. Concurrent claimers of the same
// donation serialize here.
func (r *TxRepo) GetDonationForUpdate(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+donationColumns+`
        FROM donations
        WHERE id = $1
        FOR UPDATE
    `, id)

	d, err := scanDonation(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donation %s for update: %w", id, err)
	}
	return d, nil
}

// GetNeedForUpdate - load a need row and lock it for the remainder of
// the transaction.
func (r *TxRepo) GetNeedForUpdate(ctx context.Context, id uuid.UUID) (*domain.RecipientNeed, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+needColumns+`
        FROM recipient_needs
        WHERE id = $1
        FOR UPDATE
    `, id)

	n, err := scanNeed(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get need %s for update: %w", id, err)
	}
	return n, nil
}

// RecipientExists reports whether a recipient user is registered.
func (r *TxRepo) RecipientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id=$1 AND role=$2)`,
		id, domain.RoleRecipient,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("recipient exists %s: %w", id, err)
	}
	return exists, nil
}

// MarkDonationMatched - move a pending donation to matched and bind the
// winning need. The status guard keeps the write conditional even
// though the row is already locked.
func (r *TxRepo) MarkDonationMatched(ctx context.Context, donationID, needID uuid.UUID) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE donations
        SET status = $2, matched_need_id = $3, updated_at = now()
        WHERE id = $1 AND status = $4
    `, donationID, domain.DonationMatched, needID, domain.DonationPending)
	if err != nil {
		return fmt.Errorf("mark donation %s matched: %w", donationID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("donation %s no longer pending", donationID)
	}
	return nil
}

// MarkDonationClaimed - move a pending donation to claimed and bind the
// claiming recipient (direct claim path, no need record).
func (r *TxRepo) MarkDonationClaimed(ctx context.Context, donationID, recipientID uuid.UUID) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE donations
        SET status = $2, claimed_by_recipient_id = $3, updated_at = now()
        WHERE id = $1 AND status = $4
    `, donationID, domain.DonationClaimed, recipientID, domain.DonationPending)
	if err != nil {
		return fmt.Errorf("mark donation %s claimed: %w", donationID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("donation %s no longer pending", donationID)
	}
	return nil
}

// MarkNeedMatched - move a pending need to matched and bind the donation.
func (r *TxRepo) MarkNeedMatched(ctx context.Context, needID, donationID uuid.UUID) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE recipient_needs
        SET status = $2, matched_donation_id = $3, updated_at = now()
        WHERE id = $1 AND status = $4
    `, needID, domain.NeedMatched, donationID, domain.NeedPending)
	if err != nil {
		return fmt.Errorf("mark need %s matched: %w", needID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("need %s no longer pending", needID)
	}
	return nil
}

// MarkNeedFulfilled - move a matched need to fulfilled once its
// delivery completes.
func (r *TxRepo) MarkNeedFulfilled(ctx context.Context, needID uuid.UUID) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE recipient_needs
        SET status = $2, updated_at = now()
        WHERE id = $1 AND status = $3
    `, needID, domain.NeedFulfilled, domain.NeedMatched)
	if err != nil {
		return fmt.Errorf("mark need %s fulfilled: %w", needID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("need %s not matched", needID)
	}
	return nil
}

// InsertDelivery - insert the delivery record created at claim time.
// The unique index on donation_id enforces at most one delivery per
// donation.
func (r *TxRepo) InsertDelivery(ctx context.Context, d *domain.Delivery) error {
	err := r.tx.QueryRow(ctx, `
        INSERT INTO deliveries (id, donation_id, pickup_location_id, dropoff_location_id,
                                recipient_phone, status, logistics_staff_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, d.ID, d.DonationID, d.PickupLocationID, d.DropoffLocationID,
		d.RecipientPhone, d.Status, d.LogisticsStaffID).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// GetDeliveryForUpdate - load a delivery row and lock it for the
// remainder of the transaction.
func (r *TxRepo) GetDeliveryForUpdate(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+deliveryColumns+`
        FROM deliveries
        WHERE id = $1
        FOR UPDATE
    `, id)

	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %s for update: %w", id, err)
	}
	return d, nil
}

// UpdateDeliveryStatus - apply one delivery state transition.
// deliveredAt is written only when the transition target sets it.
func (r *TxRepo) UpdateDeliveryStatus(ctx context.Context, id uuid.UUID, status domain.DeliveryStatus, staffID *uuid.UUID, deliveredAt *time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE deliveries
        SET status = $2,
            logistics_staff_id = COALESCE($3, logistics_staff_id),
            delivered_at = COALESCE($4, delivered_at),
            updated_at = now()
        WHERE id = $1
    `, id, status, staffID, deliveredAt)
	if err != nil {
		return fmt.Errorf("update delivery %s status: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("delivery %s not found", id)
	}
	return nil
}

var _ claimtx.Repository = (*TxRepo)(nil)
var _ claimtx.Runner = (*ClaimRepo)(nil)
