package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodbridge-matching/internal/domain"
)

const deliveryColumns = `id, donation_id, pickup_location_id, dropoff_location_id,
       recipient_phone, status, logistics_staff_id, delivered_at`

// DeliveryRepo represents delivery repository (reads outside the claim
// transaction).
type DeliveryRepo struct{ db *pgxpool.Pool }

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo { return &DeliveryRepo{db: db} }

func scanDelivery(row interface{ Scan(...any) error }) (*domain.Delivery, error) {
	var d domain.Delivery
	err := row.Scan(
		&d.ID, &d.DonationID, &d.PickupLocationID, &d.DropoffLocationID,
		&d.RecipientPhone, &d.Status, &d.LogisticsStaffID, &d.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Get - returns delivery by its ID.
func (r *DeliveryRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id=$1`, id)
	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %s: %w", id, err)
	}
	return d, nil
}

// GetByDonationID - returns the delivery for a claimed donation, if any.
func (r *DeliveryRepo) GetByDonationID(ctx context.Context, donationID uuid.UUID) (*domain.Delivery, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE donation_id=$1`, donationID)
	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery by donation %s: %w", donationID, err)
	}
	return d, nil
}
