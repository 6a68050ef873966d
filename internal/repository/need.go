package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodbridge-matching/internal/domain"
)

const needColumns = `id, recipient_id, food_type, quantity, dropoff_location_id,
       dropoff_address, contact_phone, status, matched_donation_id`

// NeedRepo represents recipient need repository.
type NeedRepo struct{ db *pgxpool.Pool }

// NewNeedRepo creates a new NeedRepo.
func NewNeedRepo(db *pgxpool.Pool) *NeedRepo { return &NeedRepo{db: db} }

func scanNeed(row interface{ Scan(...any) error }) (*domain.RecipientNeed, error) {
	var n domain.RecipientNeed
	err := row.Scan(
		&n.ID, &n.RecipientID, &n.FoodType, &n.Quantity, &n.DropoffLocationID,
		&n.DropoffAddress, &n.ContactPhone, &n.Status, &n.MatchedDonationID,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Get - returns need by its ID.
func (r *NeedRepo) Get(ctx context.Context, id uuid.UUID) (*domain.RecipientNeed, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+needColumns+` FROM recipient_needs WHERE id=$1`, id)
	n, err := scanNeed(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get need %s: %w", id, err)
	}
	return n, nil
}

// Create - persists a new need with status pending.
func (r *NeedRepo) Create(ctx context.Context, n *domain.RecipientNeed) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO recipient_needs (id, recipient_id, food_type, quantity,
                                     dropoff_location_id, dropoff_address, contact_phone, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `, n.ID, n.RecipientID, n.FoodType, n.Quantity,
		n.DropoffLocationID, n.DropoffAddress, n.ContactPhone, n.Status).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("create need: %w", err)
	}
	return nil
}

// ListPendingByFoodType returns pending needs with the given food type.
// Candidate scan for donation-side matching.
func (r *NeedRepo) ListPendingByFoodType(ctx context.Context, foodType string) ([]domain.RecipientNeed, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+needColumns+`
        FROM recipient_needs
        WHERE status = $1 AND food_type = $2
        ORDER BY id
    `, domain.NeedPending, foodType)
	if err != nil {
		return nil, fmt.Errorf("list pending needs: %w", err)
	}
	defer rows.Close()

	var out []domain.RecipientNeed
	for rows.Next() {
		n, err := scanNeed(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}
