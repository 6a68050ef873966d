package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodbridge-matching/internal/domain"
)

const donationColumns = `id, donor_id, food_type, quantity, location, location_id,
       expiry_date, available_from, available_to, status, matched_need_id, claimed_by_recipient_id`

// DonationRepo represents donation repository.
type DonationRepo struct{ db *pgxpool.Pool }

// NewDonationRepo creates a new DonationRepo.
func NewDonationRepo(db *pgxpool.Pool) *DonationRepo { return &DonationRepo{db: db} }

func scanDonation(row interface{ Scan(...any) error }) (*domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(
		&d.ID, &d.DonorID, &d.FoodType, &d.Quantity, &d.Location, &d.LocationID,
		&d.ExpiryDate, &d.AvailableFrom, &d.AvailableTo, &d.Status,
		&d.MatchedNeedID, &d.ClaimedByRecipientID,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Get - returns donation by its ID.
func (r *DonationRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Donation, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE id=$1`, id)
	d, err := scanDonation(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donation %s: %w", id, err)
	}
	return d, nil
}

// Create - persists a new donation with status pending.
func (r *DonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO donations (id, donor_id, food_type, quantity, location, location_id,
                               expiry_date, available_from, available_to, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `, d.ID, d.DonorID, d.FoodType, d.Quantity, d.Location, d.LocationID,
		d.ExpiryDate, d.AvailableFrom, d.AvailableTo, d.Status).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

// List returns donations matching the filter, ordered by id.
func (r *DonationRepo) List(ctx context.Context, f domain.DonationFilter) ([]domain.Donation, error) {
	where, args := BuildDonationPredicate(f)
	q := `SELECT ` + donationColumns + ` FROM donations` + where + ` ORDER BY id`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()

	var out []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// ListPendingUnexpired returns pending donations of the given food type
// whose expiry date is strictly in the future. Candidate scan for
// need-side matching.
func (r *DonationRepo) ListPendingUnexpired(ctx context.Context, foodType string, now time.Time) ([]domain.Donation, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+donationColumns+`
        FROM donations
        WHERE status = $1 AND food_type = $2 AND expiry_date > $3
        ORDER BY id
    `, domain.DonationPending, foodType, now)
	if err != nil {
		return nil, fmt.Errorf("list pending donations: %w", err)
	}
	defer rows.Close()

	var out []domain.Donation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// ExpirePending marks pending donations past their expiry date as
// expired and returns the number of rows affected.
func (r *DonationRepo) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE donations
        SET status = $1, updated_at = now()
        WHERE status = $2 AND expiry_date < $3
    `, domain.DonationExpired, domain.DonationPending, now)
	if err != nil {
		return 0, fmt.Errorf("expire pending donations: %w", err)
	}
	return ct.RowsAffected(), nil
}
