package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodbridge-matching/internal/domain"
)

// StaffRepo reads the logistics staff roster.
type StaffRepo struct{ db *pgxpool.Pool }

// NewStaffRepo creates a new StaffRepo.
func NewStaffRepo(db *pgxpool.Pool) *StaffRepo { return &StaffRepo{db: db} }

// LogisticsStaffIDs returns the ids of all registered logistics staff.
// A snapshot read: staff added concurrently with a claim need not be
// notified retroactively.
func (r *StaffRepo) LogisticsStaffIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM users WHERE role = $1 ORDER BY id`, domain.RoleLogisticsStaff)
	if err != nil {
		return nil, fmt.Errorf("list logistics staff: %w", err)
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
