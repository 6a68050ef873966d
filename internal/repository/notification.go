package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodbridge-matching/internal/domain"
)

// NotificationRepo represents notification repository. Rows are
// append-only; only the read flag is ever updated.
type NotificationRepo struct{ db *pgxpool.Pool }

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo { return &NotificationRepo{db: db} }

// Insert - append one notification.
func (r *NotificationRepo) Insert(ctx context.Context, n *domain.Notification) error {
	err := r.db.QueryRow(ctx, `
        INSERT INTO notifications (id, user_id, message, meta, read)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, n.ID, n.UserID, n.Message, n.Meta, n.Read).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListForUser returns notifications for a user, newest first.
func (r *NotificationRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, message, meta, read
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications for %s: %w", userID, err)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Meta, &n.Read); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips the read flag for one notification owned by userID.
// Returns true if a row was affected.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE notifications
        SET read = true
        WHERE id = $1 AND user_id = $2
    `, id, userID)
	if err != nil {
		return false, fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
