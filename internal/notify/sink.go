package notify

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"foodbridge-matching/internal/apperr"
	"foodbridge-matching/internal/domain"
)

// Sink accepts fire-and-forget notification records. Best-effort: the
// core never relies on its return value for correctness, only for
// logging and retry.
type Sink interface {
	Emit(ctx context.Context, userID uuid.UUID, message string, meta domain.NotificationMeta) error
}

// notificationStore is the subset of the notification repository needed
// by the store-backed sink.
type notificationStore interface {
	Insert(ctx context.Context, n *domain.Notification) error
}

// StoreSink persists notifications through the repository.
type StoreSink struct {
	store notificationStore
}

// NewStoreSink creates a store-backed Sink.
func NewStoreSink(store notificationStore) *StoreSink {
	return &StoreSink{store: store}
}

// Emit appends one notification row. Store failures surface as
// apperr.ErrDependency so callers can decide to retry.
func (s *StoreSink) Emit(ctx context.Context, userID uuid.UUID, message string, meta domain.NotificationMeta) error {
	n := &domain.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
		Meta:    meta,
	}
	if err := s.store.Insert(ctx, n); err != nil {
		return fmt.Errorf("%w: emit notification: %v", apperr.ErrDependency, err)
	}
	return nil
}

var _ Sink = (*StoreSink)(nil)
