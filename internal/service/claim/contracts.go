//go:generate mockgen -source=contracts.go -destination=claim_mocks_test.go -package=claim

package claim

import (
	"context"

	"github.com/google/uuid"

	"foodbridge-matching/internal/ports/claimtx"
)

// txRunner abstracts the transactional scope of the claim path.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx claimtx.Repository) error) error
}

// staffDirectory reads the logistics staff roster for fan-out.
type staffDirectory interface {
	LogisticsStaffIDs(ctx context.Context) ([]uuid.UUID, error)
}

type counter interface {
	Inc()
}
