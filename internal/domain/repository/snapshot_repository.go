package repository

import (
	"context"

	"creatorkit/internal/domain/entity"
	"creatorkit/internal/errors"

	"github.com/google/uuid"
)

// ErrSnapshotNotFound is returned when no snapshot exists for the account.
var ErrSnapshotNotFound = errors.New("analytics snapshot not found")

// SnapshotRepository defines the interface for analytics snapshot persistence.
type SnapshotRepository interface {
	// Upsert inserts the snapshot, or overwrites all metric fields of the
	// existing row keyed on (social_account_id, snapshot_date). Last write
	// wins within a day; concurrent invocations converge to one row.
	Upsert(ctx context.Context, snapshot *entity.AnalyticsSnapshot) error

	// FindLatestByAccount retrieves the most recent snapshot for an account.
	FindLatestByAccount(ctx context.Context, accountID uuid.UUID) (*entity.AnalyticsSnapshot, error)

	// FindByAccountAndDate retrieves one snapshot row by its composite key.
	FindByAccountAndDate(ctx context.Context, accountID uuid.UUID, date string) (*entity.AnalyticsSnapshot, error)
}
