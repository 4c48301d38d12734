package usecase

import (
	"context"

	"creatorkit/internal/domain/entity"

	"github.com/google/uuid"
)

// SyncUsecase defines the interface for the analytics synchronization use cases.
type SyncUsecase interface {
	// SyncAccount fetches the account's current insights and upserts the
	// snapshot row for today's UTC date. Re-running within the same day
	// overwrites the row's metrics rather than adding a second one.
	SyncAccount(ctx context.Context, account *entity.SocialAccount) (*entity.AnalyticsSnapshot, error)

	// SyncAll syncs every connected account across all platforms with
	// per-item failure isolation.
	SyncAll(ctx context.Context) (*BatchResult, error)

	// SyncOwn syncs one of the caller's accounts on demand and surfaces the
	// error directly instead of folding it into a batch result.
	SyncOwn(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) (*entity.AnalyticsSnapshot, error)
}
