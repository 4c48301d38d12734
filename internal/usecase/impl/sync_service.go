package impl

import (
	"context"
	"log/slog"
	"time"

	"creatorkit/config"
	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/repository"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type syncService struct {
	registry     service.PlatformRegistry
	vault        service.TokenVault
	accountRepo  repository.SocialAccountRepository
	snapshotRepo repository.SnapshotRepository
	config       *config.Config
	logger       *slog.Logger
}

// SyncServiceParams holds dependencies for SyncService, injected by Fx.
type SyncServiceParams struct {
	fx.In

	Registry     service.PlatformRegistry
	Vault        service.TokenVault
	AccountRepo  repository.SocialAccountRepository
	SnapshotRepo repository.SnapshotRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewSyncService creates a new analytics sync service instance
func NewSyncService(params SyncServiceParams) usecase.SyncUsecase {
	return &syncService{
		registry:     params.Registry,
		vault:        params.Vault,
		accountRepo:  params.AccountRepo,
		snapshotRepo: params.SnapshotRepo,
		config:       params.Config,
		logger:       params.Logger,
	}
}

// SyncAccount fetches the account's current insights and upserts today's
// snapshot row. The (account, date) unique constraint makes the write
// idempotent: concurrent runs of the same day converge on one row without a
// lock, last write wins.
func (s *syncService) SyncAccount(ctx context.Context, account *entity.SocialAccount) (*entity.AnalyticsSnapshot, error) {
	if !account.HasCredential() {
		return nil, domainerrors.ErrNoCredential
	}

	client, err := s.registry.Client(account.Platform)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.vault.Decrypt(account.AccessToken)
	if err != nil {
		return nil, err
	}

	bundle, err := client.FetchInsights(ctx, account.PlatformUserID, accessToken)
	if err != nil {
		return nil, err
	}

	snapshot := &entity.AnalyticsSnapshot{
		SocialAccountID: account.ID,
		SnapshotDate:    entity.SnapshotDateFor(time.Now()),
		FollowersCount:  bundle.FollowersCount,
		FollowingCount:  bundle.FollowingCount,
		PostsCount:      bundle.PostsCount,
		AvgLikes:        bundle.AvgLikes,
		AvgComments:     bundle.AvgComments,
		AvgViews:        bundle.AvgViews,
		EngagementRate:  bundle.EngagementRate,
		TopPosts:        bundle.TopPosts,
		Demographics:    bundle.Demographics,
	}

	if err := s.snapshotRepo.Upsert(ctx, snapshot); err != nil {
		return nil, err
	}

	// Denormalized cache on the account row; the snapshot is the source of
	// truth, so a failure here does not undo the sync.
	if err := s.accountRepo.UpdateSyncCache(ctx, account.ID, bundle.FollowersCount, time.Now()); err != nil {
		s.logger.WarnContext(ctx, "failed to update account sync cache",
			slog.String("accountID", account.ID.String()),
			slog.Any("error", err))
	}

	return snapshot, nil
}

// SyncAll syncs every connected account across all platforms with per-item
// failure isolation.
func (s *syncService) SyncAll(ctx context.Context) (*usecase.BatchResult, error) {
	accounts, err := s.accountRepo.FindConnected(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select connected accounts")
	}

	result := runBatch(ctx, accounts, s.config.Sync.Concurrency, s.config.Sync.ItemTimeout,
		func(itemCtx context.Context, account *entity.SocialAccount) usecase.BatchItem {
			item := usecase.BatchItem{AccountID: account.ID, Platform: account.Platform}

			if _, err := s.SyncAccount(itemCtx, account); err != nil {
				item.Error = err.Error()
				s.logger.WarnContext(itemCtx, "analytics sync failed",
					slog.String("accountID", account.ID.String()),
					slog.String("platform", account.Platform.String()),
					slog.Any("error", err))

				return item
			}

			item.Success = true

			return item
		})

	s.logger.InfoContext(ctx, "analytics sync batch finished",
		slog.Int("total", result.Total),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))

	return result, nil
}

// SyncOwn syncs one of the caller's accounts on demand, surfacing the error
// directly instead of folding it into a batch result.
func (s *syncService) SyncOwn(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) (*entity.AnalyticsSnapshot, error) {
	account, err := s.accountRepo.FindByOwnerAndPlatform(ctx, ownerID, platform)
	if err != nil {
		if errors.Is(err, repository.ErrSocialAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to load linked account")
	}

	if !account.IsConnected {
		return nil, domainerrors.ErrAccountNotConnected
	}

	return s.SyncAccount(ctx, account)
}
