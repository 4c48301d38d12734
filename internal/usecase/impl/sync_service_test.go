package impl

import (
	"context"
	"testing"
	"time"

	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/errors"
	"creatorkit/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSyncForTest(accountRepo *stubAccountRepo, snapshotRepo *stubSnapshotRepo, client service.PlatformClient) usecase.SyncUsecase {
	return NewSyncService(SyncServiceParams{
		Registry:     newStubRegistry(client),
		Vault:        &stubVault{},
		AccountRepo:  accountRepo,
		SnapshotRepo: snapshotRepo,
		Config:       testConfig(),
		Logger:       testLogger(),
	})
}

func insightsClient(bundle *entity.InsightBundle) *stubPlatformClient {
	return &stubPlatformClient{
		platform: entity.PlatformInstagram,
		insightsFn: func(_ context.Context, _, _ string) (*entity.InsightBundle, error) {
			copied := *bundle

			return &copied, nil
		},
	}
}

func connectedAccount() *entity.SocialAccount {
	return &entity.SocialAccount{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Platform:       entity.PlatformInstagram,
		PlatformUserID: "ig-77",
		AccessToken:    "enc:token",
		IsConnected:    true,
	}
}

func TestSync_Idempotence(t *testing.T) {
	account := connectedAccount()
	accountRepo := newStubAccountRepo(account)
	snapshotRepo := newStubSnapshotRepo()

	first := &entity.InsightBundle{FollowersCount: 1000, AvgLikes: 30, EngagementRate: 3.5}
	svc := newSyncForTest(accountRepo, snapshotRepo, insightsClient(first))

	snap1, err := svc.SyncAccount(context.Background(), account)
	require.NoError(t, err)

	// Second run within the same day reports different numbers.
	second := &entity.InsightBundle{FollowersCount: 1010, AvgLikes: 31, EngagementRate: 3.6}
	svc = newSyncForTest(accountRepo, snapshotRepo, insightsClient(second))

	snap2, err := svc.SyncAccount(context.Background(), account)
	require.NoError(t, err)

	// One row, carrying the second run's metrics.
	assert.Equal(t, 1, snapshotRepo.rowCount())
	assert.Equal(t, snap1.ID, snap2.ID)
	assert.Equal(t, snap1.SnapshotDate, snap2.SnapshotDate)

	stored, err := snapshotRepo.FindByAccountAndDate(context.Background(), account.ID, snap1.SnapshotDate)
	require.NoError(t, err)
	assert.Equal(t, 1010, stored.FollowersCount)
	assert.Equal(t, 31.0, stored.AvgLikes)
}

func TestSync_SnapshotDateIsUTC(t *testing.T) {
	account := connectedAccount()
	snapshotRepo := newStubSnapshotRepo()
	svc := newSyncForTest(newStubAccountRepo(account), snapshotRepo, insightsClient(&entity.InsightBundle{}))

	snapshot, err := svc.SyncAccount(context.Background(), account)
	require.NoError(t, err)

	assert.Equal(t, entity.SnapshotDateFor(time.Now()), snapshot.SnapshotDate)
}

func TestSync_UpdatesAccountCache(t *testing.T) {
	account := connectedAccount()
	accountRepo := newStubAccountRepo(account)
	svc := newSyncForTest(accountRepo, newStubSnapshotRepo(), insightsClient(&entity.InsightBundle{FollowersCount: 777}))

	_, err := svc.SyncAccount(context.Background(), account)
	require.NoError(t, err)

	stored := accountRepo.byID(account.ID)
	assert.Equal(t, 777, stored.FollowersCount)
	assert.NotNil(t, stored.LastSyncedAt)
}

func TestSync_MissingCredential(t *testing.T) {
	account := connectedAccount()
	account.AccessToken = ""
	svc := newSyncForTest(newStubAccountRepo(account), newStubSnapshotRepo(), insightsClient(&entity.InsightBundle{}))

	_, err := svc.SyncAccount(context.Background(), account)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoCredential))
}

func TestSyncAll_BatchIsolation(t *testing.T) {
	accounts := make([]*entity.SocialAccount, 0, 4)
	for range 4 {
		accounts = append(accounts, connectedAccount())
	}
	failing := accounts[1]
	failing.PlatformUserID = "ig-broken"
	accountRepo := newStubAccountRepo(accounts...)
	snapshotRepo := newStubSnapshotRepo()

	client := &stubPlatformClient{
		platform: entity.PlatformInstagram,
		insightsFn: func(_ context.Context, platformUserID, _ string) (*entity.InsightBundle, error) {
			if platformUserID == "ig-broken" {
				return nil, &domainerrors.UpstreamError{
					Kind:       domainerrors.UpstreamRejected,
					Platform:   "instagram",
					StatusCode: 400,
				}
			}

			return &entity.InsightBundle{FollowersCount: 100}, nil
		},
	}

	result, err := newSyncForTest(accountRepo, snapshotRepo, client).SyncAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 3, snapshotRepo.rowCount())

	for _, item := range result.Results {
		if item.AccountID == failing.ID {
			assert.False(t, item.Success)
			assert.NotEmpty(t, item.Error)
		} else {
			assert.True(t, item.Success)
		}
	}
}

func TestSyncOwn(t *testing.T) {
	account := connectedAccount()
	accountRepo := newStubAccountRepo(account)
	svc := newSyncForTest(accountRepo, newStubSnapshotRepo(), insightsClient(&entity.InsightBundle{FollowersCount: 55}))

	snapshot, err := svc.SyncOwn(context.Background(), account.OwnerID, entity.PlatformInstagram)
	require.NoError(t, err)
	assert.Equal(t, 55, snapshot.FollowersCount)
}

func TestSyncOwn_AccountNotFound(t *testing.T) {
	svc := newSyncForTest(newStubAccountRepo(), newStubSnapshotRepo(), insightsClient(&entity.InsightBundle{}))

	_, err := svc.SyncOwn(context.Background(), uuid.New(), entity.PlatformInstagram)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestSyncOwn_DisconnectedAccount(t *testing.T) {
	account := connectedAccount()
	account.IsConnected = false
	svc := newSyncForTest(newStubAccountRepo(account), newStubSnapshotRepo(), insightsClient(&entity.InsightBundle{}))

	_, err := svc.SyncOwn(context.Background(), account.OwnerID, entity.PlatformInstagram)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotConnected))
}
