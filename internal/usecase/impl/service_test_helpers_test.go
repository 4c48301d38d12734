package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"creatorkit/config"
	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/repository"
	"creatorkit/internal/domain/service"

	"github.com/google/uuid"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Sync = &config.SyncConfig{
		RefreshWindow:  7 * 24 * time.Hour,
		Concurrency:    4,
		ItemTimeout:    5 * time.Second,
		RequestTimeout: time.Second,
	}

	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// --- account repository stub ---

type accountKey struct {
	owner    uuid.UUID
	platform entity.Platform
}

type stubAccountRepo struct {
	mu       sync.Mutex
	accounts map[accountKey]*entity.SocialAccount

	upsertCalls  int
	upsertErr    error
	disconnected []uuid.UUID
}

func newStubAccountRepo(accounts ...*entity.SocialAccount) *stubAccountRepo {
	repo := &stubAccountRepo{accounts: make(map[accountKey]*entity.SocialAccount)}
	for _, account := range accounts {
		if account.ID == uuid.Nil {
			account.ID = uuid.New()
		}
		repo.accounts[accountKey{account.OwnerID, account.Platform}] = account
	}

	return repo
}

func (r *stubAccountRepo) FindByOwnerAndPlatform(_ context.Context, ownerID uuid.UUID, platform entity.Platform) (*entity.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[accountKey{ownerID, platform}]
	if !ok {
		return nil, repository.ErrSocialAccountNotFound
	}

	return account, nil
}

func (r *stubAccountRepo) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var accounts []*entity.SocialAccount
	for key, account := range r.accounts {
		if key.owner == ownerID {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

func (r *stubAccountRepo) FindConnected(_ context.Context) ([]*entity.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var accounts []*entity.SocialAccount
	for _, account := range r.accounts {
		if account.IsConnected {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

func (r *stubAccountRepo) FindConnectedByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var accounts []*entity.SocialAccount
	for key, account := range r.accounts {
		if key.owner == ownerID && account.IsConnected {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

func (r *stubAccountRepo) FindExpiringBefore(_ context.Context, deadline time.Time) ([]*entity.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var accounts []*entity.SocialAccount
	for _, account := range r.accounts {
		if account.IsConnected && account.TokenExpiresAt != nil && account.TokenExpiresAt.Before(deadline) {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

func (r *stubAccountRepo) Upsert(_ context.Context, account *entity.SocialAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upsertCalls++
	if r.upsertErr != nil {
		return r.upsertErr
	}

	key := accountKey{account.OwnerID, account.Platform}
	if existing, ok := r.accounts[key]; ok {
		account.ID = existing.ID
	} else if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	r.accounts[key] = account

	return nil
}

func (r *stubAccountRepo) UpdateCredential(_ context.Context, id uuid.UUID, accessToken string, expiresAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.ID == id {
			account.AccessToken = accessToken
			account.TokenExpiresAt = expiresAt

			return nil
		}
	}

	return repository.ErrSocialAccountNotFound
}

func (r *stubAccountRepo) UpdateSyncCache(_ context.Context, id uuid.UUID, followersCount int, syncedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.ID == id {
			account.FollowersCount = followersCount
			account.LastSyncedAt = &syncedAt

			return nil
		}
	}

	return repository.ErrSocialAccountNotFound
}

func (r *stubAccountRepo) MarkDisconnected(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.ID == id {
			account.IsConnected = false
			r.disconnected = append(r.disconnected, id)

			return nil
		}
	}

	return repository.ErrSocialAccountNotFound
}

func (r *stubAccountRepo) Delete(_ context.Context, ownerID uuid.UUID, platform entity.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := accountKey{ownerID, platform}
	if _, ok := r.accounts[key]; !ok {
		return repository.ErrSocialAccountNotFound
	}
	delete(r.accounts, key)

	return nil
}

func (r *stubAccountRepo) byID(id uuid.UUID) *entity.SocialAccount {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.ID == id {
			return account
		}
	}

	return nil
}

// --- snapshot repository stub ---

type snapshotKey struct {
	accountID uuid.UUID
	date      string
}

// stubSnapshotRepo honors the (account, date) unique constraint the same way
// the database upsert does: one row per key, metrics overwritten in place.
type stubSnapshotRepo struct {
	mu        sync.Mutex
	snapshots map[snapshotKey]*entity.AnalyticsSnapshot
}

func newStubSnapshotRepo() *stubSnapshotRepo {
	return &stubSnapshotRepo{snapshots: make(map[snapshotKey]*entity.AnalyticsSnapshot)}
}

func (r *stubSnapshotRepo) Upsert(_ context.Context, snapshot *entity.AnalyticsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := snapshotKey{snapshot.SocialAccountID, snapshot.SnapshotDate}
	if existing, ok := r.snapshots[key]; ok {
		snapshot.ID = existing.ID
		snapshot.CreatedAt = existing.CreatedAt
	} else {
		snapshot.ID = uuid.New()
		snapshot.CreatedAt = time.Now()
	}
	stored := *snapshot
	r.snapshots[key] = &stored

	return nil
}

func (r *stubSnapshotRepo) FindLatestByAccount(_ context.Context, accountID uuid.UUID) (*entity.AnalyticsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *entity.AnalyticsSnapshot
	for key, snapshot := range r.snapshots {
		if key.accountID != accountID {
			continue
		}
		if latest == nil || snapshot.SnapshotDate > latest.SnapshotDate {
			latest = snapshot
		}
	}
	if latest == nil {
		return nil, repository.ErrSnapshotNotFound
	}

	return latest, nil
}

func (r *stubSnapshotRepo) FindByAccountAndDate(_ context.Context, accountID uuid.UUID, date string) (*entity.AnalyticsSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot, ok := r.snapshots[snapshotKey{accountID, date}]
	if !ok {
		return nil, repository.ErrSnapshotNotFound
	}

	return snapshot, nil
}

func (r *stubSnapshotRepo) rowCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.snapshots)
}

// --- profile repository stub ---

type stubProfileRepo struct {
	profiles []*entity.CreatorProfile
}

func (r *stubProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.CreatorProfile, error) {
	for _, profile := range r.profiles {
		if profile.ID == id {
			return profile, nil
		}
	}

	return nil, repository.ErrProfileNotFound
}

func (r *stubProfileRepo) FindDigestSubscribers(_ context.Context) ([]*entity.CreatorProfile, error) {
	var subscribers []*entity.CreatorProfile
	for _, profile := range r.profiles {
		if profile.TelegramUsername != "" {
			subscribers = append(subscribers, profile)
		}
	}

	return subscribers, nil
}

// --- vault stub ---

// stubVault wraps plaintexts reversibly so assertions can see both sides.
type stubVault struct {
	failDecrypt map[string]error
}

func (v *stubVault) Encrypt(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func (v *stubVault) Decrypt(blob string) (string, error) {
	if err, ok := v.failDecrypt[blob]; ok {
		return "", err
	}

	return strings.TrimPrefix(blob, "enc:"), nil
}

// --- platform client / registry stubs ---

type stubPlatformClient struct {
	platform entity.Platform

	exchangeFn func(ctx context.Context, code string) (*service.TokenGrant, error)
	identityFn func(ctx context.Context, accessToken string) (*service.PlatformIdentity, error)
	insightsFn func(ctx context.Context, platformUserID, accessToken string) (*entity.InsightBundle, error)
	refreshFn  func(ctx context.Context, currentToken string) (*service.TokenGrant, error)
}

func (c *stubPlatformClient) Platform() entity.Platform { return c.platform }

func (c *stubPlatformClient) AuthorizationURL(state string) string {
	return "https://provider.example/oauth?state=" + state
}

func (c *stubPlatformClient) ExchangeCode(ctx context.Context, code string) (*service.TokenGrant, error) {
	return c.exchangeFn(ctx, code)
}

func (c *stubPlatformClient) ResolveIdentity(ctx context.Context, accessToken string) (*service.PlatformIdentity, error) {
	return c.identityFn(ctx, accessToken)
}

func (c *stubPlatformClient) FetchInsights(ctx context.Context, platformUserID, accessToken string) (*entity.InsightBundle, error) {
	return c.insightsFn(ctx, platformUserID, accessToken)
}

func (c *stubPlatformClient) RefreshToken(ctx context.Context, currentToken string) (*service.TokenGrant, error) {
	return c.refreshFn(ctx, currentToken)
}

type stubRegistry struct {
	clients map[entity.Platform]service.PlatformClient
}

func newStubRegistry(clients ...service.PlatformClient) *stubRegistry {
	indexed := make(map[entity.Platform]service.PlatformClient)
	for _, client := range clients {
		indexed[client.Platform()] = client
	}

	return &stubRegistry{clients: indexed}
}

func (r *stubRegistry) Client(platform entity.Platform) (service.PlatformClient, error) {
	client, ok := r.clients[platform]
	if !ok {
		return nil, domainerrors.ErrUnsupportedPlatform
	}

	return client, nil
}

// --- digest sender stub ---

type sentDigest struct {
	chatID int64
	text   string
}

type stubSender struct {
	mu   sync.Mutex
	sent []sentDigest
	err  error
}

func (s *stubSender) Send(_ context.Context, chatID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentDigest{chatID: chatID, text: text})

	return nil
}
