package impl

import (
	"context"
	"log/slog"
	"time"

	"creatorkit/config"
	"creatorkit/internal/domain/entity"
	"creatorkit/internal/domain/repository"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type refreshService struct {
	registry    service.PlatformRegistry
	vault       service.TokenVault
	accountRepo repository.SocialAccountRepository
	config      *config.Config
	logger      *slog.Logger
}

// RefreshServiceParams holds dependencies for RefreshService, injected by Fx.
type RefreshServiceParams struct {
	fx.In

	Registry    service.PlatformRegistry
	Vault       service.TokenVault
	AccountRepo repository.SocialAccountRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewRefreshService creates a new token refresh service instance
func NewRefreshService(params RefreshServiceParams) usecase.RefreshUsecase {
	return &refreshService{
		registry:    params.Registry,
		vault:       params.Vault,
		accountRepo: params.AccountRepo,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// RefreshExpiring refreshes every connected credential expiring within the
// configured window. Accounts with no recorded expiry are never selected.
func (s *refreshService) RefreshExpiring(ctx context.Context) (*usecase.BatchResult, error) {
	deadline := time.Now().Add(s.config.Sync.RefreshWindow)

	accounts, err := s.accountRepo.FindExpiringBefore(ctx, deadline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to select expiring accounts")
	}

	result := runBatch(ctx, accounts, s.config.Sync.Concurrency, s.config.Sync.ItemTimeout,
		func(itemCtx context.Context, account *entity.SocialAccount) usecase.BatchItem {
			item := usecase.BatchItem{AccountID: account.ID, Platform: account.Platform}

			if err := s.refreshAccount(itemCtx, account); err != nil {
				item.Error = err.Error()
				s.logger.WarnContext(itemCtx, "credential refresh failed",
					slog.String("accountID", account.ID.String()),
					slog.String("platform", account.Platform.String()),
					slog.Any("error", err))

				return item
			}

			item.Success = true

			return item
		})

	s.logger.InfoContext(ctx, "credential refresh batch finished",
		slog.Int("total", result.Total),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))

	return result, nil
}

// refreshAccount rotates one account's credential: decrypt, refresh upstream,
// re-encrypt, persist. An integrity failure additionally disconnects the
// account so the creator is prompted to re-authorize.
func (s *refreshService) refreshAccount(ctx context.Context, account *entity.SocialAccount) error {
	client, err := s.registry.Client(account.Platform)
	if err != nil {
		return err
	}

	plaintext, err := s.vault.Decrypt(account.AccessToken)
	if err != nil {
		if errors.Is(err, service.ErrVaultIntegrity) {
			if markErr := s.accountRepo.MarkDisconnected(ctx, account.ID); markErr != nil {
				s.logger.ErrorContext(ctx, "failed to disconnect account after integrity failure",
					slog.String("accountID", account.ID.String()),
					slog.Any("error", markErr))
			}
		}

		return err
	}

	grant, err := client.RefreshToken(ctx, plaintext)
	if err != nil {
		return err
	}

	ciphertext, err := s.vault.Encrypt(grant.AccessToken)
	if err != nil {
		return errors.Wrap(err, "failed to encrypt refreshed credential")
	}

	return s.accountRepo.UpdateCredential(ctx, account.ID, ciphertext, expiryFrom(grant.ExpiresIn, time.Now()))
}
