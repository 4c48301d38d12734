package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/repository"
	"creatorkit/internal/domain/service"
	"creatorkit/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type linkerService struct {
	registry    service.PlatformRegistry
	vault       service.TokenVault
	accountRepo repository.SocialAccountRepository
	logger      *slog.Logger
}

// LinkerServiceParams holds dependencies for LinkerService, injected by Fx.
type LinkerServiceParams struct {
	fx.In

	Registry    service.PlatformRegistry
	Vault       service.TokenVault
	AccountRepo repository.SocialAccountRepository
	Logger      *slog.Logger
}

// NewLinkerService creates a new account linker service instance
func NewLinkerService(params LinkerServiceParams) usecase.LinkerUsecase {
	return &linkerService{
		registry:    params.Registry,
		vault:       params.Vault,
		accountRepo: params.AccountRepo,
		logger:      params.Logger,
	}
}

// Initiate starts the OAuth handshake and returns the consent URL plus the
// state token to store in the caller's cookie.
func (s *linkerService) Initiate(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) (string, string, error) {
	client, err := s.registry.Client(platform)
	if err != nil {
		return "", "", err
	}

	state := newStateToken(ownerID)

	return client.AuthorizationURL(state), state, nil
}

// Complete finishes the handshake. The state cookie is single-use: the handler
// clears it before calling here, so a failed completion requires a fresh
// Initiate.
func (s *linkerService) Complete(ctx context.Context, input usecase.CompleteLinkInput) (*entity.SocialAccount, error) {
	// The user declining on the consent screen is a normal outcome, not a
	// fault; it arrives as the provider's error parameter.
	if input.ProviderError != "" {
		return nil, domainerrors.ErrAuthorizationDenied
	}

	if input.State == "" || input.CookieState == "" || input.State != input.CookieState {
		return nil, domainerrors.ErrInvalidOAuthState
	}

	ownerID, err := parseStateToken(input.State)
	if err != nil {
		return nil, domainerrors.ErrInvalidOAuthState
	}

	client, err := s.registry.Client(input.Platform)
	if err != nil {
		return nil, err
	}

	grant, err := client.ExchangeCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	identity, err := client.ResolveIdentity(ctx, grant.AccessToken)
	if err != nil {
		return nil, err
	}

	ciphertext, err := s.vault.Encrypt(identity.EffectiveToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt platform credential")
	}

	account := &entity.SocialAccount{
		OwnerID:          ownerID,
		Platform:         input.Platform,
		PlatformUserID:   identity.PlatformUserID,
		PlatformUsername: identity.Username,
		AccessToken:      ciphertext,
		TokenExpiresAt:   expiryFrom(grant.ExpiresIn, time.Now()),
		IsConnected:      true,
	}

	// A single upsert keyed on (owner, platform) is the only write, so a
	// failure anywhere above leaves no partially connected record.
	if err := s.accountRepo.Upsert(ctx, account); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "platform account linked",
		slog.String("ownerID", ownerID.String()),
		slog.String("platform", input.Platform.String()),
		slog.String("platformUsername", identity.Username))

	return account, nil
}

// Disconnect hard-deletes the linked account; snapshots cascade at the
// database level.
func (s *linkerService) Disconnect(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) error {
	if err := s.accountRepo.Delete(ctx, ownerID, platform); err != nil {
		if errors.Is(err, repository.ErrSocialAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return errors.Wrap(err, "failed to disconnect account")
	}

	s.logger.InfoContext(ctx, "platform account disconnected",
		slog.String("ownerID", ownerID.String()),
		slog.String("platform", platform.String()))

	return nil
}

// ListAccounts retrieves the caller's linked accounts.
func (s *linkerService) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*entity.SocialAccount, error) {
	accounts, err := s.accountRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list linked accounts")
	}

	return accounts, nil
}

// newStateToken builds the CSRF state as ownerID:nonce so the callback can
// recover the owner without a server-side session.
func newStateToken(ownerID uuid.UUID) string {
	return ownerID.String() + ":" + uuid.NewString()
}

// parseStateToken recovers the owner id from a state token.
func parseStateToken(state string) (uuid.UUID, error) {
	rawOwner, nonce, ok := strings.Cut(state, ":")
	if !ok || nonce == "" {
		return uuid.Nil, errors.New("malformed state token")
	}

	ownerID, err := uuid.Parse(rawOwner)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "malformed owner id in state token")
	}

	return ownerID, nil
}

// expiryFrom converts a relative expires_in to an absolute timestamp. Zero
// means the platform reported no expiry, stored as NULL.
func expiryFrom(expiresIn int64, now time.Time) *time.Time {
	if expiresIn <= 0 {
		return nil
	}
	expiry := now.Add(time.Duration(expiresIn) * time.Second)

	return &expiry
}
