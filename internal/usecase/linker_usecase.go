package usecase

import (
	"context"

	"creatorkit/internal/domain/entity"

	"github.com/google/uuid"
)

// CompleteLinkInput carries everything the OAuth callback received.
type CompleteLinkInput struct {
	Platform      entity.Platform
	Code          string
	ProviderError string // The provider's 'error' query parameter, when present.
	State         string // The 'state' query parameter echoed by the provider.
	CookieState   string // The state stored in the caller's cookie at initiation.
}

// LinkerUsecase defines the interface for the account linking use cases.
// An account moves through: no account, pending authorization (state cookie
// issued), connected (credential stored), disconnected.
type LinkerUsecase interface {
	// Initiate starts the OAuth handshake for a platform. It returns the
	// provider consent URL to redirect to and the state token the handler
	// must persist in the caller's cookie for the later CSRF check.
	Initiate(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) (redirectURL, state string, err error)

	// Complete finishes the handshake: verifies the state against the cookie,
	// exchanges the code, resolves the platform identity, encrypts the
	// effective token and upserts the linked account. No partially connected
	// record survives a mid-flight failure.
	Complete(ctx context.Context, input CompleteLinkInput) (*entity.SocialAccount, error)

	// Disconnect hard-deletes the linked account; snapshots cascade.
	Disconnect(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) error

	// ListAccounts retrieves the caller's linked accounts.
	ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*entity.SocialAccount, error)
}
