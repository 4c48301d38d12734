package service

import (
	"context"

	"creatorkit/internal/domain/entity"
)

// TokenGrant is the result of an OAuth code exchange or token refresh.
type TokenGrant struct {
	AccessToken string
	ExpiresIn   int64 // Seconds until expiry; 0 means the platform reported none.
}

// PlatformIdentity resolves the end resource a granted token actually serves.
// EffectiveToken is the token usable for data calls, which can differ from the
// OAuth-granted one when the grant is scoped to an intermediary entity.
type PlatformIdentity struct {
	PlatformUserID string
	Username       string
	EffectiveToken string
}

// PlatformClient is the per-platform capability interface. Implementations are
// stateless; every call is one or more outbound HTTP requests under a timeout.
// Platforms lacking a capability return domainerrors.ErrUnsupportedPlatform
// instead of failing ad hoc.
type PlatformClient interface {
	// Platform identifies which platform this client serves.
	Platform() entity.Platform

	// AuthorizationURL builds the provider consent-screen URL embedding the
	// CSRF state token and the requested scopes.
	AuthorizationURL(state string) string

	// ExchangeCode trades an authorization code for an access token. This may
	// be a multi-step exchange (short-lived code, short-lived token,
	// long-lived token); callers must not assume a single round trip.
	ExchangeCode(ctx context.Context, code string) (*TokenGrant, error)

	// ResolveIdentity resolves the platform user behind a granted token and
	// returns the token actually usable for data calls.
	ResolveIdentity(ctx context.Context, accessToken string) (*PlatformIdentity, error)

	// FetchInsights retrieves profile counters, recent posts and aggregate
	// insights, and computes the derived metrics of one snapshot.
	FetchInsights(ctx context.Context, platformUserID, accessToken string) (*entity.InsightBundle, error)

	// RefreshToken exchanges the current token for a fresh one on platforms
	// that support refresh.
	RefreshToken(ctx context.Context, currentToken string) (*TokenGrant, error)
}

// PlatformRegistry resolves the client for a platform.
type PlatformRegistry interface {
	// Client returns the client for the platform, or
	// domainerrors.ErrUnsupportedPlatform when none is registered.
	Client(platform entity.Platform) (PlatformClient, error)
}
