// Package tiktok reserves the tiktok platform slot. The platform enum and
// persistence already accept tiktok accounts, but no API integration exists
// yet, so every capability reports the platform as unsupported.
package tiktok

import (
	"context"

	"creatorkit/internal/domain/entity"
	domainerrors "creatorkit/internal/domain/errors"
	"creatorkit/internal/domain/service"
)

type Client struct{}

// NewClient is the constructor for the tiktok placeholder client.
func NewClient() service.PlatformClient {
	return &Client{}
}

func (c *Client) Platform() entity.Platform {
	return entity.PlatformTikTok
}

func (c *Client) AuthorizationURL(_ string) string {
	return ""
}

func (c *Client) ExchangeCode(_ context.Context, _ string) (*service.TokenGrant, error) {
	return nil, domainerrors.ErrUnsupportedPlatform
}

func (c *Client) ResolveIdentity(_ context.Context, _ string) (*service.PlatformIdentity, error) {
	return nil, domainerrors.ErrUnsupportedPlatform
}

func (c *Client) FetchInsights(_ context.Context, _, _ string) (*entity.InsightBundle, error) {
	return nil, domainerrors.ErrUnsupportedPlatform
}

func (c *Client) RefreshToken(_ context.Context, _ string) (*service.TokenGrant, error) {
	return nil, domainerrors.ErrUnsupportedPlatform
}
