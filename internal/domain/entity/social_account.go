// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SocialAccount binds a creator profile to one external platform identity
// and its encrypted credential.
type SocialAccount struct {
	ID               uuid.UUID  `json:"id"`                 // The unique identifier of the linked account.
	OwnerID          uuid.UUID  `json:"owner_id"`           // The creator profile that owns this link.
	Platform         Platform   `json:"platform"`           // The external platform ("instagram", "tiktok").
	PlatformUserID   string     `json:"platform_user_id"`   // The account id on the external platform.
	PlatformUsername string     `json:"platform_username"`  // The handle on the external platform.
	AccessToken      string     `json:"-"`                  // Vault ciphertext. Plaintext tokens never persist.
	RefreshToken     string     `json:"-"`                  // Vault ciphertext, empty when the platform has none.
	TokenExpiresAt   *time.Time `json:"token_expires_at"`   // Nil means never expires / unknown.
	FollowersCount   int        `json:"followers_count"`    // Denormalized last-known value.
	IsConnected      bool       `json:"is_connected"`       // False after disconnect or hard refresh failure.
	LastSyncedAt     *time.Time `json:"last_synced_at"`     // Timestamp of the last successful analytics sync.
	CreatedAt        time.Time  `json:"created_at"`         // Timestamp of the first successful OAuth callback.
	UpdatedAt        time.Time  `json:"updated_at"`         // Timestamp of the last modification.
}

// HasCredential reports whether a stored access token ciphertext exists.
func (a *SocialAccount) HasCredential() bool {
	return a.AccessToken != ""
}
