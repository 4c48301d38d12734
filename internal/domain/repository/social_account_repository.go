// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"creatorkit/internal/domain/entity"
	"creatorkit/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for social account persistence.
var (
	// ErrSocialAccountNotFound is returned when a linked account is not found.
	ErrSocialAccountNotFound = errors.New("social account not found")
)

// SocialAccountRepository defines the interface for linked-account database operations.
type SocialAccountRepository interface {
	// FindByOwnerAndPlatform retrieves the account linked by an owner for one platform.
	FindByOwnerAndPlatform(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) (*entity.SocialAccount, error)

	// FindByOwner retrieves all accounts linked by an owner.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.SocialAccount, error)

	// FindConnected retrieves every connected account, across all platforms.
	FindConnected(ctx context.Context) ([]*entity.SocialAccount, error)

	// FindConnectedByOwner retrieves an owner's connected accounts.
	FindConnectedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.SocialAccount, error)

	// FindExpiringBefore retrieves connected accounts whose credential has a
	// known expiry earlier than the deadline. Accounts with a NULL expiry are
	// never selected.
	FindExpiringBefore(ctx context.Context, deadline time.Time) ([]*entity.SocialAccount, error)

	// Upsert inserts the account, or overwrites the credential and identity
	// fields of the existing row keyed on (owner_id, platform), re-enabling
	// is_connected. The entity is updated with the stored row's id.
	Upsert(ctx context.Context, account *entity.SocialAccount) error

	// UpdateCredential persists a freshly refreshed token ciphertext and expiry.
	UpdateCredential(ctx context.Context, id uuid.UUID, accessToken string, expiresAt *time.Time) error

	// UpdateSyncCache updates the denormalized follower count and sync timestamp.
	UpdateSyncCache(ctx context.Context, id uuid.UUID, followersCount int, syncedAt time.Time) error

	// MarkDisconnected soft-disables the account, keeping the row for audit.
	MarkDisconnected(ctx context.Context, id uuid.UUID) error

	// Delete hard-deletes the account. Snapshots cascade at the database level.
	Delete(ctx context.Context, ownerID uuid.UUID, platform entity.Platform) error
}
