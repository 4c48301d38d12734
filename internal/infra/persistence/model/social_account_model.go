package model

import (
	"time"

	"github.com/google/uuid"
)

// SocialAccountModel mirrors the 'social_accounts' table. PostgreSQL generates
// UUIDs via uuid_generate_v7(). One row per (owner, platform); relinking the
// same platform upserts into the existing row.
type SocialAccountModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_social_accounts_owner_platform"`
	Platform         string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_social_accounts_owner_platform"`
	PlatformUserID   string    `gorm:"type:varchar(64);not null"`
	PlatformUsername string    `gorm:"type:varchar(255)"`
	AccessToken      string    `gorm:"type:text"` // Vault ciphertext.
	RefreshToken     string    `gorm:"type:text"` // Vault ciphertext.
	TokenExpiresAt   *time.Time
	FollowersCount   int  `gorm:"not null;default:0"`
	IsConnected      bool `gorm:"not null;default:true"`
	LastSyncedAt     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Snapshots []AnalyticsSnapshotModel `gorm:"foreignKey:SocialAccountID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (SocialAccountModel) TableName() string {
	return "social_accounts"
}
