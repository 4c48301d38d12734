package model

import (
	"time"

	"github.com/google/uuid"
)

// CreatorProfileModel mirrors the 'creator_profiles' table. This service only
// reads it; profile CRUD belongs to the account service owning the table.
type CreatorProfileModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username         string    `gorm:"type:varchar(100);unique;not null"`
	FullName         string    `gorm:"type:varchar(255)"`
	TelegramUsername string    `gorm:"type:varchar(100)"`
	TelegramChatID   int64     `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (CreatorProfileModel) TableName() string {
	return "creator_profiles"
}
