package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalyticsSnapshotModel mirrors the 'analytics_snapshots' table. The unique
// index on (social_account_id, snapshot_date) is the idempotence anchor: a
// repeat sync within the same UTC day lands on the same row.
type AnalyticsSnapshotModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SocialAccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_snapshots_account_date"`
	SnapshotDate    string    `gorm:"type:date;not null;uniqueIndex:idx_snapshots_account_date"`
	FollowersCount  int       `gorm:"not null;default:0"`
	FollowingCount  int       `gorm:"not null;default:0"`
	PostsCount      int       `gorm:"not null;default:0"`
	AvgLikes        float64   `gorm:"type:numeric(12,2);not null;default:0"`
	AvgComments     float64   `gorm:"type:numeric(12,2);not null;default:0"`
	AvgViews        float64   `gorm:"type:numeric(12,2);not null;default:0"`
	EngagementRate  float64   `gorm:"type:numeric(6,2);not null;default:0"`
	TopPosts        datatypes.JSON
	Demographics    datatypes.JSON
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (AnalyticsSnapshotModel) TableName() string {
	return "analytics_snapshots"
}
