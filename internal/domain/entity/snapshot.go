package entity

import (
	"time"

	"github.com/google/uuid"
)

// TopPost is one entry of a snapshot's recent-posts digest.
type TopPost struct {
	ID        string `json:"id"`
	Caption   string `json:"caption,omitempty"`
	Likes     int    `json:"likes"`
	Comments  int    `json:"comments"`
	MediaType string `json:"type,omitempty"`
	Permalink string `json:"permalink,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// AudienceDemographics describes the follower audience breakdown, when the
// platform exposes it.
type AudienceDemographics struct {
	AgeRanges    map[string]float64 `json:"age_ranges,omitempty"`
	GenderSplit  map[string]float64 `json:"gender_split,omitempty"`
	TopCountries map[string]float64 `json:"top_countries,omitempty"`
}

// InsightBundle is the aggregate result of one platform insights fetch.
// Derived averages are already rounded to two decimal places.
type InsightBundle struct {
	FollowersCount int       `json:"followers_count"`
	FollowingCount int       `json:"following_count"`
	PostsCount     int       `json:"posts_count"`
	AvgLikes       float64   `json:"avg_likes"`
	AvgComments    float64   `json:"avg_comments"`
	AvgViews       float64   `json:"avg_views"`
	EngagementRate float64   `json:"engagement_rate"`
	TopPosts       []TopPost `json:"top_posts"`

	Demographics *AudienceDemographics `json:"audience_demographics,omitempty"`
}

// AnalyticsSnapshot is one dated row of aggregated analytics for a linked
// account. At most one snapshot exists per (account, calendar day); a repeat
// sync within the same day overwrites the metric fields.
type AnalyticsSnapshot struct {
	ID              uuid.UUID `json:"id"`
	SocialAccountID uuid.UUID `json:"social_account_id"`
	SnapshotDate    string    `json:"snapshot_date"` // UTC calendar date, formatted YYYY-MM-DD.
	FollowersCount  int       `json:"followers_count"`
	FollowingCount  int       `json:"following_count"`
	PostsCount      int       `json:"posts_count"`
	AvgLikes        float64   `json:"avg_likes"`
	AvgComments     float64   `json:"avg_comments"`
	AvgViews        float64   `json:"avg_views"`
	EngagementRate  float64   `json:"engagement_rate"`
	TopPosts        []TopPost `json:"top_posts"`
	CreatedAt       time.Time `json:"created_at"`

	Demographics *AudienceDemographics `json:"audience_demographics,omitempty"`
}

// SnapshotDateFormat is the storage layout of SnapshotDate.
const SnapshotDateFormat = "2006-01-02"

// SnapshotDateFor returns the UTC calendar date for the given instant.
func SnapshotDateFor(t time.Time) string {
	return t.UTC().Format(SnapshotDateFormat)
}
