package digest

import (
	"testing"

	"creatorkit/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestFormatAccountSummary_WithSnapshot(t *testing.T) {
	account := &entity.SocialAccount{
		Platform:         entity.PlatformInstagram,
		PlatformUsername: "creator",
		FollowersCount:   900, // Stale cache; the snapshot wins.
	}
	snapshot := &entity.AnalyticsSnapshot{
		FollowersCount: 12345,
		EngagementRate: 3.5,
		AvgLikes:       30,
	}

	want := "📊 Your analytics:\n" +
		"\n" +
		"👥 Followers: 12,345\n" +
		"💬 Engagement rate: 3.50%\n" +
		"❤️ Avg likes: 30.00\n" +
		"📱 Platform: Instagram\n" +
		"🔗 @creator"
	assert.Equal(t, want, FormatAccountSummary(account, snapshot))
}

func TestFormatAccountSummary_NoSnapshot(t *testing.T) {
	account := &entity.SocialAccount{
		Platform:       entity.PlatformInstagram,
		FollowersCount: 42,
	}

	want := "📊 Your analytics:\n" +
		"\n" +
		"👥 Followers: 42\n" +
		"💬 Engagement rate: N/A\n" +
		"❤️ Avg likes: N/A\n" +
		"📱 Platform: Instagram"
	assert.Equal(t, want, FormatAccountSummary(account, nil))
}

func TestFormatDailyDigest(t *testing.T) {
	accounts := []*entity.SocialAccount{
		{Platform: entity.PlatformInstagram, FollowersCount: 1234567},
		{Platform: entity.PlatformTikTok, FollowersCount: 0},
	}

	want := "🌅 Daily digest for Alice\n" +
		"\n" +
		"📱 Instagram: 1,234,567 followers\n" +
		"📱 Tiktok: 0 followers"
	assert.Equal(t, want, FormatDailyDigest("Alice", accounts))
}

func TestFormatDailyDigest_NoAccounts(t *testing.T) {
	want := "🌅 Daily digest for Bob\n" +
		"\n" +
		"No connected accounts yet."
	assert.Equal(t, want, FormatDailyDigest("Bob", nil))
}

func TestGroupDigits(t *testing.T) {
	assert.Equal(t, "0", groupDigits(0))
	assert.Equal(t, "999", groupDigits(999))
	assert.Equal(t, "1,000", groupDigits(1000))
	assert.Equal(t, "-12,345", groupDigits(-12345))
}
