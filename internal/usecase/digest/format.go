// Package digest formats analytics summaries for chat delivery. Everything
// here is a pure function of its inputs so the output is golden-testable.
package digest

import (
	"strconv"
	"strings"

	"creatorkit/internal/domain/entity"
)

// FormatAccountSummary renders one account's current stats. Values missing
// from the snapshot fall back to the account's cached counters, then to 0;
// rates with no snapshot at all render as N/A.
func FormatAccountSummary(account *entity.SocialAccount, snapshot *entity.AnalyticsSnapshot) string {
	followers := account.FollowersCount
	engagement := "N/A"
	avgLikes := "N/A"
	if snapshot != nil {
		followers = snapshot.FollowersCount
		engagement = formatRate(snapshot.EngagementRate)
		avgLikes = formatFloat(snapshot.AvgLikes)
	}

	lines := []string{
		"📊 Your analytics:",
		"",
		"👥 Followers: " + groupDigits(followers),
		"💬 Engagement rate: " + engagement,
		"❤️ Avg likes: " + avgLikes,
		"📱 Platform: " + titlePlatform(account.Platform),
	}
	if account.PlatformUsername != "" {
		lines = append(lines, "🔗 @"+account.PlatformUsername)
	}

	return strings.Join(lines, "\n")
}

// FormatDailyDigest renders the daily overview for one creator across all
// connected accounts.
func FormatDailyDigest(name string, accounts []*entity.SocialAccount) string {
	lines := []string{"🌅 Daily digest for " + name, ""}

	for _, account := range accounts {
		lines = append(lines, "📱 "+titlePlatform(account.Platform)+": "+groupDigits(account.FollowersCount)+" followers")
	}
	if len(accounts) == 0 {
		lines = append(lines, "No connected accounts yet.")
	}

	return strings.Join(lines, "\n")
}

func titlePlatform(platform entity.Platform) string {
	s := platform.String()
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatRate(value float64) string {
	return formatFloat(value) + "%"
}

// groupDigits renders an integer with thousands separators.
func groupDigits(value int) string {
	raw := strconv.Itoa(value)
	negative := strings.HasPrefix(raw, "-")
	if negative {
		raw = raw[1:]
	}

	var sb strings.Builder
	for i, digit := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}

	if negative {
		return "-" + sb.String()
	}

	return sb.String()
}
