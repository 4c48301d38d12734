package instagram

import (
	"math"

	"creatorkit/internal/domain/entity"
)

// deriveBundle computes the snapshot metrics from raw profile counters and
// the recent media page. Averages are over the fetched page, not lifetime.
func deriveBundle(profile *igProfile, posts []igMedia) *entity.InsightBundle {
	var totalLikes, totalComments int
	for _, post := range posts {
		totalLikes += post.LikeCount
		totalComments += post.CommentsCount
	}

	// Treat an empty page as one post so the averages stay defined as 0.
	postCount := len(posts)
	if postCount == 0 {
		postCount = 1
	}

	avgLikes := float64(totalLikes) / float64(postCount)
	avgComments := float64(totalComments) / float64(postCount)

	var engagementRate float64
	if profile.FollowersCount > 0 {
		engagementRate = (avgLikes + avgComments) / float64(profile.FollowersCount) * 100
	}

	return &entity.InsightBundle{
		FollowersCount: profile.FollowersCount,
		FollowingCount: profile.FollowsCount,
		PostsCount:     profile.MediaCount,
		AvgLikes:       round2(avgLikes),
		AvgComments:    round2(avgComments),
		AvgViews:       0, // The Graph API exposes no per-account view counter.
		EngagementRate: round2(engagementRate),
		TopPosts:       topPosts(posts),
	}
}

// topPosts keeps the five most recent posts; the media endpoint already
// returns reverse-chronological order.
func topPosts(posts []igMedia) []entity.TopPost {
	limit := min(len(posts), topPostsLimit)

	result := make([]entity.TopPost, 0, limit)
	for _, post := range posts[:limit] {
		result = append(result, entity.TopPost{
			ID:        post.ID,
			Caption:   truncateRunes(post.Caption, captionMaxRunes),
			Likes:     post.LikeCount,
			Comments:  post.CommentsCount,
			MediaType: post.MediaType,
			Permalink: post.Permalink,
			Timestamp: post.Timestamp,
		})
	}

	return result
}

// demographicsFrom maps the follower_demographics breakdown onto the
// snapshot's demographics shape. A nil or empty answer yields nil.
func demographicsFrom(insights *igInsights) *entity.AudienceDemographics {
	if insights == nil {
		return nil
	}

	demographics := &entity.AudienceDemographics{
		AgeRanges:   map[string]float64{},
		GenderSplit: map[string]float64{},
	}
	var populated bool

	for _, metric := range insights.Data {
		if metric.Name != "follower_demographics" || metric.TotalValue == nil {
			continue
		}
		for _, breakdown := range metric.TotalValue.Breakdowns {
			for _, result := range breakdown.Results {
				// dimension_values pairs up with the requested
				// breakdown order: [age, gender].
				if len(result.DimensionValues) >= 1 {
					demographics.AgeRanges[result.DimensionValues[0]] += result.Value
					populated = true
				}
				if len(result.DimensionValues) >= 2 {
					demographics.GenderSplit[result.DimensionValues[1]] += result.Value
				}
			}
		}
	}

	if !populated {
		return nil
	}

	return demographics
}

// round2 rounds to two decimal places, half away from zero.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
