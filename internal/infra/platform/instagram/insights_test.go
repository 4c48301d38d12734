package instagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveBundle_Metrics(t *testing.T) {
	// 300 likes and 50 comments over 10 posts at 1000 followers:
	// avgLikes 30.00, avgComments 5.00, engagementRate 3.50.
	posts := make([]igMedia, 10)
	for i := range posts {
		posts[i] = igMedia{ID: "post", LikeCount: 30, CommentsCount: 5}
	}

	bundle := deriveBundle(&igProfile{FollowersCount: 1000, FollowsCount: 150, MediaCount: 42}, posts)

	assert.Equal(t, 30.00, bundle.AvgLikes)
	assert.Equal(t, 5.00, bundle.AvgComments)
	assert.Equal(t, 3.50, bundle.EngagementRate)
	assert.Equal(t, 1000, bundle.FollowersCount)
	assert.Equal(t, 150, bundle.FollowingCount)
	assert.Equal(t, 42, bundle.PostsCount)
	assert.Equal(t, 0.0, bundle.AvgViews)
}

func TestDeriveBundle_ZeroPosts(t *testing.T) {
	bundle := deriveBundle(&igProfile{FollowersCount: 500}, nil)

	assert.Equal(t, 0.0, bundle.AvgLikes)
	assert.Equal(t, 0.0, bundle.AvgComments)
	assert.Equal(t, 0.0, bundle.EngagementRate)
	assert.Empty(t, bundle.TopPosts)
}

func TestDeriveBundle_ZeroFollowers(t *testing.T) {
	posts := []igMedia{{LikeCount: 10, CommentsCount: 2}}

	bundle := deriveBundle(&igProfile{FollowersCount: 0}, posts)

	assert.Equal(t, 0.0, bundle.EngagementRate)
	assert.Equal(t, 10.0, bundle.AvgLikes)
}

func TestDeriveBundle_Rounding(t *testing.T) {
	// 100/3 likes per post: 33.333... rounds to 33.33.
	// 5/3 comments per post: 1.666... rounds to 1.67 (half away from zero).
	posts := []igMedia{
		{LikeCount: 34, CommentsCount: 2},
		{LikeCount: 33, CommentsCount: 2},
		{LikeCount: 33, CommentsCount: 1},
	}

	bundle := deriveBundle(&igProfile{FollowersCount: 1000}, posts)

	assert.Equal(t, 33.33, bundle.AvgLikes)
	assert.Equal(t, 1.67, bundle.AvgComments)
	// (33.333... + 1.666...) / 1000 * 100 = 3.5
	assert.Equal(t, 3.5, bundle.EngagementRate)
}

func TestRound2_HalfAwayFromZero(t *testing.T) {
	// 0.125 is exactly representable, so the half rounds away from zero.
	assert.Equal(t, 0.13, round2(0.125))
	assert.Equal(t, -0.13, round2(-0.125))
	assert.Equal(t, 0.0, round2(0))
	assert.Equal(t, 1.23, round2(1.234))
}

func TestTopPosts_LimitAndCaptionTruncation(t *testing.T) {
	posts := make([]igMedia, 8)
	for i := range posts {
		posts[i] = igMedia{ID: "p", Caption: strings.Repeat("a", 150)}
	}

	top := topPosts(posts)

	assert.Len(t, top, 5)
	for _, post := range top {
		assert.Len(t, post.Caption, 100)
	}
}

func TestTopPosts_ShortCaptionUntouched(t *testing.T) {
	top := topPosts([]igMedia{{ID: "p", Caption: "hello ☺"}})

	assert.Equal(t, "hello ☺", top[0].Caption)
}
