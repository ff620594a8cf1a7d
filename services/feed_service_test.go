package services

import (
	"testing"
	"time"

	"campuslink_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var feedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func feedPost(id, author string, ageHours float64, likes, comments int, media bool) models.Post {
	post := models.Post{
		PostID:       id,
		AuthorID:     author,
		LikeCount:    likes,
		CommentCount: comments,
		CreatedAt:    feedNow.Add(-time.Duration(ageHours * float64(time.Hour))).Format(time.RFC3339),
	}
	if media {
		post.MediaKeys = []string{"post-media/" + id + ".jpg"}
	}
	return post
}

func TestScorePost_EngagementWeights(t *testing.T) {
	// 3 likes * 2 + 2 comments * 3 + media 5 = 17, no age decay at 0h
	post := feedPost("p1", "a1", 0, 3, 2, true)
	assert.InDelta(t, 17.0, ScorePost(post, false, feedNow, 0), 0.001)

	// Without media the bonus disappears
	noMedia := feedPost("p2", "a1", 0, 3, 2, false)
	assert.InDelta(t, 12.0, ScorePost(noMedia, false, feedNow, 0), 0.001)
}

func TestScorePost_RecencyDecay(t *testing.T) {
	// Engagement halves roughly every 12 hours: 17/(1+12/12) = 8.5
	aged := feedPost("p1", "a1", 12, 3, 2, true)
	assert.InDelta(t, 8.5, ScorePost(aged, false, feedNow, 0), 0.001)

	// Zero-engagement fresh post still beats the same post a day older
	fresh := feedPost("p2", "a1", 0, 0, 0, false)
	old := feedPost("p3", "a1", 24, 0, 0, false)
	assert.GreaterOrEqual(t, ScorePost(fresh, false, feedNow, 0), ScorePost(old, false, feedNow, 0))

	freshLiked := feedPost("p4", "a1", 0, 5, 0, false)
	oldLiked := feedPost("p5", "a1", 24, 5, 0, false)
	assert.Greater(t, ScorePost(freshLiked, false, feedNow, 0), ScorePost(oldLiked, false, feedNow, 0))
}

func TestScorePost_FollowBoost(t *testing.T) {
	post := feedPost("p1", "a1", 6, 4, 1, false)

	followed := ScorePost(post, true, feedNow, 0)
	discovery := ScorePost(post, false, feedNow, 0)
	assert.InDelta(t, 20.0, followed-discovery, 0.001)
}

func TestRankFeed_DeterministicWithoutJitter(t *testing.T) {
	followed := []models.Post{
		feedPost("p1", "a1", 1, 10, 2, false),
		feedPost("p2", "a2", 5, 0, 0, true),
	}
	discovery := []models.Post{
		feedPost("p3", "a3", 2, 50, 10, true),
	}
	opts := FeedOptions{Page: 1, Limit: 10, Now: feedNow}

	first := RankFeed(followed, discovery, opts)
	second := RankFeed(followed, discovery, opts)
	assert.Equal(t, first, second)
}

func TestRankFeed_NoDuplicatePostIDs(t *testing.T) {
	shared := feedPost("p1", "a1", 1, 5, 0, false)
	followed := []models.Post{shared, feedPost("p2", "a1", 2, 1, 0, false)}
	discovery := []models.Post{shared, feedPost("p3", "a3", 3, 2, 0, false)}

	ranked := RankFeed(followed, discovery, FeedOptions{Page: 1, Limit: 10, Now: feedNow})

	seen := map[string]bool{}
	for _, post := range ranked {
		assert.False(t, seen[post.PostID], "post %s appears twice", post.PostID)
		seen[post.PostID] = true
	}
	require.True(t, seen["p1"])

	// The followed-stream copy wins on a duplicate id
	for _, post := range ranked {
		if post.PostID == "p1" {
			assert.True(t, post.IsFromFollowedAuthor)
		}
	}
}

func TestRankFeed_OrdersByScoreDescending(t *testing.T) {
	discovery := []models.Post{
		feedPost("low", "a1", 10, 0, 0, false),
		feedPost("high", "a2", 0, 100, 20, true),
		feedPost("mid", "a3", 2, 5, 1, false),
	}

	ranked := RankFeed(nil, discovery, FeedOptions{Page: 1, Limit: 10, Now: feedNow})

	require.Len(t, ranked, 3)
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
	assert.Equal(t, "high", ranked[0].PostID)
}

func TestRankFeed_FollowedOutranksIdenticalDiscovery(t *testing.T) {
	followed := []models.Post{feedPost("f1", "a1", 3, 2, 1, false)}
	discovery := []models.Post{feedPost("d1", "a2", 3, 2, 1, false)}

	ranked := RankFeed(followed, discovery, FeedOptions{Page: 1, Limit: 10, Now: feedNow})

	require.Len(t, ranked, 2)
	assert.Equal(t, "f1", ranked[0].PostID)
	assert.InDelta(t, 20.0, ranked[0].Score-ranked[1].Score, 0.001)
}

func TestRankFeed_Pagination(t *testing.T) {
	var discovery []models.Post
	for _, id := range []string{"p1", "p2", "p3", "p4", "p5"} {
		discovery = append(discovery, feedPost(id, "a1", 1, 1, 0, false))
	}

	page1 := RankFeed(nil, discovery, FeedOptions{Page: 1, Limit: 2, Now: feedNow})
	page2 := RankFeed(nil, discovery, FeedOptions{Page: 2, Limit: 2, Now: feedNow})
	page3 := RankFeed(nil, discovery, FeedOptions{Page: 3, Limit: 2, Now: feedNow})
	page4 := RankFeed(nil, discovery, FeedOptions{Page: 4, Limit: 2, Now: feedNow})

	assert.Len(t, page1, 2)
	assert.Len(t, page2, 2)
	assert.Len(t, page3, 1)
	assert.Empty(t, page4)
}

func TestRankFeed_JitterStaysBounded(t *testing.T) {
	post := feedPost("p1", "a1", 0, 0, 0, false)
	jittered := RankFeed(nil, []models.Post{post}, FeedOptions{
		Page:   1,
		Limit:  10,
		Now:    feedNow,
		Jitter: func() float64 { return 2.9 },
	})

	require.Len(t, jittered, 1)
	assert.InDelta(t, 2.9, jittered[0].Score, 0.001)
}
