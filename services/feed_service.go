package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"campuslink_server/models"

	"github.com/samber/lo"
)

// Feed scoring weights. Comments count more than likes, media presence
// is rewarded, engagement halves roughly every 12 hours, and posts from
// followed authors get a flat boost over the discovery stream.
const (
	likeWeight         = 2
	commentWeight      = 3
	mediaBonus         = 5
	followBoost        = 20
	decayHalfLifeHours = 12
	maxJitter          = 3
)

// DefaultFeedLimit is the page size used when the caller passes none.
const DefaultFeedLimit = 20

// candidateFetchLimit bounds the superset fetched per candidate stream.
const candidateFetchLimit = 100

// FeedOptions controls one ranking call. Jitter is injectable so tests
// can pin it to zero; a nil Jitter means no jitter.
type FeedOptions struct {
	Page   int
	Limit  int
	Now    time.Time
	Jitter func() float64
}

// ScorePost computes the blended relevance score for a single post:
// engagement decayed by age, plus the followed-author boost and jitter.
func ScorePost(post models.Post, fromFollowedAuthor bool, now time.Time, jitter float64) float64 {
	ageHours := now.Sub(post.CreatedTime()).Hours()
	if ageHours < 0 {
		ageHours = 0
	}

	raw := float64(post.LikeCount*likeWeight + post.CommentCount*commentWeight)
	if post.HasMedia() {
		raw += mediaBonus
	}

	score := raw / (1 + ageHours/decayHalfLifeHours)
	if fromFollowedAuthor {
		score += followBoost
	}
	return score + jitter
}

// RankFeed merges the followed and discovery candidate streams into one
// scored, deduplicated, paginated ordering. Followed-stream entries win
// on duplicate post ids since they are concatenated first.
func RankFeed(followed, discovery []models.Post, opts FeedOptions) []models.RankedPost {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = DefaultFeedLimit
	}
	jitter := opts.Jitter
	if jitter == nil {
		jitter = func() float64 { return 0 }
	}

	scored := make([]models.RankedPost, 0, len(followed)+len(discovery))
	for _, post := range followed {
		scored = append(scored, models.RankedPost{
			Post:                 post,
			Score:                ScorePost(post, true, opts.Now, jitter()),
			IsFromFollowedAuthor: true,
		})
	}
	for _, post := range discovery {
		scored = append(scored, models.RankedPost{
			Post:  post,
			Score: ScorePost(post, false, opts.Now, jitter()),
		})
	}

	scored = lo.UniqBy(scored, func(rp models.RankedPost) string { return rp.PostID })

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	start := (opts.Page - 1) * opts.Limit
	if start >= len(scored) {
		return []models.RankedPost{}
	}
	end := start + opts.Limit
	if end > len(scored) {
		end = len(scored)
	}
	return scored[start:end]
}

// FeedService assembles the two candidate streams and ranks them
type FeedService struct {
	Posts    *PostService
	Profiles *UserProfileService
}

// GetFeed returns one ranked feed page for viewerID. An empty viewerID
// means an anonymous caller: discovery-only, no follow boost.
func (fs *FeedService) GetFeed(ctx context.Context, viewerID string, page, limit int) ([]models.RankedPost, error) {
	opts := FeedOptions{
		Page:   page,
		Limit:  limit,
		Now:    time.Now().UTC(),
		Jitter: func() float64 { return rand.Float64() * maxJitter },
	}

	if viewerID == "" {
		discovery, err := fs.Posts.GetRecentPosts(ctx, candidateFetchLimit, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch discovery posts: %w", err)
		}
		return RankFeed(nil, discovery, opts), nil
	}

	following, err := fs.Profiles.GetFollowing(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch following list: %w", err)
	}

	followed, err := fs.Posts.GetPostsByAuthors(ctx, following, candidateFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch followed posts: %w", err)
	}

	// Discovery excludes followed authors and the viewer's own posts
	excludedAuthors := map[string]struct{}{viewerID: {}}
	for _, authorID := range following {
		excludedAuthors[authorID] = struct{}{}
	}

	discovery, err := fs.Posts.GetRecentPosts(ctx, candidateFetchLimit, excludedAuthors)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discovery posts: %w", err)
	}

	log.Printf("Ranking feed for %s: %d followed, %d discovery candidates", viewerID, len(followed), len(discovery))
	return RankFeed(followed, discovery, opts), nil
}
