package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"campuslink_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Affinity contributions for shared profile attributes.
const (
	affinityCollege      = 30
	affinityBatch        = 25
	affinityDepartment   = 20
	affinityLocation     = 10
	affinityPerMutual    = 5
	affinityMutualCap    = 25
	maxCompatibilityPart = 100
)

// Decay slope: one tenth of freshness lost per day offline.
const decayPerDay = 0.1

// PresenceChecker reports whether a user currently holds a live
// connection. The socket registry implements it; the scoring functions
// only ever see the materialized IsOnline flag.
type PresenceChecker interface {
	IsOnline(userID string) bool
}

// ScoreAffinity measures how connected two profiles are: shared campus
// attributes plus the mutual-follow overlap, additive and capped at 100.
// Missing fields simply contribute nothing.
func ScoreAffinity(viewer, candidate models.UserProfile, mutualFollows int) float64 {
	score := 0.0
	if sharedAttribute(viewer.College, candidate.College) {
		score += affinityCollege
	}
	if viewer.Batch != "" && viewer.Batch == candidate.Batch {
		score += affinityBatch
	}
	if sharedAttribute(viewer.Department, candidate.Department) {
		score += affinityDepartment
	}
	if sharedAttribute(viewer.Location, candidate.Location) {
		score += affinityLocation
	}

	mutual := float64(mutualFollows) * affinityPerMutual
	if mutual > affinityMutualCap {
		mutual = affinityMutualCap
	}
	score += mutual

	if score > maxCompatibilityPart {
		score = maxCompatibilityPart
	}
	return score
}

// ScoreWeight measures profile quality and activity, independent of the
// viewer: completeness, verification and posting history, capped at 100.
func ScoreWeight(candidate models.UserProfile) float64 {
	score := 0.0
	if candidate.College != "" {
		score += 10
	}
	if candidate.Department != "" {
		score += 10
	}
	if candidate.Batch != "" {
		score += 10
	}
	if candidate.Bio != "" {
		score += 10
	}
	if candidate.Location != "" {
		score += 5
	}
	if candidate.AvatarURL != "" {
		score += 15
	}
	if candidate.IsVerified {
		score += 25
	}
	if candidate.EmailVerified {
		score += 5
	}
	if candidate.PostCount > 0 {
		score += 10
	}
	if candidate.PostCount > 5 {
		score += 10
	}

	if score > maxCompatibilityPart {
		score = maxCompatibilityPart
	}
	return score
}

// ScoreDecay is the freshness factor in (0,1]: 1 for a candidate who is
// online right now, otherwise shrinking with the days since last
// activity (day 7 ~ 0.59, day 30 ~ 0.25).
func ScoreDecay(candidate models.UserProfile, now time.Time) float64 {
	if candidate.IsOnline {
		return 1
	}

	days := now.Sub(candidate.LastActive()).Hours() / 24
	if days < 0 {
		days = 0
	}
	return 1 / (1 + days*decayPerDay)
}

// ComputeCompatibility combines the three sub-scores into the 0-100
// EdgeRank total. Decay is rounded to 2 decimals before composing so
// the reported breakdown always reproduces the reported total.
func ComputeCompatibility(viewer, candidate models.UserProfile, mutualFollows int, now time.Time) models.CompatibilityScore {
	affinity := ScoreAffinity(viewer, candidate, mutualFollows)
	weight := ScoreWeight(candidate)
	decay := round2(ScoreDecay(candidate, now))

	return models.CompatibilityScore{
		Total:    round2(affinity * weight * decay / 100),
		Affinity: affinity,
		Weight:   weight,
		Decay:    decay,
	}
}

// DiscoveryCandidate is a profile with its computed match score,
// produced per discovery call and discarded after serialization.
type DiscoveryCandidate struct {
	models.UserProfile
	MatchScore models.CompatibilityScore `json:"matchScore"`
}

// RankDiscovery scores every candidate in the pool against the viewer
// and returns the top limit, sorted by descending total. Ties keep the
// pool's input order.
func RankDiscovery(viewer models.UserProfile, pool []models.UserProfile, mutualFollows map[string]int, now time.Time, limit int) []DiscoveryCandidate {
	ranked := make([]DiscoveryCandidate, 0, len(pool))
	for _, candidate := range pool {
		ranked = append(ranked, DiscoveryCandidate{
			UserProfile: candidate,
			MatchScore:  ComputeCompatibility(viewer, candidate, mutualFollows[candidate.UserID], now),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore.Total > ranked[j].MatchScore.Total
	})

	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}

// CompatibilityBreakdown is the "why we matched" surface: the score plus
// one human-readable line per component.
type CompatibilityBreakdown struct {
	Score    models.CompatibilityScore `json:"score"`
	Affinity string                    `json:"affinity"`
	Weight   string                    `json:"weight"`
	Decay    string                    `json:"decay"`
}

// ExplainCompatibility renders the per-component breakdown for one
// already-computed score.
func ExplainCompatibility(viewer, candidate models.UserProfile, mutualFollows int, score models.CompatibilityScore) CompatibilityBreakdown {
	var affinityReasons []string
	if sharedAttribute(viewer.College, candidate.College) {
		affinityReasons = append(affinityReasons, "same college")
	}
	if viewer.Batch != "" && viewer.Batch == candidate.Batch {
		affinityReasons = append(affinityReasons, "same batch")
	}
	if sharedAttribute(viewer.Department, candidate.Department) {
		affinityReasons = append(affinityReasons, "same department")
	}
	if sharedAttribute(viewer.Location, candidate.Location) {
		affinityReasons = append(affinityReasons, "same location")
	}
	if mutualFollows > 0 {
		affinityReasons = append(affinityReasons, fmt.Sprintf("%d mutual connections", mutualFollows))
	}
	if len(affinityReasons) == 0 {
		affinityReasons = append(affinityReasons, "no shared attributes yet")
	}

	freshness := "active recently"
	if candidate.IsOnline {
		freshness = "online now"
	} else if score.Decay < 0.5 {
		freshness = "inactive for a while"
	}

	return CompatibilityBreakdown{
		Score:    score,
		Affinity: fmt.Sprintf("Affinity %.0f/100: %s", score.Affinity, strings.Join(affinityReasons, ", ")),
		Weight:   fmt.Sprintf("Profile quality %.0f/100", score.Weight),
		Decay:    fmt.Sprintf("Freshness %.2f: %s", score.Decay, freshness),
	}
}

func sharedAttribute(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MatchRankService runs discovery queries and on-demand compatibility
// lookups over the profile store.
type MatchRankService struct {
	Dynamo   *DynamoService
	Profiles *UserProfileService
	Presence PresenceChecker
}

// Discover builds the candidate pool for viewerID (excluding self,
// already-swiped and banned accounts), scores it and returns the top
// limit candidates.
func (ms *MatchRankService) Discover(ctx context.Context, viewerID string, limit int) ([]DiscoveryCandidate, error) {
	viewer, err := ms.Profiles.GetUserProfile(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch viewer profile: %w", err)
	}

	swiped, err := ms.swipedUserIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swipe history: %w", err)
	}

	var pool []models.UserProfile
	err = ms.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		userID, ok := item["userId"].(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		if userID.Value == viewerID {
			return false
		}
		if _, alreadySwiped := swiped[userID.Value]; alreadySwiped {
			return false
		}
		if banned, ok := item["isBanned"].(*types.AttributeValueMemberBOOL); ok && banned.Value {
			return false
		}
		return true
	}, nil, &pool)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate profiles: %w", err)
	}

	now := time.Now().UTC()
	mutualCounts := make(map[string]int, len(pool))
	for i := range pool {
		pool[i].IsOnline = ms.Presence.IsOnline(pool[i].UserID)
		count, err := ms.Profiles.CountMutualFollows(ctx, viewerID, pool[i].UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to count mutual follows: %w", err)
		}
		mutualCounts[pool[i].UserID] = count
	}

	return RankDiscovery(*viewer, pool, mutualCounts, now, limit), nil
}

// Compatibility returns the score and breakdown for one specific pair.
func (ms *MatchRankService) Compatibility(ctx context.Context, viewerID, candidateID string) (*CompatibilityBreakdown, error) {
	viewer, err := ms.Profiles.GetUserProfile(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch viewer profile: %w", err)
	}
	candidate, err := ms.Profiles.GetUserProfile(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidate profile: %w", err)
	}
	candidate.IsOnline = ms.Presence.IsOnline(candidate.UserID)

	mutual, err := ms.Profiles.CountMutualFollows(ctx, viewerID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to count mutual follows: %w", err)
	}

	score := ComputeCompatibility(*viewer, *candidate, mutual, time.Now().UTC())
	breakdown := ExplainCompatibility(*viewer, *candidate, mutual, score)
	return &breakdown, nil
}

// swipedUserIDs returns the set of users viewerID already swiped on.
func (ms *MatchRankService) swipedUserIDs(ctx context.Context, viewerID string) (map[string]struct{}, error) {
	keyCondition := "fromUserId = :from"
	expressionValues := map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: viewerID},
	}

	items, err := ms.Dynamo.QueryItems(ctx, models.SwipesTable, keyCondition, expressionValues, nil, 1000)
	if err != nil {
		return nil, err
	}

	swiped := make(map[string]struct{}, len(items))
	for _, item := range items {
		if toUserID, ok := item["toUserId"].(*types.AttributeValueMemberS); ok {
			swiped[toUserID.Value] = struct{}{}
		}
	}
	return swiped, nil
}
