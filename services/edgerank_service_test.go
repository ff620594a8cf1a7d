package services

import (
	"testing"
	"time"

	"campuslink_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rankNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestScoreAffinity(t *testing.T) {
	viewer := models.UserProfile{
		UserID:     "viewer",
		College:    "State University",
		Department: "Computer Science",
		Batch:      "2023",
		Location:   "North Campus",
	}

	tests := []struct {
		name      string
		candidate models.UserProfile
		mutual    int
		expected  float64
	}{
		{
			name:      "no shared attributes",
			candidate: models.UserProfile{UserID: "c1"},
			expected:  0,
		},
		{
			name:      "same college only",
			candidate: models.UserProfile{UserID: "c2", College: "State University"},
			expected:  30,
		},
		{
			name:      "college match is case-insensitive",
			candidate: models.UserProfile{UserID: "c3", College: "STATE UNIVERSITY"},
			expected:  30,
		},
		{
			name:      "college and batch",
			candidate: models.UserProfile{UserID: "c4", College: "State University", Batch: "2023"},
			expected:  55,
		},
		{
			name:      "mutual follows capped at 25",
			candidate: models.UserProfile{UserID: "c5"},
			mutual:    10,
			expected:  25,
		},
		{
			name: "everything shared with 5 mutuals caps at exactly 100",
			candidate: models.UserProfile{
				UserID:     "c6",
				College:    "state university",
				Department: "computer science",
				Batch:      "2023",
				Location:   "north campus",
			},
			mutual:   5,
			expected: 100, // 30+25+20+10+25
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreAffinity(viewer, tt.candidate, tt.mutual)
			assert.InDelta(t, tt.expected, score, 0.001)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		})
	}
}

func TestScoreAffinity_EmptyFieldsNeverMatch(t *testing.T) {
	// Two profiles with no college should not count as "same college"
	score := ScoreAffinity(models.UserProfile{UserID: "a"}, models.UserProfile{UserID: "b"}, 0)
	assert.Zero(t, score)
}

func TestScoreWeight(t *testing.T) {
	full := models.UserProfile{
		UserID:        "full",
		College:       "State University",
		Department:    "Computer Science",
		Batch:         "2023",
		Bio:           "hello",
		Location:      "North Campus",
		AvatarURL:     "avatars/full.jpg",
		IsVerified:    true,
		EmailVerified: true,
		PostCount:     6,
	}
	// 10+10+10+10+5+15+25+5+10+10 = 110, capped at 100
	assert.InDelta(t, 100.0, ScoreWeight(full), 0.001)

	empty := models.UserProfile{UserID: "empty"}
	assert.Zero(t, ScoreWeight(empty))

	partial := models.UserProfile{
		UserID:     "partial",
		College:    "State University",
		AvatarURL:  "avatars/p.jpg",
		IsVerified: true,
	}
	assert.InDelta(t, 50.0, ScoreWeight(partial), 0.001) // 10+15+25
}

func TestScoreDecay(t *testing.T) {
	online := models.UserProfile{
		UserID:       "online",
		IsOnline:     true,
		LastActiveAt: rankNow.Add(-90 * 24 * time.Hour).Format(time.RFC3339),
	}
	assert.Equal(t, 1.0, ScoreDecay(online, rankNow))

	justActive := models.UserProfile{
		UserID:       "fresh",
		LastActiveAt: rankNow.Format(time.RFC3339),
	}
	assert.InDelta(t, 1.0, ScoreDecay(justActive, rankNow), 0.001)

	weekOld := models.UserProfile{
		UserID:       "week",
		LastActiveAt: rankNow.Add(-7 * 24 * time.Hour).Format(time.RFC3339),
	}
	assert.InDelta(t, 0.588, ScoreDecay(weekOld, rankNow), 0.01)

	monthOld := models.UserProfile{
		UserID:       "month",
		LastActiveAt: rankNow.Add(-30 * 24 * time.Hour).Format(time.RFC3339),
	}
	assert.InDelta(t, 0.25, ScoreDecay(monthOld, rankNow), 0.01)
}

func TestScoreDecay_FallsBackToCreatedAt(t *testing.T) {
	neverActive := models.UserProfile{
		UserID:    "new",
		CreatedAt: rankNow.Add(-10 * 24 * time.Hour).Format(time.RFC3339),
	}
	assert.InDelta(t, 0.5, ScoreDecay(neverActive, rankNow), 0.001) // 1/(1+10*0.1)
}

func TestComputeCompatibility_Fixtures(t *testing.T) {
	// affinity 55 (college+batch), weight 80, decay 1.0 (online) -> 44.00
	viewer := models.UserProfile{
		UserID:  "viewer",
		College: "State University",
		Batch:   "2023",
	}
	candidate := models.UserProfile{
		UserID:     "candidate",
		College:    "State University",
		Department: "Computer Science",
		Batch:      "2023",
		Bio:        "hello",
		AvatarURL:  "avatars/c.jpg",
		IsVerified: true,
		IsOnline:   true,
	}

	score := ComputeCompatibility(viewer, candidate, 0, rankNow)
	assert.InDelta(t, 55.0, score.Affinity, 0.001)
	assert.InDelta(t, 80.0, score.Weight, 0.001)
	assert.InDelta(t, 1.0, score.Decay, 0.001)
	assert.InDelta(t, 44.0, score.Total, 0.001)
}

func TestComputeCompatibility_HandComputedPairs(t *testing.T) {
	online := func(p models.UserProfile) models.UserProfile {
		p.IsOnline = true
		return p
	}
	tenDaysIdle := rankNow.Add(-10 * 24 * time.Hour).Format(time.RFC3339)

	tests := []struct {
		name      string
		viewer    models.UserProfile
		candidate models.UserProfile
		mutual    int
		total     float64
	}{
		{
			name:   "perfect pair",
			viewer: models.UserProfile{UserID: "v", College: "SU", Department: "CS", Batch: "2023", Location: "North"},
			candidate: online(models.UserProfile{
				UserID: "c", College: "SU", Department: "CS", Batch: "2023", Location: "North",
				Bio: "x", AvatarURL: "a.jpg", IsVerified: true, EmailVerified: true, PostCount: 6,
			}),
			mutual: 5,
			total:  100.00, // 100*100*1/100
		},
		{
			name:      "zero affinity means zero total",
			viewer:    models.UserProfile{UserID: "v"},
			candidate: online(models.UserProfile{UserID: "c", College: "SU", IsVerified: true, PostCount: 6}),
			total:     0,
		},
		{
			name:   "halved by ten idle days",
			viewer: models.UserProfile{UserID: "v", College: "SU"},
			candidate: models.UserProfile{
				UserID: "c", College: "SU", AvatarURL: "a.jpg", IsVerified: true,
				LastActiveAt: tenDaysIdle,
			},
			total: 7.5, // 30 * 50 * 0.5 / 100
		},
		{
			name:      "mutual-follow-only affinity",
			viewer:    models.UserProfile{UserID: "v"},
			candidate: online(models.UserProfile{UserID: "c", College: "SU", Bio: "x"}),
			mutual:    10,
			total:     5.00, // 25 * 20 * 1 / 100
		},
		{
			name:   "rounding to two decimals",
			viewer: models.UserProfile{UserID: "v", College: "SU", Batch: "2023"},
			candidate: models.UserProfile{
				UserID: "c", College: "SU", Batch: "2023", Bio: "x",
				LastActiveAt: rankNow.Add(-7 * 24 * time.Hour).Format(time.RFC3339),
			},
			total: 9.74, // 55 * 30 * 0.59 / 100 = 9.735, rounded up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ComputeCompatibility(tt.viewer, tt.candidate, tt.mutual, rankNow)
			// The breakdown must reproduce the total exactly.
			assert.Equal(t, round2(score.Affinity*score.Weight*score.Decay/100), score.Total)
			assert.InDelta(t, tt.total, score.Total, 0.001)
			assert.GreaterOrEqual(t, score.Total, 0.0)
			assert.LessOrEqual(t, score.Total, 100.0)
		})
	}
}

func TestRankDiscovery(t *testing.T) {
	viewer := models.UserProfile{UserID: "viewer", College: "SU", Batch: "2023"}
	pool := []models.UserProfile{
		{UserID: "weak", IsOnline: true},
		{UserID: "strong", College: "SU", Batch: "2023", Bio: "x", AvatarURL: "a.jpg", IsVerified: true, IsOnline: true},
		{UserID: "middle", College: "SU", Bio: "x", IsOnline: true},
	}

	ranked := RankDiscovery(viewer, pool, map[string]int{"middle": 2}, rankNow, 10)

	require.Len(t, ranked, 3)
	assert.Equal(t, "strong", ranked[0].UserID)
	assert.Equal(t, "middle", ranked[1].UserID)
	assert.Equal(t, "weak", ranked[2].UserID)

	topTwo := RankDiscovery(viewer, pool, nil, rankNow, 2)
	assert.Len(t, topTwo, 2)
}

func TestRankDiscovery_TiesKeepInputOrder(t *testing.T) {
	viewer := models.UserProfile{UserID: "viewer", College: "SU"}
	pool := []models.UserProfile{
		{UserID: "first", College: "SU", Bio: "x", IsOnline: true},
		{UserID: "second", College: "SU", Bio: "x", IsOnline: true},
	}

	ranked := RankDiscovery(viewer, pool, nil, rankNow, 10)

	require.Len(t, ranked, 2)
	assert.Equal(t, "first", ranked[0].UserID)
	assert.Equal(t, "second", ranked[1].UserID)
}

func TestExplainCompatibility(t *testing.T) {
	viewer := models.UserProfile{UserID: "viewer", College: "SU", Department: "CS"}
	candidate := models.UserProfile{UserID: "candidate", College: "SU", Department: "CS", IsOnline: true}

	score := ComputeCompatibility(viewer, candidate, 3, rankNow)
	breakdown := ExplainCompatibility(viewer, candidate, 3, score)

	assert.Contains(t, breakdown.Affinity, "same college")
	assert.Contains(t, breakdown.Affinity, "same department")
	assert.Contains(t, breakdown.Affinity, "3 mutual connections")
	assert.Contains(t, breakdown.Decay, "online now")
	assert.Equal(t, score, breakdown.Score)
}
