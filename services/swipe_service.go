package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campuslink_server/models"

	"github.com/google/uuid"
)

// Swipe state-machine failures, mapped to HTTP statuses by controllers.
var (
	ErrSelfSwipe           = errors.New("cannot swipe on your own profile")
	ErrDuplicateSwipe      = errors.New("swipe already recorded for this pair")
	ErrMatchNotFound       = errors.New("match not found")
	ErrNotMatchParticipant = errors.New("requester is not part of this match")
)

// SwipeStore is the persistence contract for swipes and matches. The
// store must keep at most one swipe per ordered pair and at most one
// match per unordered pair, even under concurrent submission.
type SwipeStore interface {
	PersistSwipe(ctx context.Context, swipe models.Swipe) error
	FindSwipe(ctx context.Context, fromUserID, toUserID string) (*models.Swipe, error)
	CreateMatch(ctx context.Context, match models.Match) error
	GetMatch(ctx context.Context, matchID string) (*models.Match, error)
	DeleteMatch(ctx context.Context, pairKey string) error
}

// MatchNotifier fans a freshly created match out to both users.
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, match models.Match)
}

// SwipeResult is the outcome of one recorded swipe.
type SwipeResult struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"matchId,omitempty"`
}

// SwipeService records directional swipes and detects mutual right
// swipes. It holds no state of its own; all state lives in the store.
type SwipeService struct {
	Store    SwipeStore
	Notifier MatchNotifier
}

// RecordSwipe persists one swipe and, for a right swipe that completes
// a mutual pair, creates the match and notifies both users.
func (ss *SwipeService) RecordSwipe(ctx context.Context, fromUserID, toUserID, direction string) (*SwipeResult, error) {
	if fromUserID == toUserID {
		return nil, ErrSelfSwipe
	}
	if direction != models.SwipeLeft && direction != models.SwipeRight {
		return nil, fmt.Errorf("invalid swipe direction %q", direction)
	}

	swipe := models.Swipe{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Direction:  direction,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := ss.Store.PersistSwipe(ctx, swipe); err != nil {
		return nil, err
	}

	if direction != models.SwipeRight {
		return &SwipeResult{}, nil
	}

	reciprocal, err := ss.Store.FindSwipe(ctx, toUserID, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reciprocal swipe: %w", err)
	}
	if reciprocal == nil || reciprocal.Direction != models.SwipeRight {
		return &SwipeResult{}, nil
	}

	match := models.Match{
		PairKey:   models.PairKey(fromUserID, toUserID),
		MatchID:   uuid.NewString(),
		User1ID:   fromUserID,
		User2ID:   toUserID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := ss.Store.CreateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if ss.Notifier != nil {
		ss.Notifier.NotifyMatch(ctx, match)
	}

	return &SwipeResult{Matched: true, MatchID: match.MatchID}, nil
}

// Unmatch deletes the match after verifying the requester is one of the
// two parties. Swipe history is untouched, so the same pair can never
// re-trigger a mutual match afterwards: RecordSwipe keeps rejecting the
// pair as a duplicate.
func (ss *SwipeService) Unmatch(ctx context.Context, matchID, requesterID string) error {
	match, err := ss.Store.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasUser(requesterID) {
		return ErrNotMatchParticipant
	}
	return ss.Store.DeleteMatch(ctx, match.PairKey)
}
