package services

import (
	"context"
	"testing"

	"campuslink_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSwipeStore mirrors the DynamoDB conditional-put semantics in
// memory: one swipe per ordered pair, one match per pair key.
type fakeSwipeStore struct {
	swipes  map[string]models.Swipe
	matches map[string]models.Match
}

func newFakeSwipeStore() *fakeSwipeStore {
	return &fakeSwipeStore{
		swipes:  make(map[string]models.Swipe),
		matches: make(map[string]models.Match),
	}
}

func swipeKey(fromUserID, toUserID string) string {
	return fromUserID + "#" + toUserID
}

func (fs *fakeSwipeStore) PersistSwipe(ctx context.Context, swipe models.Swipe) error {
	key := swipeKey(swipe.FromUserID, swipe.ToUserID)
	if _, exists := fs.swipes[key]; exists {
		return ErrDuplicateSwipe
	}
	fs.swipes[key] = swipe
	return nil
}

func (fs *fakeSwipeStore) FindSwipe(ctx context.Context, fromUserID, toUserID string) (*models.Swipe, error) {
	swipe, exists := fs.swipes[swipeKey(fromUserID, toUserID)]
	if !exists {
		return nil, nil
	}
	return &swipe, nil
}

func (fs *fakeSwipeStore) CreateMatch(ctx context.Context, match models.Match) error {
	if _, exists := fs.matches[match.PairKey]; exists {
		return ErrConditionFailed
	}
	fs.matches[match.PairKey] = match
	return nil
}

func (fs *fakeSwipeStore) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	for _, match := range fs.matches {
		if match.MatchID == matchID {
			return &match, nil
		}
	}
	return nil, ErrMatchNotFound
}

func (fs *fakeSwipeStore) DeleteMatch(ctx context.Context, pairKey string) error {
	delete(fs.matches, pairKey)
	return nil
}

type recordingNotifier struct {
	matches []models.Match
}

func (rn *recordingNotifier) NotifyMatch(ctx context.Context, match models.Match) {
	rn.matches = append(rn.matches, match)
}

func newSwipeService() (*SwipeService, *fakeSwipeStore, *recordingNotifier) {
	store := newFakeSwipeStore()
	notifier := &recordingNotifier{}
	return &SwipeService{Store: store, Notifier: notifier}, store, notifier
}

func TestRecordSwipe_RejectsSelfSwipe(t *testing.T) {
	ss, store, _ := newSwipeService()

	result, err := ss.RecordSwipe(context.Background(), "alice", "alice", models.SwipeRight)

	assert.ErrorIs(t, err, ErrSelfSwipe)
	assert.Nil(t, result)
	assert.Empty(t, store.swipes)
}

func TestRecordSwipe_RejectsInvalidDirection(t *testing.T) {
	ss, store, _ := newSwipeService()

	result, err := ss.RecordSwipe(context.Background(), "alice", "bob", "up")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, store.swipes)
}

func TestRecordSwipe_RejectsDuplicate(t *testing.T) {
	ss, _, _ := newSwipeService()

	_, err := ss.RecordSwipe(context.Background(), "alice", "bob", models.SwipeLeft)
	require.NoError(t, err)

	// A second swipe on the same pair is final, even in a new direction.
	result, err := ss.RecordSwipe(context.Background(), "alice", "bob", models.SwipeRight)
	assert.ErrorIs(t, err, ErrDuplicateSwipe)
	assert.Nil(t, result)
}

func TestRecordSwipe_SingleRightDoesNotMatch(t *testing.T) {
	ss, store, notifier := newSwipeService()

	result, err := ss.RecordSwipe(context.Background(), "alice", "bob", models.SwipeRight)

	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, result.MatchID)
	assert.Empty(t, store.matches)
	assert.Empty(t, notifier.matches)
}

func TestRecordSwipe_MutualRightCreatesMatch(t *testing.T) {
	ss, store, notifier := newSwipeService()

	_, err := ss.RecordSwipe(context.Background(), "bob", "alice", models.SwipeRight)
	require.NoError(t, err)

	result, err := ss.RecordSwipe(context.Background(), "alice", "bob", models.SwipeRight)

	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.NotEmpty(t, result.MatchID)

	require.Len(t, store.matches, 1)
	match := store.matches[models.PairKey("alice", "bob")]
	assert.Equal(t, result.MatchID, match.MatchID)
	assert.True(t, match.HasUser("alice"))
	assert.True(t, match.HasUser("bob"))

	require.Len(t, notifier.matches, 1)
	assert.Equal(t, result.MatchID, notifier.matches[0].MatchID)
}

func TestRecordSwipe_RightAgainstLeftDoesNotMatch(t *testing.T) {
	ss, store, _ := newSwipeService()

	_, err := ss.RecordSwipe(context.Background(), "bob", "alice", models.SwipeLeft)
	require.NoError(t, err)

	result, err := ss.RecordSwipe(context.Background(), "alice", "bob", models.SwipeRight)

	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, store.matches)
}

func TestRecordSwipe_LeftNeverChecksReciprocal(t *testing.T) {
	ss, store, _ := newSwipeService()

	_, err := ss.RecordSwipe(context.Background(), "bob", "alice", models.SwipeRight)
	require.NoError(t, err)

	result, err := ss.RecordSwipe(context.Background(), "alice", "bob", models.SwipeLeft)

	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, store.matches)
}

func TestUnmatch(t *testing.T) {
	ss, store, _ := newSwipeService()

	_, err := ss.RecordSwipe(context.Background(), "bob", "alice", models.SwipeRight)
	require.NoError(t, err)
	result, err := ss.RecordSwipe(context.Background(), "alice", "bob", models.SwipeRight)
	require.NoError(t, err)

	t.Run("unknown match id", func(t *testing.T) {
		err := ss.Unmatch(context.Background(), "no-such-match", "alice")
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("outsider cannot unmatch", func(t *testing.T) {
		err := ss.Unmatch(context.Background(), result.MatchID, "mallory")
		assert.ErrorIs(t, err, ErrNotMatchParticipant)
		assert.Len(t, store.matches, 1)
	})

	t.Run("participant deletes the match", func(t *testing.T) {
		err := ss.Unmatch(context.Background(), result.MatchID, "bob")
		require.NoError(t, err)
		assert.Empty(t, store.matches)
	})

	t.Run("swipe history survives and blocks a re-match", func(t *testing.T) {
		_, err := ss.RecordSwipe(context.Background(), "alice", "bob", models.SwipeRight)
		assert.ErrorIs(t, err, ErrDuplicateSwipe)
	})
}
