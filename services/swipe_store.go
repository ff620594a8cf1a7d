package services

import (
	"context"
	"errors"
	"fmt"

	"campuslink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoSwipeStore backs the swipe state machine with DynamoDB. The
// uniqueness guarantees come from conditional puts: attribute_not_exists
// on the swipe's ordered-pair key and on the match's canonical pair key.
type DynamoSwipeStore struct {
	Dynamo *DynamoService
}

// PersistSwipe stores one swipe, rejecting an already-swiped ordered pair.
func (st *DynamoSwipeStore) PersistSwipe(ctx context.Context, swipe models.Swipe) error {
	err := st.Dynamo.PutItemIfNotExists(ctx, models.SwipesTable, swipe, "fromUserId")
	if errors.Is(err, ErrConditionFailed) {
		return ErrDuplicateSwipe
	}
	return err
}

// FindSwipe looks up the swipe for one ordered pair; nil when absent.
func (st *DynamoSwipeStore) FindSwipe(ctx context.Context, fromUserID, toUserID string) (*models.Swipe, error) {
	key := map[string]types.AttributeValue{
		"fromUserId": &types.AttributeValueMemberS{Value: fromUserID},
		"toUserId":   &types.AttributeValueMemberS{Value: toUserID},
	}

	item, err := st.Dynamo.GetItem(ctx, models.SwipesTable, key)
	if errors.Is(err, ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var swipe models.Swipe
	if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swipe: %w", err)
	}
	return &swipe, nil
}

// CreateMatch stores the match record. A concurrent mutual swipe that
// already created the pair's match surfaces as ErrConditionFailed.
func (st *DynamoSwipeStore) CreateMatch(ctx context.Context, match models.Match) error {
	return st.Dynamo.PutItemIfNotExists(ctx, models.MatchesTable, match, "pairKey")
}

// GetMatch resolves a match by its matchId through the GSI.
func (st *DynamoSwipeStore) GetMatch(ctx context.Context, matchID string) (*models.Match, error) {
	keyCondition := "matchId = :matchId"
	expressionValues := map[string]types.AttributeValue{
		":matchId": &types.AttributeValueMemberS{Value: matchID},
	}

	items, err := st.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.MatchIDIndex, keyCondition, expressionValues, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to query match: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrMatchNotFound
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(items[0], &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

// DeleteMatch removes the match record entirely (hard delete).
func (st *DynamoSwipeStore) DeleteMatch(ctx context.Context, pairKey string) error {
	key := map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	}
	return st.Dynamo.DeleteItem(ctx, models.MatchesTable, key)
}
