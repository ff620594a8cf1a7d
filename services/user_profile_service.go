package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campuslink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/samber/lo"
)

// ErrProfileNotFound is returned when no profile exists for a user id.
var ErrProfileNotFound = errors.New("profile not found")

// ErrAlreadyFollowing is returned on a duplicate follow edge.
var ErrAlreadyFollowing = errors.New("already following this user")

type UserProfileService struct {
	Dynamo *DynamoService
}

// AddUserProfile adds a new user profile to DynamoDB
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	profile.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	profile.PostCount = 0

	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if errors.Is(err, ErrItemNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateUserProfile updates an existing user profile
func (ups *UserProfileService) UpdateUserProfile(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for k, v := range updates {
		placeholder := ":" + k
		attributeName := "#" + k
		updateExpression += " " + attributeName + " = " + placeholder + ","

		attrValue, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update for %s: %w", k, err)
		}
		expressionAttributeValues[placeholder] = attrValue
		expressionAttributeNames[attributeName] = k
	}

	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, err
	}

	return &updatedProfile, nil
}

// DeleteUserProfile removes a user profile from DynamoDB
func (ups *UserProfileService) DeleteUserProfile(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	return ups.Dynamo.DeleteItem(ctx, models.UserProfilesTable, key)
}

// TouchLastActive stamps the user's last-activity time, feeding the
// match decay factor for offline users.
func (ups *UserProfileService) TouchLastActive(ctx context.Context, userID string) error {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	updateExpression := "SET lastActiveAt = :now"
	expressionValues := map[string]types.AttributeValue{
		":now": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
	}

	_, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionValues, nil)
	return err
}

// Follow creates a follow edge from followerID to followeeID.
func (ups *UserProfileService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return errors.New("cannot follow yourself")
	}

	follow := models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	err := ups.Dynamo.PutItemIfNotExists(ctx, models.FollowsTable, follow, "followerId")
	if errors.Is(err, ErrConditionFailed) {
		return ErrAlreadyFollowing
	}
	return err
}

// Unfollow removes a follow edge.
func (ups *UserProfileService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	key := map[string]types.AttributeValue{
		"followerId": &types.AttributeValueMemberS{Value: followerID},
		"followeeId": &types.AttributeValueMemberS{Value: followeeID},
	}
	return ups.Dynamo.DeleteItem(ctx, models.FollowsTable, key)
}

// GetFollowing returns the ids of everyone userID follows.
func (ups *UserProfileService) GetFollowing(ctx context.Context, userID string) ([]string, error) {
	keyCondition := "followerId = :follower"
	expressionValues := map[string]types.AttributeValue{
		":follower": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := ups.Dynamo.QueryItems(ctx, models.FollowsTable, keyCondition, expressionValues, nil, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch following list: %w", err)
	}

	following := make([]string, 0, len(items))
	for _, item := range items {
		if followeeID, ok := item["followeeId"].(*types.AttributeValueMemberS); ok {
			following = append(following, followeeID.Value)
		}
	}
	return following, nil
}

// GetFollowers returns the ids of everyone following userID.
func (ups *UserProfileService) GetFollowers(ctx context.Context, userID string) ([]string, error) {
	keyCondition := "followeeId = :followee"
	expressionValues := map[string]types.AttributeValue{
		":followee": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := ups.Dynamo.QueryItemsWithIndex(ctx, models.FollowsTable, models.FolloweeIndex, keyCondition, expressionValues, nil, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch followers list: %w", err)
	}

	followers := make([]string, 0, len(items))
	for _, item := range items {
		if followerID, ok := item["followerId"].(*types.AttributeValueMemberS); ok {
			followers = append(followers, followerID.Value)
		}
	}
	return followers, nil
}

// CountMutualFollows counts the accounts the viewer follows that follow
// the candidate back — the social-graph input to the affinity score.
func (ups *UserProfileService) CountMutualFollows(ctx context.Context, viewerID, candidateID string) (int, error) {
	following, err := ups.GetFollowing(ctx, viewerID)
	if err != nil {
		return 0, err
	}
	candidateFollowers, err := ups.GetFollowers(ctx, candidateID)
	if err != nil {
		return 0, err
	}

	return len(lo.Intersect(following, candidateFollowers)), nil
}
