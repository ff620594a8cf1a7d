package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"campuslink_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// perAuthorFetchLimit bounds the recent posts pulled per followed author.
const perAuthorFetchLimit = 20

// PostService struct
type PostService struct {
	Dynamo *DynamoService
}

// CreatePost stores a new post and bumps the author's post count.
func (ps *PostService) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	post.PostID = uuid.NewString()
	post.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	post.LikeCount = 0
	post.CommentCount = 0

	if err := ps.Dynamo.PutItem(ctx, models.PostsTable, post); err != nil {
		return nil, fmt.Errorf("failed to store post: %w", err)
	}

	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: post.AuthorID},
	}
	updateExpression := "ADD postCount :one"
	expressionValues := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
	}
	if _, err := ps.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, expressionValues, nil); err != nil {
		log.Printf("Failed to bump postCount for %s: %v", post.AuthorID, err)
	}

	return &post, nil
}

// IncrementLikeCount atomically bumps a post's like counter.
func (ps *PostService) IncrementLikeCount(ctx context.Context, postID string) error {
	return ps.incrementCounter(ctx, postID, "likeCount")
}

// IncrementCommentCount atomically bumps a post's comment counter.
func (ps *PostService) IncrementCommentCount(ctx context.Context, postID string) error {
	return ps.incrementCounter(ctx, postID, "commentCount")
}

func (ps *PostService) incrementCounter(ctx context.Context, postID, attribute string) error {
	key := map[string]types.AttributeValue{
		"postId": &types.AttributeValueMemberS{Value: postID},
	}
	updateExpression := fmt.Sprintf("ADD %s :one", attribute)
	expressionValues := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
	}

	if _, err := ps.Dynamo.UpdateItem(ctx, models.PostsTable, updateExpression, key, expressionValues, nil); err != nil {
		return fmt.Errorf("failed to increment %s for post %s: %w", attribute, postID, err)
	}
	return nil
}

// GetPostsByAuthors fetches recent posts for every author in authorIDs,
// bounded to totalLimit across all authors, newest first.
func (ps *PostService) GetPostsByAuthors(ctx context.Context, authorIDs []string, totalLimit int) ([]models.Post, error) {
	var posts []models.Post

	for _, authorID := range authorIDs {
		keyCondition := "authorId = :author"
		expressionValues := map[string]types.AttributeValue{
			":author": &types.AttributeValueMemberS{Value: authorID},
		}

		items, err := ps.Dynamo.QueryItemsWithIndex(ctx, models.PostsTable, models.AuthorIndex, keyCondition, expressionValues, nil, perAuthorFetchLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch posts for author %s: %w", authorID, err)
		}

		var authorPosts []models.Post
		if err := attributevalue.UnmarshalListOfMaps(items, &authorPosts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
		}
		posts = append(posts, authorPosts...)
	}

	// Sort newest first and trim to the superset bound
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	if totalLimit > 0 && totalLimit < len(posts) {
		posts = posts[:totalLimit]
	}

	return posts, nil
}

// GetRecentPosts scans for the chronologically newest posts, optionally
// excluding a set of authors (the viewer and everyone they follow).
func (ps *PostService) GetRecentPosts(ctx context.Context, limit int, excludeAuthors map[string]struct{}) ([]models.Post, error) {
	var posts []models.Post

	err := ps.Dynamo.ScanWithFilter(ctx, models.PostsTable, func(item map[string]types.AttributeValue) bool {
		if len(excludeAuthors) == 0 {
			return true
		}
		authorID, ok := item["authorId"].(*types.AttributeValueMemberS)
		if !ok {
			return false
		}
		_, excluded := excludeAuthors[authorID.Value]
		return !excluded
	}, nil, &posts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent posts: %w", err)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}

	return posts, nil
}

// GetPost retrieves a single post by id.
func (ps *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	key := map[string]types.AttributeValue{
		"postId": &types.AttributeValueMemberS{Value: postID},
	}

	item, err := ps.Dynamo.GetItem(ctx, models.PostsTable, key)
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := attributevalue.UnmarshalMap(item, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	return &post, nil
}
