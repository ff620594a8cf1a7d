package models

import "time"

// Post defines the structure for feed posts
type Post struct {
	PostID       string   `dynamodbav:"postId" json:"postId"`
	AuthorID     string   `dynamodbav:"authorId" json:"authorId"`
	Content      string   `dynamodbav:"content,omitempty" json:"content,omitempty"`
	MediaKeys    []string `dynamodbav:"mediaKeys,omitempty" json:"mediaKeys,omitempty"`
	HasPoll      bool     `dynamodbav:"hasPoll" json:"hasPoll"`
	LikeCount    int      `dynamodbav:"likeCount" json:"likeCount"`
	CommentCount int      `dynamodbav:"commentCount" json:"commentCount"`
	CreatedAt    string   `dynamodbav:"createdAt" json:"createdAt"`
}

// HasMedia reports whether the post carries media attachments or a poll.
func (p Post) HasMedia() bool {
	return len(p.MediaKeys) > 0 || p.HasPoll
}

// CreatedTime parses the post's creation timestamp. A zero time is
// returned for unparseable values, which the scorer treats as very old.
func (p Post) CreatedTime() time.Time {
	t, _ := time.Parse(time.RFC3339, p.CreatedAt)
	return t
}

// RankedPost is a Post with its computed feed score. It only lives for
// the duration of one ranking call.
type RankedPost struct {
	Post
	Score                float64 `json:"score"`
	IsFromFollowedAuthor bool    `json:"isFromFollowedAuthor"`
}

// PostsTable is the DynamoDB table name for posts
const PostsTable = "Posts"

// AuthorIndex is the GSI used to query a single author's posts
const AuthorIndex = "authorId-index"
