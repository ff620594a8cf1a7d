package models

// Follow records one user following another.
type Follow struct {
	FollowerID string `dynamodbav:"followerId" json:"followerId"` // Partition Key
	FolloweeID string `dynamodbav:"followeeId" json:"followeeId"` // Sort Key
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// FollowsTable is the DynamoDB table name for follow edges
const FollowsTable = "Follows"

// FolloweeIndex is the GSI used to query a user's followers
const FolloweeIndex = "followeeId-index"
