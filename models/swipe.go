package models

// Swipe records one directional swipe between two users. At most one
// swipe exists per ordered (fromUserId, toUserId) pair; the table's
// composite key plus a conditional put enforce that.
type Swipe struct {
	FromUserID string `dynamodbav:"fromUserId" json:"fromUserId"` // Partition Key
	ToUserID   string `dynamodbav:"toUserId" json:"toUserId"`     // Sort Key
	Direction  string `dynamodbav:"direction" json:"direction"`   // left, right
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for swipes
const SwipesTable = "Swipes"
