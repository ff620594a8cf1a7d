package models

// Notification is a persisted in-app notification, also broadcast over
// the socket registry when the recipient is online.
type Notification struct {
	UserID         string `dynamodbav:"userId" json:"userId"` // Partition Key
	NotificationID string `dynamodbav:"notificationId" json:"notificationId"` // Sort Key
	Type           string `dynamodbav:"type" json:"type"`
	Message        string `dynamodbav:"message" json:"message"`
	RefID          string `dynamodbav:"refId,omitempty" json:"refId,omitempty"`
	IsRead         bool   `dynamodbav:"isRead" json:"isRead"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
}

// NotificationsTable is the DynamoDB table name for notifications
const NotificationsTable = "Notifications"
