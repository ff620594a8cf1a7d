package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"campuslink_server/models"
	"campuslink_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Broadcaster pushes an event to a user's live connections. The socket
// registry implements it; delivery is best-effort.
type Broadcaster interface {
	Broadcast(userID, event string, payload interface{})
}

// NotificationService persists notifications and fans them out over the
// connection registry.
type NotificationService struct {
	Dynamo   *DynamoService
	Registry Broadcaster
}

// Create stores one notification and broadcasts it.
func (ns *NotificationService) Create(ctx context.Context, notification models.Notification) error {
	notification.NotificationID = uuid.NewString()
	notification.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := ns.Dynamo.PutItem(ctx, models.NotificationsTable, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	ns.broadcast(notification)
	return nil
}

// NotifyMatch writes one notification per matched user in a single
// batch, then broadcasts to whoever is online. Broadcast failures are
// logged, never propagated — delivery is fire-and-forget.
func (ns *NotificationService) NotifyMatch(ctx context.Context, match models.Match) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	notifications := []models.Notification{
		{
			UserID:         match.User1ID,
			NotificationID: uuid.NewString(),
			Type:           models.NotificationTypeMatch,
			Message:        "You have a new match! Say hi!",
			RefID:          match.MatchID,
			CreatedAt:      createdAt,
		},
		{
			UserID:         match.User2ID,
			NotificationID: uuid.NewString(),
			Type:           models.NotificationTypeMatch,
			Message:        "You have a new match! Say hi!",
			RefID:          match.MatchID,
			CreatedAt:      createdAt,
		},
	}

	writeRequests := make([]types.WriteRequest, 0, len(notifications))
	for _, notification := range notifications {
		item, err := attributevalue.MarshalMap(notification)
		if err != nil {
			log.Printf("Failed to marshal match notification: %v", err)
			return
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	if err := ns.Dynamo.BatchWriteItems(ctx, models.NotificationsTable, writeRequests); err != nil {
		log.Printf("Failed to store match notifications: %v", err)
		return
	}

	for _, notification := range notifications {
		ns.broadcast(notification)
	}
}

// GetNotifications fetches a user's notifications, newest first.
func (ns *NotificationService) GetNotifications(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	keyCondition := "userId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := ns.Dynamo.QueryItemsWithOptions(ctx, models.NotificationsTable, keyCondition, expressionValues, nil, int32(limit), true)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}

	var notifications []models.Notification
	if err := attributevalue.UnmarshalListOfMaps(items, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse notifications: %w", err)
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt > notifications[j].CreatedAt
	})

	return notifications, nil
}

// MarkAllRead flags every unread notification for userID as read.
func (ns *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	keyCondition := "userId = :userId"
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := ns.Dynamo.QueryItems(ctx, models.NotificationsTable, keyCondition, expressionValues, nil, 100)
	if err != nil {
		return fmt.Errorf("failed to fetch notifications: %w", err)
	}

	for _, item := range items {
		notificationID := utils.ExtractString(item, "notificationId")
		if notificationID == "" {
			continue
		}
		if utils.ExtractBool(item, "isRead") {
			continue
		}

		key := map[string]types.AttributeValue{
			"userId":         &types.AttributeValueMemberS{Value: userID},
			"notificationId": &types.AttributeValueMemberS{Value: notificationID},
		}
		updateExpression := "SET isRead = :true"
		updateValues := map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		}

		if _, err := ns.Dynamo.UpdateItem(ctx, models.NotificationsTable, updateExpression, key, updateValues, nil); err != nil {
			log.Printf("Failed to mark notification %s as read: %v", notificationID, err)
		}
	}

	return nil
}

func (ns *NotificationService) broadcast(notification models.Notification) {
	if ns.Registry == nil {
		return
	}
	ns.Registry.Broadcast(notification.UserID, "notification", notification)
}
