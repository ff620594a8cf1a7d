package models

// Swipe directions
const (
	SwipeLeft  = "left"
	SwipeRight = "right"
)

// Notification types
const (
	NotificationTypeMatch  = "match"
	NotificationTypeFollow = "follow"
	NotificationTypeLike   = "like"
)
