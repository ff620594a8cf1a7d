package controllers

import (
	"encoding/json"
	"net/http"

	"campuslink_server/services"
)

// NotificationController handles HTTP requests for notifications
type NotificationController struct {
	NotificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController instance
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{NotificationService: notificationService}
}

// HandleGetNotifications lists a user's notifications, newest first
func (nc *NotificationController) HandleGetNotifications(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	userID := queryParams.Get("userId")
	if userID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}
	limit := parsePositiveInt(queryParams.Get("limit"), 50)

	notifications, err := nc.NotificationService.GetNotifications(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"notifications": notifications,
	})
}

// HandleMarkAllRead flags all of a user's notifications as read
func (nc *NotificationController) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	if err := nc.NotificationService.MarkAllRead(r.Context(), request.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Notifications marked as read"})
}
