package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes for notifications under
// /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService) {
	controller := controllers.NewNotificationController(notificationService)

	notificationRouter := r.PathPrefix("/api/notifications").Subrouter()
	notificationRouter.HandleFunc("", controller.HandleGetNotifications).Methods("GET")
	notificationRouter.HandleFunc("/markRead", controller.HandleMarkAllRead).Methods("POST")
}
