package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for swipes under /api/swipe
func RegisterSwipeRoutes(r *mux.Router, swipeService *services.SwipeService) {
	controller := controllers.NewSwipeController(swipeService)

	swipeRouter := r.PathPrefix("/api/swipe").Subrouter()
	swipeRouter.HandleFunc("", controller.HandleSwipe).Methods("POST")
	swipeRouter.HandleFunc("/unmatch", controller.HandleUnmatch).Methods("POST")
}
