package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for discovery and compatibility
// under /api/match
func RegisterMatchRoutes(r *mux.Router, matchRankService *services.MatchRankService) {
	controller := controllers.NewMatchController(matchRankService)

	matchRouter := r.PathPrefix("/api/match").Subrouter()
	matchRouter.HandleFunc("/discover", controller.Discover).Methods("GET")
	matchRouter.HandleFunc("/compatibility", controller.Compatibility).Methods("GET")
}
