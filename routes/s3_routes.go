package routes

import (
	"campuslink_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for presigned media URLs under /api/media
func RegisterS3Routes(r *mux.Router) {
	controller := controllers.NewS3Controller()

	mediaRouter := r.PathPrefix("/api/media").Subrouter()
	mediaRouter.HandleFunc("/uploadUrl", controller.HandleGenerateUploadURL).Methods("POST")
	mediaRouter.HandleFunc("/readUrl", controller.HandleGenerateReadURL).Methods("GET")
}
