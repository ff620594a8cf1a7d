package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterPostRoutes sets up routes for posts under /api/posts
func RegisterPostRoutes(r *mux.Router, postService *services.PostService) {
	controller := controllers.NewPostController(postService)

	postRouter := r.PathPrefix("/api/posts").Subrouter()
	postRouter.HandleFunc("", controller.HandleCreatePost).Methods("POST")
	postRouter.HandleFunc("/{postId}", controller.HandleGetPost).Methods("GET")
	postRouter.HandleFunc("/{postId}/like", controller.HandleLikePost).Methods("POST")
	postRouter.HandleFunc("/{postId}/comment", controller.HandleCommentPost).Methods("POST")
}
