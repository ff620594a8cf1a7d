package controllers

import (
	"encoding/json"
	"net/http"

	"campuslink_server/models"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for posts
type PostController struct {
	PostService *services.PostService
}

// NewPostController creates a new PostController instance
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{PostService: postService}
}

// HandleCreatePost creates a new post
func (pc *PostController) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if post.AuthorID == "" {
		http.Error(w, "authorId is required", http.StatusBadRequest)
		return
	}

	created, err := pc.PostService.CreatePost(r.Context(), post)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// HandleLikePost bumps a post's like counter
func (pc *PostController) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	if postID == "" {
		http.Error(w, "postId is required", http.StatusBadRequest)
		return
	}

	if err := pc.PostService.IncrementLikeCount(r.Context(), postID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Post liked"})
}

// HandleCommentPost bumps a post's comment counter
func (pc *PostController) HandleCommentPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	if postID == "" {
		http.Error(w, "postId is required", http.StatusBadRequest)
		return
	}

	if err := pc.PostService.IncrementCommentCount(r.Context(), postID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Comment recorded"})
}

// HandleGetPost fetches a single post
func (pc *PostController) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]

	post, err := pc.PostService.GetPost(r.Context(), postID)
	if err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(post)
}
