package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"campuslink_server/services"
)

// SwipeController handles HTTP requests for swipes and unmatching
type SwipeController struct {
	SwipeService *services.SwipeService
}

// NewSwipeController creates a new SwipeController instance
func NewSwipeController(swipeService *services.SwipeService) *SwipeController {
	return &SwipeController{SwipeService: swipeService}
}

// HandleSwipe records a directional swipe and reports whether it
// completed a mutual match
func (sc *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FromUserID string `json:"fromUserId"`
		ToUserID   string `json:"toUserId"`
		Direction  string `json:"direction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.FromUserID == "" || request.ToUserID == "" || request.Direction == "" {
		http.Error(w, "fromUserId, toUserId, and direction are required", http.StatusBadRequest)
		return
	}

	result, err := sc.SwipeService.RecordSwipe(r.Context(), request.FromUserID, request.ToUserID, request.Direction)
	switch {
	case errors.Is(err, services.ErrSelfSwipe):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, services.ErrDuplicateSwipe):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Println("Error recording swipe:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// HandleUnmatch deletes a match on behalf of one of its two users
func (sc *SwipeController) HandleUnmatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.MatchID == "" || request.UserID == "" {
		http.Error(w, "matchId and userId are required", http.StatusBadRequest)
		return
	}

	err := sc.SwipeService.Unmatch(r.Context(), request.MatchID, request.UserID)
	switch {
	case errors.Is(err, services.ErrMatchNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case errors.Is(err, services.ErrNotMatchParticipant):
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case err != nil:
		log.Println("Error unmatching:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unmatched successfully"})
}
