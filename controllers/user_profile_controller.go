package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campuslink_server/models"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// UserProfileController handles HTTP requests for profiles and follows
type UserProfileController struct {
	ProfileService *services.UserProfileService
}

// NewUserProfileController creates a new UserProfileController instance
func NewUserProfileController(profileService *services.UserProfileService) *UserProfileController {
	return &UserProfileController{ProfileService: profileService}
}

// HandleCreateProfile creates a new user profile
func (uc *UserProfileController) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if profile.UserID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}

	created, err := uc.ProfileService.AddUserProfile(r.Context(), profile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// HandleGetProfile fetches one profile by id
func (uc *UserProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := uc.ProfileService.GetUserProfile(r.Context(), userID)
	if errors.Is(err, services.ErrProfileNotFound) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(profile)
}

// HandleUpdateProfile applies a partial update to a profile
func (uc *UserProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(updates) == 0 {
		http.Error(w, "No updates provided", http.StatusBadRequest)
		return
	}

	updated, err := uc.ProfileService.UpdateUserProfile(r.Context(), userID, updates)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(updated)
}

// HandleDeleteProfile removes a profile
func (uc *UserProfileController) HandleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := uc.ProfileService.DeleteUserProfile(r.Context(), userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Profile deleted"})
}

// HandleFollow creates a follow edge
func (uc *UserProfileController) HandleFollow(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FollowerID string `json:"followerId"`
		FolloweeID string `json:"followeeId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.FollowerID == "" || request.FolloweeID == "" {
		http.Error(w, "followerId and followeeId are required", http.StatusBadRequest)
		return
	}

	err := uc.ProfileService.Follow(r.Context(), request.FollowerID, request.FolloweeID)
	if errors.Is(err, services.ErrAlreadyFollowing) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Followed successfully"})
}

// HandleUnfollow removes a follow edge
func (uc *UserProfileController) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FollowerID string `json:"followerId"`
		FolloweeID string `json:"followeeId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.FollowerID == "" || request.FolloweeID == "" {
		http.Error(w, "followerId and followeeId are required", http.StatusBadRequest)
		return
	}

	if err := uc.ProfileService.Unfollow(r.Context(), request.FollowerID, request.FolloweeID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Unfollowed successfully"})
}

// HandleHeartbeat stamps the caller's last-active time
func (uc *UserProfileController) HandleHeartbeat(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	if err := uc.ProfileService.TouchLastActive(r.Context(), userID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Activity recorded"})
}
