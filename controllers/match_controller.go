package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"campuslink_server/services"
)

// DefaultDiscoveryLimit is the discovery queue size when none is given.
const DefaultDiscoveryLimit = 25

// MatchController handles HTTP requests for discovery and compatibility
type MatchController struct {
	MatchRankService *services.MatchRankService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchRankService *services.MatchRankService) *MatchController {
	return &MatchController{MatchRankService: matchRankService}
}

// Discover handles fetching the ranked discovery queue for a user
func (mc *MatchController) Discover(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	viewerID := queryParams.Get("userId")
	if viewerID == "" {
		http.Error(w, "userId is required", http.StatusBadRequest)
		return
	}
	limit := parsePositiveInt(queryParams.Get("limit"), DefaultDiscoveryLimit)

	candidates, err := mc.MatchRankService.Discover(r.Context(), viewerID, limit)
	if errors.Is(err, services.ErrProfileNotFound) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch discovery queue: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"candidates": candidates,
	})
}

// Compatibility handles the "why we matched" breakdown for one pair
func (mc *MatchController) Compatibility(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	viewerID := queryParams.Get("userId")
	candidateID := queryParams.Get("targetUserId")
	if viewerID == "" || candidateID == "" {
		http.Error(w, "userId and targetUserId are required", http.StatusBadRequest)
		return
	}

	breakdown, err := mc.MatchRankService.Compatibility(r.Context(), viewerID, candidateID)
	if errors.Is(err, services.ErrProfileNotFound) {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute compatibility: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(breakdown)
}
