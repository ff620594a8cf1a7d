package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"campuslink_server/services"
)

// FeedController handles HTTP requests for the home feed
type FeedController struct {
	FeedService *services.FeedService
}

// NewFeedController creates a new FeedController instance
func NewFeedController(feedService *services.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// GetFeed handles fetching one ranked feed page. userId is optional:
// anonymous callers get the discovery stream only.
func (fc *FeedController) GetFeed(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	viewerID := queryParams.Get("userId")
	page := parsePositiveInt(queryParams.Get("page"), 1)
	limit := parsePositiveInt(queryParams.Get("limit"), services.DefaultFeedLimit)

	posts, err := fc.FeedService.GetFeed(r.Context(), viewerID, page, limit)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch feed: %v", err), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"posts": posts,
		"page":  page,
		"limit": limit,
	})
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
