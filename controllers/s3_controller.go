package controllers

import (
	"encoding/json"
	"net/http"

	"campuslink_server/services"
)

// S3Controller handles presigned media URL requests
type S3Controller struct{}

// NewS3Controller creates a new S3Controller instance
func NewS3Controller() *S3Controller {
	return &S3Controller{}
}

// HandleGenerateUploadURL issues a presigned PUT URL for an avatar or a
// post media attachment
func (sc *S3Controller) HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
		Kind     string `json:"kind"` // "avatar" or "post"
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.FileName == "" || request.FileType == "" {
		http.Error(w, "fileName and fileType are required", http.StatusBadRequest)
		return
	}

	prefix := services.PostMediaPrefix
	if request.Kind == "avatar" {
		prefix = services.AvatarPrefix
	}

	uploadURL, key, err := services.GenerateUploadURL(prefix, request.FileName, request.FileType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"uploadUrl": uploadURL,
		"key":       key,
	})
}

// HandleGenerateReadURL issues a presigned GET URL for a stored object
func (sc *S3Controller) HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	readURL, err := services.GenerateReadURL(key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"readUrl": readURL,
	})
}
