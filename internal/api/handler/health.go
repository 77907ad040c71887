package handler

import (
	"net/http"
)

type HealthResponse struct {
	Status        string `json:"status"`
	StorageBucket string `json:"storage_bucket"`
	StorageRegion string `json:"storage_region"`
}

// HealthHandler reports liveness and echoes the storage identity so
// operators can see which backend a deployment points at.
type HealthHandler struct {
	bucket string
	region string
}

func NewHealthHandler(bucket, region string) *HealthHandler {
	return &HealthHandler{bucket: bucket, region: region}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		StorageBucket: h.bucket,
		StorageRegion: h.region,
	})
}
