package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
	"github.com/otto-sketch/video-player-1/internal/domain/repository"
	"github.com/otto-sketch/video-player-1/internal/usecase"
)

// maxMultipartMemory caps how much of the multipart body is held in
// memory while parsing; the remainder spools to disk.
const maxMultipartMemory = 32 << 20

// Request/Response types

type VideoResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	OriginalName string `json:"original_name"`
	StorageKey   string `json:"storage_key"`
	Size         int64  `json:"size"`
	SizeHuman    string `json:"size_human"`
	ContentType  string `json:"content_type"`
	URL          string `json:"url"`
	Duration     string `json:"duration,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
	Format       string `json:"format,omitempty"`
	Protected    bool   `json:"protected"`
	CreatedAt    string `json:"created_at"`
}

type ListVideosResponse struct {
	Count  int             `json:"count"`
	Videos []VideoResponse `json:"videos"`
}

type UploadResponse struct {
	Success bool          `json:"success"`
	Video   VideoResponse `json:"video"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Title   string `json:"title"`
}

type ClearResponse struct {
	Success bool `json:"success"`
	Removed int  `json:"removed"`
}

// VideoHandler handles video-related HTTP requests.
type VideoHandler struct {
	svc usecase.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(svc usecase.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// List handles GET /api/videos
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	videos := make([]VideoResponse, 0, len(records))
	for _, rec := range records {
		videos = append(videos, toVideoResponse(rec))
	}

	JSON(w, http.StatusOK, ListVideosResponse{
		Count:  len(videos),
		Videos: videos,
	})
}

// Get handles GET /api/videos/{id}
func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	record, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toVideoResponse(record))
}

// Upload handles POST /api/upload
// Expects a multipart form with a single file under field "video" and
// an optional "title" field.
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Request is not valid multipart form data")
		return
	}

	files := r.MultipartForm.File["video"]
	if len(files) == 0 {
		Error(w, http.StatusBadRequest, "missing_file", "No video file provided under field 'video'")
		return
	}
	if len(files) > 1 {
		Error(w, http.StatusBadRequest, "too_many_files", "Only one file per request is accepted")
		return
	}

	header := files[0]
	file, err := header.Open()
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Failed to read uploaded file")
		return
	}
	defer file.Close()

	record, err := h.svc.Upload(r.Context(), usecase.UploadInput{
		File:        file,
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Title:       r.FormValue("title"),
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Video:   toVideoResponse(record),
	})
}

// Delete handles DELETE /api/videos/{id}
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID must be a valid UUID")
		return
	}

	record, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, DeleteResponse{
		Success: true,
		ID:      record.ID.String(),
		Title:   record.Title,
	})
}

// Clear handles DELETE /api/videos
func (h *VideoHandler) Clear(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.Clear(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, ClearResponse{
		Success: true,
		Removed: len(removed),
	})
}

// NotFound is the structured fallback for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusNotFound, map[string]any{
		"error":   "not_found",
		"message": "Unknown route",
		"endpoints": []string{
			"GET /api/health",
			"GET /api/videos",
			"GET /api/videos/{id}",
			"POST /api/upload",
			"DELETE /api/videos/{id}",
			"DELETE /api/videos",
		},
	})
}

func (h *VideoHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrVideoNotFound):
		Error(w, http.StatusNotFound, "video_not_found", "Video not found")
	case errors.Is(err, repository.ErrProtectedVideo):
		Error(w, http.StatusBadRequest, "video_protected", "This video cannot be deleted")
	case errors.Is(err, usecase.ErrMissingFile):
		Error(w, http.StatusBadRequest, "missing_file", "No video file provided")
	case errors.Is(err, usecase.ErrFileTooLarge):
		Error(w, http.StatusBadRequest, "file_too_large", "File exceeds the maximum allowed size")
	case errors.Is(err, usecase.ErrUnsupportedType):
		Error(w, http.StatusBadRequest, "unsupported_type", "Content type is not an accepted video format")
	case errors.Is(err, usecase.ErrExtensionMismatch):
		Error(w, http.StatusBadRequest, "unsupported_type", "File extension is not allowed")
	default:
		// Backend failure reasons are surfaced to the caller; this is
		// an internal tool and the detail helps self-correction.
		Error(w, http.StatusInternalServerError, "storage_error", err.Error())
	}
}

func toVideoResponse(v *model.VideoRecord) VideoResponse {
	return VideoResponse{
		ID:           v.ID.String(),
		Title:        v.Title,
		OriginalName: v.OriginalName,
		StorageKey:   v.StorageKey,
		Size:         v.Size,
		SizeHuman:    v.SizeHuman(),
		ContentType:  v.ContentType,
		URL:          v.URL,
		Duration:     v.Duration,
		Resolution:   v.Resolution,
		Format:       v.Format,
		Protected:    v.Protected,
		CreatedAt:    v.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
