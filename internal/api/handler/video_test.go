package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
	"github.com/otto-sketch/video-player-1/internal/domain/repository"
	"github.com/otto-sketch/video-player-1/internal/usecase"
)

// mockVideoService implements usecase.VideoService for handler tests.
type mockVideoService struct {
	uploadFn func(ctx context.Context, input usecase.UploadInput) (*model.VideoRecord, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)
	listFn   func(ctx context.Context) ([]*model.VideoRecord, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)
	clearFn  func(ctx context.Context) ([]*model.VideoRecord, error)
}

func (m *mockVideoService) Upload(ctx context.Context, input usecase.UploadInput) (*model.VideoRecord, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoService) List(ctx context.Context) ([]*model.VideoRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockVideoService) Delete(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil, repository.ErrVideoNotFound
}

func (m *mockVideoService) Clear(ctx context.Context) ([]*model.VideoRecord, error) {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil, nil
}

func newTestRouter(svc usecase.VideoService) *chi.Mux {
	h := NewVideoHandler(svc)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/videos", h.List)
		r.Get("/videos/{id}", h.Get)
		r.Post("/upload", h.Upload)
		r.Delete("/videos/{id}", h.Delete)
		r.Delete("/videos", h.Clear)
	})
	r.NotFound(NotFound)
	return r
}

// multipartBody builds a multipart form with one video part and an
// optional title field.
func multipartBody(t *testing.T, fieldName, fileName, contentType string, data []byte, title string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	hdr.Set("Content-Type", contentType)

	part, err := w.CreatePart(hdr)
	require.NoError(t, err, "creating multipart part")
	_, err = part.Write(data)
	require.NoError(t, err, "writing part data")

	if title != "" {
		require.NoError(t, w.WriteField("title", title), "writing title field")
	}
	require.NoError(t, w.Close(), "closing multipart writer")

	return &buf, w.FormDataContentType()
}

func sampleRecord() *model.VideoRecord {
	return model.NewVideoRecord(
		"videos/clip_abc.mp4",
		"clip.mp4",
		"",
		"video/mp4",
		"http://localhost:9000/videos/videos/clip_abc.mp4",
		10485760,
	)
}

func TestVideoHandler_Upload(t *testing.T) {
	var gotInput usecase.UploadInput
	svc := &mockVideoService{
		uploadFn: func(ctx context.Context, input usecase.UploadInput) (*model.VideoRecord, error) {
			gotInput = input
			return sampleRecord(), nil
		},
	}
	router := newTestRouter(svc)

	data := bytes.Repeat([]byte("v"), 1024)
	body, contentType := multipartBody(t, "video", "clip.mp4", "video/mp4", data, "My Clip")

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "response body: %s", rec.Body.String())

	require.Equal(t, "clip.mp4", gotInput.FileName)
	require.Equal(t, "video/mp4", gotInput.ContentType)
	require.Equal(t, int64(1024), gotInput.Size)
	require.Equal(t, "My Clip", gotInput.Title)

	var resp UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, int64(10485760), resp.Video.Size)
	require.Equal(t, "10 MB", resp.Video.SizeHuman)
	require.Equal(t, "clip", resp.Video.Title)
}

func TestVideoHandler_UploadRejections(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{"oversize", usecase.ErrFileTooLarge, http.StatusBadRequest, "file_too_large"},
		{"unsupported type", usecase.ErrUnsupportedType, http.StatusBadRequest, "unsupported_type"},
		{"extension mismatch", usecase.ErrExtensionMismatch, http.StatusBadRequest, "unsupported_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockVideoService{
				uploadFn: func(ctx context.Context, input usecase.UploadInput) (*model.VideoRecord, error) {
					return nil, tt.serviceErr
				},
			}
			router := newTestRouter(svc)

			body, contentType := multipartBody(t, "video", "clip.mp4", "video/mp4", []byte("data"), "")
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestVideoHandler_UploadMissingFile(t *testing.T) {
	svc := &mockVideoService{}
	router := newTestRouter(svc)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "no file here"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "missing_file", resp.Error)
}

func TestVideoHandler_UploadBackendFailure(t *testing.T) {
	svc := &mockVideoService{
		uploadFn: func(ctx context.Context, input usecase.UploadInput) (*model.VideoRecord, error) {
			return nil, errors.New("store object: connection refused")
		},
	}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, "video", "clip.mp4", "video/mp4", []byte("data"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "storage_error", resp.Error)
	require.Contains(t, resp.Message, "connection refused")
}

func TestVideoHandler_List(t *testing.T) {
	records := []*model.VideoRecord{sampleRecord(), sampleRecord()}
	svc := &mockVideoService{
		listFn: func(ctx context.Context) ([]*model.VideoRecord, error) {
			return records, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListVideosResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.Len(t, resp.Videos, 2)
}

func TestVideoHandler_ListEmpty(t *testing.T) {
	svc := &mockVideoService{
		listFn: func(ctx context.Context) ([]*model.VideoRecord, error) {
			return nil, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"count":0,"videos":[]}`, rec.Body.String())
}

func TestVideoHandler_Get(t *testing.T) {
	record := sampleRecord()
	svc := &mockVideoService{
		getFn: func(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
			if id == record.ID {
				return record, nil
			}
			return nil, repository.ErrVideoNotFound
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/videos/"+record.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp VideoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, record.ID.String(), resp.ID)
}

func TestVideoHandler_GetNotFound(t *testing.T) {
	router := newTestRouter(&mockVideoService{})

	req := httptest.NewRequest(http.MethodGet, "/api/videos/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideoHandler_GetInvalidID(t *testing.T) {
	router := newTestRouter(&mockVideoService{})

	req := httptest.NewRequest(http.MethodGet, "/api/videos/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoHandler_Delete(t *testing.T) {
	record := sampleRecord()
	svc := &mockVideoService{
		deleteFn: func(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
			return record, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/videos/"+record.ID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DeleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, record.ID.String(), resp.ID)
	require.Equal(t, record.Title, resp.Title)
}

func TestVideoHandler_DeleteProtected(t *testing.T) {
	svc := &mockVideoService{
		deleteFn: func(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
			return nil, repository.ErrProtectedVideo
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/videos/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoHandler_Clear(t *testing.T) {
	svc := &mockVideoService{
		clearFn: func(ctx context.Context) ([]*model.VideoRecord, error) {
			return []*model.VideoRecord{sampleRecord(), sampleRecord(), sampleRecord()}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/videos", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ClearResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, 3, resp.Removed)
}

func TestNotFoundRoute(t *testing.T) {
	router := newTestRouter(&mockVideoService{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp, "endpoints")
}
