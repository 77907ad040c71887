package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
	"github.com/otto-sketch/video-player-1/internal/infrastructure/cache"
	"github.com/otto-sketch/video-player-1/internal/infrastructure/metrics"
)

// CachedVideoServiceConfig holds configuration for CachedVideoService.
type CachedVideoServiceConfig struct {
	// CacheTTL is the TTL for cached records.
	CacheTTL time.Duration
}

// DefaultCachedVideoServiceConfig returns the default configuration.
func DefaultCachedVideoServiceConfig() CachedVideoServiceConfig {
	return CachedVideoServiceConfig{
		CacheTTL: 5 * time.Minute,
	}
}

// cachedVideoService wraps VideoService with a record cache. It
// implements the decorator pattern so the base service stays unaware
// of caching.
type cachedVideoService struct {
	delegate VideoService
	cache    cache.VideoCache
	sfGroup  singleflight.Group

	cacheTTL time.Duration
}

// NewCachedVideoService creates a CachedVideoService wrapping the
// provided VideoService.
func NewCachedVideoService(
	delegate VideoService,
	videoCache cache.VideoCache,
	cfg CachedVideoServiceConfig,
) VideoService {
	return &cachedVideoService{
		delegate: delegate,
		cache:    videoCache,
		cacheTTL: cfg.CacheTTL,
	}
}

// Upload delegates to the underlying service. The fresh record is
// cached eagerly since a playback request typically follows an upload.
func (s *cachedVideoService) Upload(ctx context.Context, input UploadInput) (*model.VideoRecord, error) {
	record, err := s.delegate.Upload(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, record, s.cacheTTL); err != nil {
		slog.Warn("failed to cache uploaded record",
			"video_id", record.ID,
			"error", err,
		)
	}
	return record, nil
}

// Get retrieves a record with caching. Singleflight coalesces
// concurrent requests for the same ID.
func (s *cachedVideoService) Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	result, err, shared := s.sfGroup.Do(id.String(), func() (any, error) {
		return s.getWithCache(ctx, id)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}
	return result.(*model.VideoRecord), nil
}

// getWithCache implements the cache-aside pattern.
func (s *cachedVideoService) getWithCache(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	record, err := s.cache.Get(ctx, id)
	if err != nil {
		// Cache trouble must not take down reads.
		slog.Warn("cache get failed, falling back to catalog",
			"video_id", id,
			"error", err,
		)
	}
	if record != nil {
		return record, nil
	}

	record, err = s.delegate.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, record, s.cacheTTL); err != nil {
		slog.Warn("failed to cache record",
			"video_id", id,
			"error", err,
		)
	}
	return record, nil
}

// List delegates to the underlying service; the catalog is in-memory,
// so listing needs no cache.
func (s *cachedVideoService) List(ctx context.Context) ([]*model.VideoRecord, error) {
	return s.delegate.List(ctx)
}

// Delete invalidates the cache entry after a successful delete.
func (s *cachedVideoService) Delete(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	record, err := s.delegate.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return record, nil
}

// Clear invalidates every removed record's cache entry.
func (s *cachedVideoService) Clear(ctx context.Context) ([]*model.VideoRecord, error) {
	removed, err := s.delegate.Clear(ctx)
	if err != nil {
		return nil, err
	}

	for _, record := range removed {
		s.invalidate(ctx, record.ID)
	}
	return removed, nil
}

func (s *cachedVideoService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, id); err != nil {
		// Stale entries age out via TTL.
		slog.Warn("failed to invalidate cache entry",
			"video_id", id,
			"error", err,
		)
	}
}
