package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
	"github.com/otto-sketch/video-player-1/internal/infrastructure/metrics"
)

// videoCacheKeyPrefix is the prefix for record cache keys in Redis.
const videoCacheKeyPrefix = "video:"

// recordJSON is the JSON representation of a VideoRecord for caching.
// Using an explicit struct avoids coupling to the API response shapes.
type recordJSON struct {
	ID           string `json:"id"`
	StorageKey   string `json:"storage_key"`
	OriginalName string `json:"original_name"`
	Title        string `json:"title"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
	URL          string `json:"url"`
	Duration     string `json:"duration,omitempty"`
	Resolution   string `json:"resolution,omitempty"`
	Format       string `json:"format,omitempty"`
	Protected    bool   `json:"protected"`
	CreatedAt    string `json:"created_at"`
}

// RedisVideoCache implements VideoCache using Redis as the backing store.
type RedisVideoCache struct {
	client *redis.Client
}

// NewRedisVideoCache creates a new Redis-backed record cache.
func NewRedisVideoCache(client *redis.Client) *RedisVideoCache {
	return &RedisVideoCache{client: client}
}

// Get retrieves a record from Redis. Returns nil, nil on cache miss.
func (c *RedisVideoCache) Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	data, err := c.client.Get(ctx, buildKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
			return nil, nil
		}
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	record, err := deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("deserialize record: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
	return record, nil
}

// Set stores a record in Redis with the specified TTL.
func (c *RedisVideoCache) Set(ctx context.Context, record *model.VideoRecord, ttl time.Duration) error {
	data, err := serialize(record)
	if err != nil {
		return fmt.Errorf("serialize record: %w", err)
	}

	if err := c.client.Set(ctx, buildKey(record.ID), data, ttl).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis set: %w", err)
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	return nil
}

// Delete removes a record from Redis.
func (c *RedisVideoCache) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, buildKey(id)).Err(); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError).Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
	return nil
}

func buildKey(id uuid.UUID) string {
	return videoCacheKeyPrefix + id.String()
}

func serialize(record *model.VideoRecord) ([]byte, error) {
	v := recordJSON{
		ID:           record.ID.String(),
		StorageKey:   record.StorageKey,
		OriginalName: record.OriginalName,
		Title:        record.Title,
		Size:         record.Size,
		ContentType:  record.ContentType,
		URL:          record.URL,
		Duration:     record.Duration,
		Resolution:   record.Resolution,
		Format:       record.Format,
		Protected:    record.Protected,
		CreatedAt:    record.CreatedAt.Format(time.RFC3339Nano),
	}
	return json.Marshal(v)
}

func deserialize(data []byte) (*model.VideoRecord, error) {
	var v recordJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(v.ID)
	if err != nil {
		return nil, fmt.Errorf("parse record ID: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &model.VideoRecord{
		ID:           id,
		StorageKey:   v.StorageKey,
		OriginalName: v.OriginalName,
		Title:        v.Title,
		Size:         v.Size,
		ContentType:  v.ContentType,
		URL:          v.URL,
		Duration:     v.Duration,
		Resolution:   v.Resolution,
		Format:       v.Format,
		Protected:    v.Protected,
		CreatedAt:    createdAt,
	}, nil
}
