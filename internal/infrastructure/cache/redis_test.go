package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
)

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

func testRecord() *model.VideoRecord {
	return &model.VideoRecord{
		ID:           uuid.New(),
		StorageKey:   "videos/clip_abc.mp4",
		OriginalName: "clip.mp4",
		Title:        "clip",
		Size:         10485760,
		ContentType:  "video/mp4",
		URL:          "http://localhost:9000/videos/videos/clip_abc.mp4",
		Format:       "mp4",
		CreatedAt:    time.Now().Truncate(time.Microsecond),
	}
}

func TestRedisVideoCache_GetCacheHit(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	c := NewRedisVideoCache(client)
	ctx := context.Background()

	record := testRecord()
	if err := c.Set(ctx, record, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected record, got nil")
	}

	if got.ID != record.ID {
		t.Errorf("ID = %v, want %v", got.ID, record.ID)
	}
	if got.StorageKey != record.StorageKey {
		t.Errorf("StorageKey = %q, want %q", got.StorageKey, record.StorageKey)
	}
	if got.Title != record.Title {
		t.Errorf("Title = %q, want %q", got.Title, record.Title)
	}
	if got.Size != record.Size {
		t.Errorf("Size = %d, want %d", got.Size, record.Size)
	}
	if !got.CreatedAt.Equal(record.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, record.CreatedAt)
	}
}

func TestRedisVideoCache_GetCacheMiss(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	c := NewRedisVideoCache(client)

	got, err := c.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for cache miss, got %v", got)
	}
}

func TestRedisVideoCache_Delete(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()

	c := NewRedisVideoCache(client)
	ctx := context.Background()

	record := testRecord()
	if err := c.Set(ctx, record, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := c.Delete(ctx, record.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := c.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %v", got)
	}
}

func TestRedisVideoCache_TTLExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisVideoCache(client)
	ctx := context.Background()

	record := testRecord()
	if err := c.Set(ctx, record, time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	got, err := c.Get(ctx, record.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after TTL expiry, got %v", got)
	}
}
