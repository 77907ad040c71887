package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Upload   UploadConfig
	CORS     CORSConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	Endpoint  string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKey string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	Bucket    string `envconfig:"STORAGE_BUCKET" default:"videos"`
	Region    string `envconfig:"STORAGE_REGION" default:"us-east-1"`
	KeyPrefix string `envconfig:"STORAGE_KEY_PREFIX" default:"videos/"`
	UseSSL    bool   `envconfig:"STORAGE_USE_SSL" default:"false"`

	// PublicBaseURL overrides the URL base used for playback links.
	// When empty, links are built from Endpoint/Bucket directly, which
	// assumes the bucket is public-read.
	PublicBaseURL string `envconfig:"STORAGE_PUBLIC_BASE_URL" default:""`
}

// UploadConfig captures the upload acceptance policy. Two deployment
// variants exist: a permissive one accepting any "video/*" content type
// plus the allow-list, and a restricted one pinning a single content
// type and file extension.
type UploadConfig struct {
	MaxBytes           int64    `envconfig:"UPLOAD_MAX_BYTES" default:"104857600"`
	AllowedTypes       []string `envconfig:"UPLOAD_ALLOWED_TYPES" default:"video/mp4,video/webm,video/ogg,video/quicktime,video/x-msvideo,video/x-matroska"`
	AcceptVideoPrimary bool     `envconfig:"UPLOAD_ACCEPT_VIDEO_PRIMARY" default:"true"`

	// RequiredExtension, when set, must match the uploaded filename in
	// addition to the content-type check (e.g. ".mp4").
	RequiredExtension string `envconfig:"UPLOAD_REQUIRED_EXTENSION" default:""`

	// ForcedExtension, when set, replaces whatever extension the client
	// supplied when deriving the storage key.
	ForcedExtension string `envconfig:"UPLOAD_FORCED_EXTENSION" default:""`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// RedisConfig is optional: an empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5m"`
}

// RabbitMQConfig is optional: an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL      string `envconfig:"RABBITMQ_URL" default:""`
	Exchange string `envconfig:"RABBITMQ_EXCHANGE" default:"video.events"`
}

// Normalize lower-cases the allowed content types and ensures extension
// values carry a leading dot.
func (c *UploadConfig) Normalize() {
	for i, t := range c.AllowedTypes {
		c.AllowedTypes[i] = strings.ToLower(strings.TrimSpace(t))
	}
	c.RequiredExtension = normalizeExt(c.RequiredExtension)
	c.ForcedExtension = normalizeExt(c.ForcedExtension)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Upload.Normalize()
	return &cfg, nil
}
