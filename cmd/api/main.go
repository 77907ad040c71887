package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/otto-sketch/video-player-1/internal/api/handler"
	"github.com/otto-sketch/video-player-1/internal/api/middleware"
	"github.com/otto-sketch/video-player-1/internal/config"
	"github.com/otto-sketch/video-player-1/internal/domain/repository"
	"github.com/otto-sketch/video-player-1/internal/infrastructure/cache"
	"github.com/otto-sketch/video-player-1/internal/infrastructure/memstore"
	"github.com/otto-sketch/video-player-1/internal/infrastructure/queue"
	"github.com/otto-sketch/video-player-1/internal/infrastructure/storage"
	"github.com/otto-sketch/video-player-1/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := storage.NewClient(initCtx, storage.ClientConfig{
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		UseSSL:        cfg.Storage.UseSSL,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	var events repository.EventPublisher = queue.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		qcfg := queue.DefaultClientConfig(cfg.RabbitMQ.URL)
		qcfg.Exchange = cfg.RabbitMQ.Exchange
		client, err := queue.NewClient(initCtx, qcfg)
		if err != nil {
			return fmt.Errorf("failed to init event publisher: %w", err)
		}
		defer client.Close()
		events = client
	}

	catalog := memstore.NewCatalog()

	svc := usecase.NewVideoService(catalog, store, events, usecase.VideoServiceConfig{
		Policy:    usecase.PolicyFromConfig(cfg.Upload),
		KeyPrefix: cfg.Storage.KeyPrefix,
	})

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		svc = usecase.NewCachedVideoService(
			svc,
			cache.NewRedisVideoCache(redisClient),
			usecase.CachedVideoServiceConfig{CacheTTL: cfg.Redis.CacheTTL},
		)
		logger.Info("record cache enabled", slog.String("redis_addr", cfg.Redis.Addr))
	}

	r := setupRouter(logger, cfg, svc, store)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.Int("port", cfg.Server.Port),
			slog.String("bucket", cfg.Storage.Bucket),
			slog.String("region", cfg.Storage.Region),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(logger *slog.Logger, cfg *config.Config, svc usecase.VideoService, store *storage.Client) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	health := handler.NewHealthHandler(store.Bucket(), store.Region())
	videos := handler.NewVideoHandler(svc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.Health)
		r.Get("/videos", videos.List)
		r.Get("/videos/{id}", videos.Get)
		r.Post("/upload", videos.Upload)
		r.Delete("/videos/{id}", videos.Delete)
		r.Delete("/videos", videos.Clear)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(handler.NotFound)

	return r
}
