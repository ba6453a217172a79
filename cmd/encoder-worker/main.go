package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mvcarvalho/flixcatalog-backend/api"
	"github.com/mvcarvalho/flixcatalog-backend/internal/castmember"
	"github.com/mvcarvalho/flixcatalog-backend/internal/category"
	"github.com/mvcarvalho/flixcatalog-backend/internal/genre"
	"github.com/mvcarvalho/flixcatalog-backend/internal/video"
	"github.com/mvcarvalho/flixcatalog-backend/internal/video/consumer"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/config"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/db"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/metrics"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pubsub"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/redis"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "encoder-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "encoder-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap pubsub", err)
		os.Exit(1)
	}
	defer func() {
		if err := pubsubClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing pubsub", err)
		}
	}()

	storage, err := video.NewGCSStorage(gcsClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create storage adapter", err)
		os.Exit(1)
	}
	notifier, err := video.NewPubSubNotifier(pubsubClient.NewMediaEventsPublisher())
	if err != nil {
		logg.Error(context.Background(), "failed to create event notifier", err)
		os.Exit(1)
	}
	videoService, err := video.NewService(video.ServiceParams{
		Repo:        video.NewRepository(dbClient.DB()),
		Categories:  category.NewRepository(dbClient.DB()),
		Genres:      genre.NewRepository(dbClient.DB()),
		CastMembers: castmember.NewRepository(dbClient.DB()),
		Tx:          dbClient,
		Storage:     storage,
		Notifier:    notifier,
		Logger:      logg,
		Metrics:     metrics.NewCatalogMetrics(prometheus.DefaultRegisterer),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create video service", err)
		os.Exit(1)
	}

	worker, err := consumer.New(consumer.Params{
		Videos:       videoService,
		Dedupe:       redisClient,
		Subscription: pubsubClient.EncodedSubscription(),
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create consumer", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Liveness endpoint for the worker deployment.
	go func() {
		if err := http.ListenAndServe(":"+cfg.App.Port, api.NewHandler(cfg)); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "health endpoint stopped", err)
		}
	}()

	ctx = logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"subscription": cfg.PubSub.EncodedSubscription,
	})
	logg.Info(ctx, "starting encoder worker")

	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		logg.Error(ctx, "encoder worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "encoder worker stopped")
}
