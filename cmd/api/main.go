package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mvcarvalho/flixcatalog-backend/api/controllers"
	"github.com/mvcarvalho/flixcatalog-backend/api/routes"
	"github.com/mvcarvalho/flixcatalog-backend/internal/castmember"
	"github.com/mvcarvalho/flixcatalog-backend/internal/category"
	"github.com/mvcarvalho/flixcatalog-backend/internal/genre"
	"github.com/mvcarvalho/flixcatalog-backend/internal/video"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/config"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/db"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/logger"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/metrics"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/migrate"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/pubsub"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/redis"
	"github.com/mvcarvalho/flixcatalog-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

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

	catalogMetrics := metrics.NewCatalogMetrics(prometheus.DefaultRegisterer)

	categoryService, err := category.NewService(category.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}
	genreService, err := genre.NewService(genre.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create genre service", err)
		os.Exit(1)
	}
	castMemberService, err := castmember.NewService(castmember.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cast member service", err)
		os.Exit(1)
	}

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
		Metrics:     catalogMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create video service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg,
			map[string]controllers.Pinger{
				"db":     dbClient,
				"redis":  redisClient,
				"gcs":    gcsClient,
				"pubsub": pubsubClient,
			},
			routes.Services{
				Categories:  categoryService,
				Genres:      genreService,
				CastMembers: castMemberService,
				Videos:      videoService,
			},
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-shutdownCtx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
