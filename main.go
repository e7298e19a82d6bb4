package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicblocks/config"
	"clinicblocks/cron"
	"clinicblocks/database"
	blocksRepo "clinicblocks/database/repository/blocks"
	"clinicblocks/handlers"
	"clinicblocks/middleware"
	"clinicblocks/routes"
	"clinicblocks/services/availability"
	"clinicblocks/services/blocks"
	"clinicblocks/services/notification"
	"clinicblocks/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// newBlockRepository selects the block store backend from BLOCK_STORE.
func newBlockRepository(ctx context.Context, logger *zap.Logger) blocksRepo.BlockRepository {
	switch config.AppConfig.BlockStore {
	case "memory":
		return blocksRepo.NewMemoryBlockRepo()
	case "redis":
		return blocksRepo.NewRedisBlockRepo(ctx, utils.GetCacheClient())
	case "mongo":
		database.InitDB()
		repo := blocksRepo.NewMongoBlockRepo(database.Database())
		if err := blocksRepo.EnsureIndexes(ctx, repo); err != nil {
			logger.Fatal("main: failed to create block indexes", zap.Error(err))
		}
		return repo
	case "file", "":
		return blocksRepo.NewFileBlockRepo(ctx, config.AppConfig.BlockStoreFile)
	default:
		logger.Fatal("main: unknown BLOCK_STORE", zap.String("blockStore", config.AppConfig.BlockStore))
		return nil
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if err := utils.CheckJWTSecret(); err != nil {
		logger.Fatal("main: refusing to start without a JWT secret", zap.Error(err))
	}
	if err := utils.SetVenueLocation(config.AppConfig.VenueTimezone); err != nil {
		logger.Fatal("main: invalid VENUE_TIMEZONE", zap.Error(err))
	}

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	var redisClients []*redis.Client
	if config.UsesRedis() {
		redisClients = append(redisClients, utils.GetCacheClient())
	}

	// repositories.
	blockRepo := newBlockRepository(rootCtx, logger)

	// notifications.
	var (
		publisher   notification.BlockEventPublisher = notification.NoopPublisher{}
		feed        notification.NotificationFeed
		queueClient *asynq.Client
		worker      *asynq.Server
	)
	if config.AppConfig.NotificationsEnabled {
		redisClients = append(redisClients, utils.GetQueueClient())
		queueClient = asynq.NewClient(utils.QueueRedisOpt())
		asynqPublisher, err := notification.NewAsynqPublisher(queueClient)
		if err != nil {
			logger.Fatal("main: failed to initialize notification publisher", zap.Error(err))
		}
		publisher = asynqPublisher
		feed = notification.NewRedisNotificationFeed(utils.GetCacheClient())
		worker = cron.InitBlockEventWorker(feed)
	}

	// services.
	resolver := availability.NewResolver(blockRepo, nil)
	blockService := blocks.NewBlockService(blockRepo, publisher)

	utils.StartHealthMonitor(rootCtx, config.AppConfig.BlockStore, redisClients, database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewBlockHandler(blockService, resolver),
		handlers.NewAvailabilityHandler(resolver),
		handlers.NewNotificationHandler(feed),
	)
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("blockStore", config.AppConfig.BlockStore),
		zap.Bool("notifications", config.AppConfig.NotificationsEnabled))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	stopBackground()
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	database.CloseDB(ctx)

	logger.Info("main: server stopped gracefully")
}
