package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Mykola-art/shopsTestTask/api/swagger"
	"github.com/Mykola-art/shopsTestTask/internal/availability"
	"github.com/Mykola-art/shopsTestTask/internal/handler"
	internalmiddleware "github.com/Mykola-art/shopsTestTask/internal/middleware"
	"github.com/Mykola-art/shopsTestTask/internal/repository"
	"github.com/Mykola-art/shopsTestTask/internal/service"
	"github.com/Mykola-art/shopsTestTask/pkg/cache"
	"github.com/Mykola-art/shopsTestTask/pkg/config"
	"github.com/Mykola-art/shopsTestTask/pkg/database"
	"github.com/Mykola-art/shopsTestTask/pkg/jobs"
	"github.com/Mykola-art/shopsTestTask/pkg/logger"
	corsmiddleware "github.com/Mykola-art/shopsTestTask/pkg/middleware/cors"
	reqidmiddleware "github.com/Mykola-art/shopsTestTask/pkg/middleware/requestid"
)

const shutdownTimeout = 15 * time.Second

// @title Shops API
// @version 1.0.0
// @description Stores, products and orders with opening hours evaluated across time zones.
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancelMigrate()
	if err != nil {
		logr.Fatal("failed to migrate schema", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, listing cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
		}
	}

	zones, err := availability.NewSystemZones(append([]string{cfg.Availability.DefaultTimezone}, cfg.Availability.PreloadZones...)...)
	if err != nil {
		logr.Fatal("failed to load time zones", zap.Error(err))
	}
	var clock func() time.Time
	if !cfg.Availability.ReferenceWeek.IsZero() {
		clock = availability.FixedWeek(cfg.Availability.ReferenceWeek)
	}
	evaluator := availability.NewEvaluator(availability.NewConverter(zones, clock))
	validate := service.NewValidator(zones)
	opts := service.AvailabilityOptions{
		Workers:         cfg.Availability.FilterWorkers,
		DefaultTimezone: cfg.Availability.DefaultTimezone,
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// A typed nil *redis.Client must not reach the UniversalClient parameter.
	var cacheClient redis.UniversalClient
	if redisClient != nil {
		cacheClient = redisClient
	}
	cacheRepo := repository.NewCacheRepository(cacheClient, "shops", logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cacheClient != nil)

	invalidator := service.NewCacheInvalidator(cacheSvc, jobs.QueueConfig{
		Workers:    cfg.Invalidation.Workers,
		BufferSize: cfg.Invalidation.Buffer,
		MaxRetries: cfg.Invalidation.Retries,
		RetryDelay: time.Second,
		Logger:     logr,
	})
	rootCtx, stopRoot := context.WithCancel(context.Background())
	defer stopRoot()
	invalidator.Start(rootCtx)
	defer invalidator.Stop()

	storeSvc := service.NewStoreService(storeRepo, evaluator, cacheSvc, invalidator, metricsSvc, validate, logr, opts)
	productSvc := service.NewProductService(productRepo, storeRepo, evaluator, cacheSvc, invalidator, metricsSvc, validate, logr, opts)
	orderSvc := service.NewOrderService(orderRepo, productRepo, evaluator, metricsSvc, validate, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(internalmiddleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Stores:         handler.NewStoreHandler(storeSvc),
		Products:       handler.NewProductHandler(productSvc),
		Orders:         handler.NewOrderHandler(orderSvc),
		Metrics:        metricsHandler,
		ExportsEnabled: cfg.Exports.Enabled,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "cache", cacheSvc.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("forced shutdown", zap.Error(err))
	}
}
