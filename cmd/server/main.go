package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jwlee/aptgap-backend/config"
	"github.com/jwlee/aptgap-backend/internal/app/controller"
	"github.com/jwlee/aptgap-backend/internal/app/repository"
	"github.com/jwlee/aptgap-backend/internal/app/service"
	"github.com/jwlee/aptgap-backend/internal/db"
	"github.com/jwlee/aptgap-backend/internal/router"
	"github.com/jwlee/aptgap-backend/internal/scheduler"
	"github.com/jwlee/aptgap-backend/pkg/logger"
	"github.com/jwlee/aptgap-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		EnableColor: true,
	})

	logger.Info("Starting APTGAP Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
		"timezone":    cfg.Timezone.String(),
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (optional, summary cache)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Failed to connect to Redis, summary cache disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer redis.Close()
		}
	}

	// Initialize repositories
	complexRepo := repository.NewComplexRepository(db.GetDB())
	listingRepo := repository.NewListingRepository(db.GetDB())
	summaryRepo := repository.NewSummaryRepository(db.GetDB())

	// Initialize services
	aggregateService := service.NewAggregateService(listingRepo, summaryRepo, cfg.Timezone)
	importService := service.NewImportService(
		complexRepo,
		listingRepo,
		aggregateService,
		filterConfigFrom(cfg),
		cfg.Timezone,
	)
	listingService := service.NewListingService(complexRepo, listingRepo, summaryRepo, cfg.Timezone)

	// Initialize controllers
	importController := controller.NewImportController(importService)
	listingController := controller.NewListingController(listingService)
	summaryController := controller.NewSummaryController(listingService)

	// Setup router
	r := router.NewRouter(
		importController,
		listingController,
		summaryController,
		cfg,
	)
	engine := r.Setup()

	// Start import scheduler (optional)
	if cfg.Scheduler.Enabled {
		importScheduler := scheduler.NewImportScheduler(importService, cfg)
		if err := importScheduler.Start(); err != nil {
			logger.Fatal("Failed to start import scheduler", err)
		}
		defer importScheduler.Stop()
	}

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

// filterConfigFrom 환경변수 기반 설정을 필터 규칙으로 변환
func filterConfigFrom(cfg *config.Config) service.FilterConfig {
	filterConfig := service.DefaultFilterConfig()
	filterConfig.ExcludeSeango = cfg.Filter.ExcludeSeango
	filterConfig.ExcludeLowFloors = cfg.Filter.ExcludeLowFloors
	filterConfig.MaxPyeong = cfg.Filter.MaxPyeong
	filterConfig.IncludeLargeArea = cfg.Filter.IncludeLargeArea

	if bands := cfg.Filter.AreaBandValues(); len(bands) > 0 {
		filterConfig.AreaBands = filterConfig.AreaBands[:0]
		for _, band := range bands {
			filterConfig.AreaBands = append(filterConfig.AreaBands, service.AreaBand{
				Min: band[0],
				Max: band[1],
			})
		}
	}
	return filterConfig
}
