package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"talent-utils/internal/api/routes"
	"talent-utils/internal/background"
	"talent-utils/internal/cache"
	"talent-utils/internal/config"
	"talent-utils/internal/extractor"
	"talent-utils/internal/hrclient"
	"talent-utils/internal/logging"
	"talent-utils/internal/lookup"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Talent Utils", map[string]interface{}{})

	// Initialize extraction manager
	extractorMgr := extractor.NewManager(cfg)
	if err := extractorMgr.Start(); err != nil {
		logger.Fatal("Failed to start extraction manager", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize suggestion cache
	store := cache.NewRedisStore(cfg)
	defer store.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	if err := store.IsHealthy(pingCtx); err != nil {
		logger.Warn("Redis is unreachable - staged suggestions will fail until it recovers", map[string]interface{}{
			"error": err.Error(),
		})
	}
	pingCancel()

	// Initialize HR backend client and lookup snapshot
	hrClient := hrclient.NewClient(cfg)
	lookups := lookup.NewStore(cfg, hrClient)

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := lookups.Start(startCtx); err != nil {
		logger.Fatal("Failed to start lookup store", map[string]interface{}{
			"error": err.Error(),
		})
	}
	startCancel()

	// Initialize background task manager
	logger.Info("Initializing background task manager", map[string]interface{}{})
	taskManager := background.NewTaskManager(cfg)
	ctx := context.Background()
	if err := taskManager.Start(ctx); err != nil {
		logger.Fatal("Failed to start task manager", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, extractorMgr, taskManager, store, lookups, hrClient)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...", map[string]interface{}{})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop task manager first so in-flight extractions can finish
		logger.Info("Stopping background task manager...", map[string]interface{}{})
		if err := taskManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping task manager", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Stopping lookup store...", map[string]interface{}{})
		lookups.Stop()

		logger.Info("Stopping extraction manager...", map[string]interface{}{})
		if err := extractorMgr.Stop(); err != nil {
			logger.Error("Error stopping extraction manager", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Stopping HTTP server...", map[string]interface{}{})
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete", map[string]interface{}{})
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{
		"address": address,
	})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
