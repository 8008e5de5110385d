// File: palco/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"palco/config"
	"palco/cron"
	"palco/handlers"
	"palco/middleware"
	"palco/routes"
	"palco/services/approval"
	"palco/services/schedule"
	"palco/services/selection"
	"palco/utils"
	"palco/venueapi"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Upstream venue/event API client.
	apiClient := venueapi.NewClient(
		config.AppConfig.VenueAPIBaseURL,
		config.AppConfig.VenueAPIToken,
		venueapi.DefaultHTTPClient(),
	)

	// Per-manager ledger engines with the Redis fallback cache.
	fallbackCache := schedule.NewRedisFallbackCache(utils.GetCacheClient())
	registry := schedule.NewRegistry(apiClient, fallbackCache, config.PollInterval(), logger)

	// Services.
	resolver := &handlers.SlotResolver{API: apiClient, Registry: registry}
	selectionService := selection.NewSelectionService(resolver, utils.SelectionSessionTTL)

	queueClient := cron.NewQueueClient()
	defer queueClient.Close()

	bridge := &approval.Bridge{
		API:      apiClient,
		Registry: registry,
		Queue:    queueClient,
		Logger:   logger,
	}
	cron.InitBlockWorker(bridge)

	// Handlers.
	venueHandler := handlers.NewVenueHandler(apiClient)
	slotHandler := handlers.NewSlotHandler(resolver)
	scheduleHandler := handlers.NewScheduleHandler(registry)
	selectionHandler := handlers.NewSelectionHandler(selectionService)
	approvalHandler := handlers.NewApprovalHandler(bridge)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ListVenuesHandler: venueHandler.ListVenuesHandler,
		DaySlotsHandler:   slotHandler.DaySlotsHandler,

		SelectVenueHandler:          scheduleHandler.SelectVenueHandler,
		ForegroundHandler:           scheduleHandler.ForegroundHandler,
		ToggleSlotHandler:           scheduleHandler.ToggleSlotHandler,
		BlockedSlotsHandler:         scheduleHandler.BlockedSlotsHandler,
		BlockedSlotsDetailedHandler: scheduleHandler.BlockedSlotsDetailedHandler,
		UnblockByIDHandler:          scheduleHandler.UnblockByIDHandler,
		ResetConfigurationHandler:   scheduleHandler.ResetConfigurationHandler,

		BeginSelectionHandler:  selectionHandler.BeginSelectionHandler,
		PickSlotHandler:        selectionHandler.PickSlotHandler,
		GetSelectionHandler:    selectionHandler.GetSelectionHandler,
		CancelSelectionHandler: selectionHandler.CancelSelectionHandler,
		SubmitSelectionHandler: selectionHandler.SubmitSelectionHandler,

		ApproveRequestHandler: approvalHandler.ApproveRequestHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	registry.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
