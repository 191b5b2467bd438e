package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelorbit/config"
	"travelorbit/cron"
	"travelorbit/handlers"
	"travelorbit/routes"
	"travelorbit/services/collab"
	"travelorbit/services/engine"
	"travelorbit/services/tasks"
	"travelorbit/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
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

	// Collaborator adapters.
	authSvc := collab.NewAuthService(config.AppConfig.AuthServiceURL, logger)
	dealsSvc := collab.NewDealsService(config.AppConfig.DealsServiceURL, logger)
	groupsSvc := collab.NewGroupsService(config.AppConfig.GroupsServiceURL, logger)
	paymentsSvc := collab.NewPaymentsService(config.AppConfig.PaymentsServiceURL, logger)

	var tripPlanSvc collab.TripPlanService
	var feedbackSvc collab.FeedbackService
	if config.AppConfig.TripPlanServiceURL != "" {
		tripPlanSvc = collab.NewTripPlanService(config.AppConfig.TripPlanServiceURL, logger)
		feedbackSvc = collab.NewFeedbackService(config.AppConfig.TripPlanServiceURL, logger)
	} else {
		feedbackSvc = collab.NewLocalFeedbackService(logger)
		local, err := collab.NewGeminiPlannerService(
			config.AppConfig.GeminiAPIKey, utils.GetPlannerCacheClient(), logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize local planner: %v", err)
		}
		tripPlanSvc = local
	}

	// Delayed feedback nudges ride the task queue.
	nudger := tasks.NewScheduler(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer nudger.Close()

	registry := engine.NewRegistry(
		utils.GetSessionCacheClient(),
		utils.GetCorrelateCacheClient(),
		time.Duration(config.AppConfig.SessionIdleTTLMin)*time.Minute,
		logger,
	)

	eng := engine.NewEngine(registry, engine.Services{
		TripPlan: tripPlanSvc,
		Deals:    dealsSvc,
		Auth:     authSvc,
		Groups:   groupsSvc,
		Payments: paymentsSvc,
		Feedback: feedbackSvc,
		Nudger:   nudger,
	}, engine.Options{
		DefaultCountryCode: config.AppConfig.DefaultCountryCode,
		StrictPassengers:   config.AppConfig.StrictPassengerDetails,
		FeedbackNudgeDelay: time.Duration(config.AppConfig.FeedbackNudgeDelayHours) * time.Hour,
	}, logger)

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	registry.StartSweeper(sweeperCtx, time.Minute)

	cron.InitNudgeWorker(eng)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(eng, dealsSvc, groupsSvc)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
