package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayhub/config"
	"stayhub/cron"
	"stayhub/database"
	"stayhub/handlers"
	"stayhub/middleware"
	"stayhub/routes"
	"stayhub/services/tasks"
	"stayhub/utils"

	bookingRepo "stayhub/database/repository/booking"
	listingRepo "stayhub/database/repository/listing"
	userRepoPkg "stayhub/database/repository/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Repositories.
	users := userRepoPkg.NewMongoUserRepo()
	listings := listingRepo.NewMongoListingRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	ensureIndexes(logger, users, listings, bookings)

	// Deferred work: check-in reminders ride the Redis task queue.
	reminders := tasks.NewReminderClient()
	defer reminders.Close()
	cron.InitReminderWorker()

	handlers.InitServices(users, listings, bookings, reminders)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	routes.RegisterRoutes(router, users)

	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Error("mongo disconnect failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func ensureIndexes(logger *zap.Logger, users *userRepoPkg.MongoUserRepo, listings *listingRepo.MongoListingRepo, bookings *bookingRepo.MongoBookingRepo) {
	if err := users.EnsureIndexes(); err != nil {
		logger.Fatal("failed to create user indexes", zap.Error(err))
	}
	if err := listings.EnsureIndexes(); err != nil {
		logger.Fatal("failed to create listing indexes", zap.Error(err))
	}
	if err := bookings.EnsureIndexes(); err != nil {
		logger.Fatal("failed to create booking indexes", zap.Error(err))
	}
}
