package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotify/config"
	"slotify/cron"
	"slotify/database"
	bookingRepo "slotify/database/repository/booking"
	catalogRepo "slotify/database/repository/catalog"
	scheduleRepo "slotify/database/repository/schedule"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/models"
	"slotify/routes"
	"slotify/services/availability"
	"slotify/services/booking"
	"slotify/utils"
)

func main() {
	// 1. Load configuration and logging.
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Connect external services.
	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// 3. Repositories.
	catalog := catalogRepo.NewMongoCatalogRepo()
	schedule := scheduleRepo.NewMongoScheduleRepo()
	bookings := bookingRepo.NewMongoBookingRepo()

	ctx, cancelIdx := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bookings.EnsureIndexes(ctx); err != nil {
		logger.Fatal("failed to ensure booking indexes", zap.Error(err))
	}
	cancelIdx()

	// 4. Engine and services. The config snapshot is taken once at startup.
	availCfg := models.AvailabilityConfig{
		StepMin:   config.AppConfig.SlotStepMinutes,
		BufferMin: config.AppConfig.BookingBufferMin,
		DayTTL:    time.Duration(config.AppConfig.DayCacheTTLSec) * time.Second,
		MonthTTL:  time.Duration(config.AppConfig.MonthCacheTTLSec) * time.Second,
		Location:  config.TimeLocation(),
	}
	engine := &availability.DefaultAvailabilityEngine{
		Catalog:  catalog,
		Schedule: schedule,
		Bookings: bookings,
		Cache:    availability.NewRedisCacheStore(utils.GetCacheClient()),
		Config:   availCfg,
	}
	reminders := cron.NewAsynqReminderScheduler()
	bookingSvc := &booking.DefaultBookingService{
		Catalog:   catalog,
		Bookings:  bookings,
		Engine:    engine,
		Reminders: reminders,
		Config:    availCfg,
	}

	// 5. Background worker for reminders and the stale-booking sweep.
	cron.InitBookingWorker(bookings)

	// 6. HTTP surface.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware())

	bundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(engine, logger),
		Booking:      handlers.NewBookingHandler(bookingSvc, logger),
		Admin:        handlers.NewAdminHandler(catalog, schedule, logger),
	}
	routes.RegisterRoutes(router, bundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 7. Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error("failed to disconnect mongo", zap.Error(err))
	}
	logger.Info("server exited")
}
