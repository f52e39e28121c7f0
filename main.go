package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/controllers"
	"salonhub-backend/metrics"
	"salonhub-backend/routes"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogComponent)
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	if err := config.Migrate(db, logger); err != nil {
		logger.Fatal("migrate database", zap.Error(err))
	}

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }
	bookingMetrics := metrics.NewBooking(prometheus.DefaultRegisterer)

	var reminders *services.ReminderService
	if cfg.TwilioConfigured() {
		sender := services.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.TwilioWhatsAppNumber)
		reminders = services.NewReminderService(db, sender, logger.Named("reminders"), bookingMetrics, now)
		if cfg.RemindersEnabled {
			if err := reminders.StartScheduler(cfg.ReminderSchedule, loc); err != nil {
				logger.Fatal("start reminder scheduler", zap.Error(err))
			}
			defer reminders.StopScheduler()
		}
	} else if cfg.RemindersEnabled {
		logger.Warn("reminders enabled but Twilio credentials are missing")
	}

	gin.SetMode(gin.ReleaseMode)
	deps := controllers.Deps{
		DB:      db,
		Logger:  logger,
		Tokens:  utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiryHours),
		Metrics: bookingMetrics,
		Now:     now,
	}
	r := routes.SetupRouter(deps, routes.Options{
		CORSOrigins:          cfg.CORSOrigins,
		SlowRequestThreshold: cfg.SlowRequestThreshold,
		Reminders:            reminders,
	})
	printRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
