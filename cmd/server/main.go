package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"condohub/server/config"
	"condohub/server/internal/api"
	"condohub/server/internal/database"
	"condohub/server/internal/inventory"
	"condohub/server/internal/logging"
	"condohub/server/internal/processor"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.New("info", "json").WithError(err).Fatal("Failed to load configuration")
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	// Initialize database
	logger.Infof("Using %s database", cfg.Database.Driver)
	db, err := database.NewDatabase(cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	writer := processor.NewBatchWriter(db, cfg, logger)
	service := inventory.NewService(db, writer, logger)
	handler := api.NewHandler(db, service, logger)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(cfg.Server, logger)
	api.SetupRoutes(router, handler, api.HeaderResolver{})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
}
