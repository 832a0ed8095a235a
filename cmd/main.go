package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/sports-day-system/config"
	"github.com/Dosada05/sports-day-system/db"
	"github.com/Dosada05/sports-day-system/handlers"
	"github.com/Dosada05/sports-day-system/live"
	"github.com/Dosada05/sports-day-system/repositories"
	api "github.com/Dosada05/sports-day-system/routes"
	"github.com/Dosada05/sports-day-system/services"
	"github.com/Dosada05/sports-day-system/storage"
	_ "github.com/lib/pq"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	// Object storage is optional: without it, logo uploads are rejected but
	// everything else works.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize object storage", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("object storage initialized", slog.String("bucket", cfg.R2BucketName))
	} else {
		logger.Warn("object storage not configured, logo uploads disabled")
	}

	wsHub := live.NewHub()
	go wsHub.Run()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	houseRepo := repositories.NewPostgresHouseRepository(dbConn)
	sportRepo := repositories.NewPostgresSportRepository(dbConn)
	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	enrollmentRepo := repositories.NewPostgresEnrollmentRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)

	emailService := services.NewEmailService(cfg)
	authService := services.NewAuthService(userRepo)
	houseService := services.NewHouseService(houseRepo, userRepo, uploader)
	sportService := services.NewSportService(sportRepo)
	eventService := services.NewEventService(eventRepo, sportRepo)
	participantService := services.NewParticipantService(participantRepo, houseRepo)
	enrollmentService := services.NewEnrollmentService(enrollmentRepo, eventRepo, participantRepo)
	scoringService := services.NewScoringService(
		dbConn,
		eventRepo,
		enrollmentRepo,
		resultRepo,
		houseRepo,
		wsHub,
		emailService,
	)
	standingsService := services.NewStandingsService(houseRepo, eventRepo, resultRepo, participantRepo)
	guardianService := services.NewGuardianService(participantRepo, enrollmentRepo, resultRepo)
	dashboardService := services.NewDashboardService(houseRepo, participantRepo, eventRepo, resultRepo)

	router := api.SetupRoutes(api.Handlers{
		Auth:        handlers.NewAuthHandler(authService, emailService, cfg.JWTSecretKey),
		House:       handlers.NewHouseHandler(houseService),
		Sport:       handlers.NewSportHandler(sportService),
		Event:       handlers.NewEventHandler(eventService),
		Participant: handlers.NewParticipantHandler(participantService),
		Enrollment:  handlers.NewEnrollmentHandler(enrollmentService),
		Scoring:     handlers.NewScoringHandler(scoringService),
		Standings:   handlers.NewStandingsHandler(standingsService),
		Guardian:    handlers.NewGuardianHandler(guardianService),
		Dashboard:   handlers.NewDashboardHandler(dashboardService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, eventService),
	}, cfg.JWTSecretKey)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	}
}
