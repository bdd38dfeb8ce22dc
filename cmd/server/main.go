package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/lumenedu/studyhub/configs"
	"github.com/lumenedu/studyhub/internal/application/services"
	"github.com/lumenedu/studyhub/internal/core/ports"
	"github.com/lumenedu/studyhub/internal/infrastructure/db"
	"github.com/lumenedu/studyhub/internal/infrastructure/email"
	"github.com/lumenedu/studyhub/internal/infrastructure/health"
	"github.com/lumenedu/studyhub/internal/infrastructure/httpserver"
	"github.com/lumenedu/studyhub/internal/infrastructure/redis"
	"github.com/lumenedu/studyhub/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting StudyHub auth service...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Sessions live in Redis behind the generic cache
	redisCache := redis.NewRedisCache(redisClient, "studyhub")
	sessionRepo := repositories.NewSessionRedisRepository(redisCache, logger)

	// Initialize db repository implementations
	userRepo := repositories.NewUserRepository(database, logger)
	tokenRepo := repositories.NewTokenRepository(database, logger)

	emailService, err := email.NewEmailService(&cfg.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	// Wire services with their repository dependencies
	tokenService := services.NewTokenService(tokenRepo, &cfg.Token, logger)
	sessionManager := services.NewSessionManager(sessionRepo, &cfg.Session, logger)
	userService := services.NewUserService(userRepo, logger)
	authService := services.NewAuthService(userRepo, tokenService, sessionManager, emailService, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
		CookieName:   cfg.Session.CookieName,
		CookieTTL:    cfg.Session.TTL,
		CookieSecure: cfg.Session.CookieSecure,
	}

	deps := httpserver.ServerDeps{
		AuthService:    authService,
		UserService:    userService,
		SessionManager: sessionManager,
		HealthCheckers: hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
