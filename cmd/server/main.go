package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	echoapi "go.pilab.hu/ssoadmin/api/echo"
	"go.pilab.hu/ssoadmin/config"
	"go.pilab.hu/ssoadmin/internal/auth"
	"go.pilab.hu/ssoadmin/internal/metrics"
	"go.pilab.hu/ssoadmin/mongodb"
	"go.pilab.hu/ssoadmin/services"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	initLogger(cfg)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("mongo_db_name", cfg.MongoDBName).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ssoadmin server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("Error closing MongoDB connection")
		}
	}()
	db := store.Database()

	// Repositories
	clientRepo, err := mongodb.NewClientRepository(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ClientRepository")
	}
	userRepo, err := mongodb.NewUserRepository(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize UserRepository")
	}
	authzRepo := mongodb.NewAuthorizationRepository(db)

	// Services
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	clientService := services.NewClientService(clientRepo, passwordHasher)
	userService := services.NewUserService(userRepo, passwordHasher)
	cleanupService := services.NewCleanupService(authzRepo)

	metrics.InitCustomMetrics(prometheus.DefaultRegisterer)

	if err := clientService.EnsureDefaultClient(ctx, services.DefaultClientConfig{
		Create:         cfg.DefaultClientCreate,
		ClientID:       cfg.DefaultClientID,
		ClientSecret:   cfg.DefaultClientSecret,
		Scope:          cfg.DefaultClientScope,
		AccessTokenTTL: time.Duration(cfg.DefaultClientTokenTTLSec) * time.Second,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap default client")
	}

	// Retention sweeper, independent of request handling.
	go cleanupService.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	echoapi.NewAdminAPI(clientService, userService).RegisterRoutes(e)

	go func() {
		if err := e.Start(":" + cfg.HTTPPort); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server terminated unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}

func initLogger(cfg *config.ServerConfig) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
		log.Warn().Str("configured_log_level", cfg.LogLevel).
			Msg("Invalid LOG_LEVEL configured, defaulting to 'info'")
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	// log.Ctx falls back to this logger on contexts without one attached.
	zerolog.DefaultContextLogger = &log.Logger
}
