// Employee Management API server.
//
// @title           Employee Management API
// @version         1.0
// @description     REST API for managing employees: CRUD, search, statistics and exports.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ems-platform/employee-api/internal/api"
	"github.com/ems-platform/employee-api/internal/core/service"
	"github.com/ems-platform/employee-api/internal/infrastructure/config"
	"github.com/ems-platform/employee-api/internal/infrastructure/db/postgres"
	redisdb "github.com/ems-platform/employee-api/internal/infrastructure/db/redis"
	"github.com/ems-platform/employee-api/internal/infrastructure/seed"
	"github.com/ems-platform/employee-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.Init(logger.Options{Service: "employee-api"})
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "employee-api",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- PostgreSQL ---
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to postgres")
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect to redis")
	}
	defer rdb.Close()

	// --- Repositories and services ---
	employeeRepo := postgres.NewEmployeeRepository(db)
	userRepo := postgres.NewUserRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	employeeService := service.NewEmployeeService(employeeRepo, log)
	exportService := service.NewExportService(employeeRepo, log)
	authService := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, 24*time.Hour, log)

	// --- Bootstrap seeding ---
	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, userRepo, employeeRepo, cfg.Seed, log); err != nil {
			log.Fatal().Err(err).Msg("seed initial data")
		}
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Employees: employeeService,
		Exports:   exportService,
		Auth:      authService,
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}
	log.Info().Msg("server stopped")
}
