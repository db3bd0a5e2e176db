// Command server runs the employee-management API: token-based session
// lifecycle, project/task CRUD, and realtime task-assignment notifications.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vt221001/employee-management/internal/api"
	"github.com/Vt221001/employee-management/internal/core/service"
	"github.com/Vt221001/employee-management/internal/core/token"
	"github.com/Vt221001/employee-management/internal/infrastructure/config"
	mongodb "github.com/Vt221001/employee-management/internal/infrastructure/db/mongo"
	redisdb "github.com/Vt221001/employee-management/internal/infrastructure/db/redis"
	"github.com/Vt221001/employee-management/internal/infrastructure/queue"
	"github.com/Vt221001/employee-management/internal/realtime"
	"github.com/Vt221001/employee-management/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Core wiring ---
	accessCodec := token.NewCodec(cfg.Auth.AccessTokenSecret, cfg.Auth.AccessTokenTTL)
	refreshCodec := token.NewCodec(cfg.Auth.RefreshTokenSecret, cfg.Auth.RefreshTokenTTL)

	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	throttle := redisdb.NewLoginThrottle(rdb, cfg.Auth.ThrottleMaxFailures, cfg.Auth.ThrottleWindowSec)

	hub := realtime.NewHub(log)
	dispatcher := queue.NewDispatcher(cfg.Realtime.Workers, hub, log)
	dispatcher.Start(ctx)

	sessionService := service.NewSessionService(userRepo, accessCodec, refreshCodec, throttle, log)
	projectService := service.NewProjectService(projectRepo, userRepo, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, userRepo, dispatcher, log)
	statsService := service.NewStatsService(userRepo, projectRepo, taskRepo)

	gateway := realtime.NewGateway(hub, accessCodec, realtime.GatewayConfig{
		OriginPatterns: cfg.Realtime.AllowedOrigins,
	}, log)

	e := api.NewRouter(api.Deps{
		Sessions: sessionService,
		Projects: projectService,
		Tasks:    taskService,
		Stats:    statsService,
		Access:   accessCodec,
		Gateway:  gateway,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	// --- Serve ---
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
}
