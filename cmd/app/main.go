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

	"orderflow/cmd"
	"orderflow/internal/adapters/out/fcm"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/redislock"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("warning: .env not loaded: %v", err)
	}

	configs, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		log.Fatalf("orderflow: %v", err)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, pool, err := postgres.Open(ctx, configs.DSN(), postgres.PoolConfig{MaxConns: configs.DBMaxConns})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	pushSender, err := fcm.NewFromCredentials(ctx, configs.FirebaseProjectID, configs.FirebaseCredentialsFile)
	if err != nil {
		return err
	}

	var locker *redislock.Locker
	if configs.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
		defer func() { _ = redisClient.Close() }()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		locker = redislock.NewLocker(redisClient)
	} else {
		logger.Warn("REDIS_ADDR is not set, order expiry runs without a lock")
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, pushSender, locker, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(ctx); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateEcho()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("port", configs.HTTPPort))
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
