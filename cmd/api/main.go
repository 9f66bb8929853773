package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lutefd/frankfurter-service/internal/cache"
	"github.com/Lutefd/frankfurter-service/internal/commons"
	"github.com/Lutefd/frankfurter-service/internal/frankfurter"
	"github.com/Lutefd/frankfurter-service/internal/logger"
	"github.com/Lutefd/frankfurter-service/internal/repository"
	"github.com/Lutefd/frankfurter-service/internal/server"
	"github.com/Lutefd/frankfurter-service/internal/service"
	"github.com/joho/godotenv"
)

const logShutdownTimeout = 5 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	config, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logRepo, err := initLogRepository(ctx, config)
	if err != nil {
		log.Fatalf("Failed to initialize log repository: %v", err)
	}
	if logRepo != nil {
		logger.InitLogger(logRepo)
		if err := logger.NewPartitionManager(logRepo).Start(ctx); err != nil {
			log.Fatalf("Failed to start partition manager: %v", err)
		}
	}

	rateCache, err := initCache(config)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer rateCache.Close()

	adapter := frankfurter.NewService(
		frankfurter.WithHostname(config.Hostname),
		frankfurter.WithSymbols(config.Symbols...),
		frankfurter.WithMulticonversion(config.Multiconversion),
		frankfurter.WithCache(rateCache),
		frankfurter.WithCacheTTL(config.CacheTTL),
	)
	logger.Infof("using Frankfurter API at %s", adapter.Hostname())

	srv := server.NewServer(config, service.NewCurrencyService(adapter))
	if err := srv.Start(ctx); err != nil {
		logger.Errorf("server stopped: %v", err)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), logShutdownTimeout)
	defer cancelShutdown()
	if err := logger.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down logger: %v", err)
	}
}

// initCache prefers the shared Redis cache and falls back to a process-local
// one when no Redis address is configured.
func initCache(config commons.Config) (cache.Cache, error) {
	if config.RedisAddr == "" {
		return cache.NewMemoryCache(), nil
	}
	redisCache, err := cache.NewRedisCache(config.RedisAddr, config.RedisPass)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return redisCache, nil
}

func initLogRepository(ctx context.Context, config commons.Config) (*repository.PostgresLogRepository, error) {
	if config.PostgresConn == "" {
		return nil, nil
	}
	logRepo, err := repository.NewPostgresLogRepository(config.PostgresConn, nil)
	if err != nil {
		return nil, err
	}
	if err := logRepo.EnsureSchema(ctx); err != nil {
		logRepo.Close()
		return nil, err
	}
	return logRepo, nil
}
