package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Lutefd/frankfurter-service/internal/cache"
	"github.com/Lutefd/frankfurter-service/internal/commons"
	"github.com/Lutefd/frankfurter-service/internal/frankfurter"
	"github.com/Lutefd/frankfurter-service/internal/logger"
	"github.com/Lutefd/frankfurter-service/internal/repository"
	"github.com/Lutefd/frankfurter-service/internal/worker"
	"github.com/joho/godotenv"
)

var errMissingSharedCache = errors.New("REDIS_ADDR is not set, the warmer needs the shared cache")

type dependencies struct {
	cache        cache.Cache
	logRepo      repository.LogRepository
	cacheWarmer  CacheWarmer
	partitionMgr PartitionManager
}

type CacheWarmer interface {
	Start(ctx context.Context)
}

type PartitionManager interface {
	Start(ctx context.Context) error
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	config, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if len(config.WarmBases) == 0 {
		log.Fatalf("WARM_BASES is not set, nothing to warm")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := initDependencies(ctx, config)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- runWorker(ctx, deps)
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Worker failed: %v", err)
		}
	case <-signalChan:
		log.Println("Shutdown signal received, initiating graceful shutdown...")
		cancel()

		select {
		case <-errChan:
			log.Println("Worker shut down gracefully")
		case <-time.After(30 * time.Second):
			log.Println("Shutdown timed out")
		}
	}
}

func initDependencies(ctx context.Context, config commons.Config) (*dependencies, error) {
	// A process-local cache would be invisible to the API processes.
	if config.RedisAddr == "" {
		return nil, errMissingSharedCache
	}
	rateCache, err := cache.NewRedisCache(config.RedisAddr, config.RedisPass)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	adapter := frankfurter.NewService(
		frankfurter.WithHostname(config.Hostname),
		frankfurter.WithSymbols(config.Symbols...),
		frankfurter.WithMulticonversion(config.Multiconversion),
		frankfurter.WithCache(rateCache),
		frankfurter.WithCacheTTL(config.CacheTTL),
	)

	deps := &dependencies{
		cache:       rateCache,
		cacheWarmer: worker.NewCacheWarmer(adapter, config.WarmBases, config.WarmInterval),
	}

	if config.PostgresConn != "" {
		logRepo, err := repository.NewPostgresLogRepository(config.PostgresConn, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize log repository: %w", err)
		}
		if err := logRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize log schema: %w", err)
		}
		deps.logRepo = logRepo
		deps.partitionMgr = logger.NewPartitionManager(logRepo)
	}

	return deps, nil
}

func runWorker(ctx context.Context, deps *dependencies) error {
	if deps.logRepo != nil {
		logger.InitLogger(deps.logRepo)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		if deps.partitionMgr != nil {
			if err := deps.partitionMgr.Start(ctx); err != nil {
				errChan <- fmt.Errorf("failed to start partition manager: %w", err)
				return
			}
		}

		deps.cacheWarmer.Start(ctx)
		log.Println("Worker shutting down...")
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	defer func() {
		if err := deps.cache.Close(); err != nil {
			log.Printf("Error closing cache: %v", err)
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down logger: %v", err)
		}
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
