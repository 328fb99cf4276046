package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostelhub/internal/campus"
	"hostelhub/internal/config"
	"hostelhub/internal/handler"
	"hostelhub/internal/logging"
	"hostelhub/internal/repository"
	"hostelhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("HostelHub API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()

	repo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer repo.Close()

	wishlistStore, err := openWishlist(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open wishlist store", zap.Error(err))
	}
	defer wishlistStore.Close()

	// Initialize services
	dir := campus.Default()
	validator := service.NewValidator(dir)
	wishlist := service.NewWishlistService(repo, wishlistStore)

	router := handler.NewRouter(handler.Deps{
		Listings: service.NewListingService(
			repo,
			service.NewFilter(dir),
			validator,
			logger,
			cfg.Search.DefaultLimit,
			cfg.Search.MaxLimit,
		),
		Signup:    service.NewSignupService(repo, validator, logger),
		Bookings:  service.NewBookingService(repo, validator, logger),
		Reviews:   service.NewReviewService(repo, validator, logger),
		Wishlist:  wishlist,
		Dashboard: service.NewDashboardService(repo, wishlist),
		Directory: dir,
		Logger:    logger,
		Build: handler.BuildInfo{
			Version:   Version,
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		},
		CORS: handler.CORSConfig{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: cfg.Server.AllowedMethods,
			AllowedHeaders: cfg.Server.AllowedHeaders,
		},
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

// openRepository connects the configured storage backend and loads seed data
func openRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Repository, error) {
	var seed *repository.Seed
	if cfg.Storage.SeedOnStart {
		var err error
		if seed, err = repository.LoadSeed(cfg.Storage.SeedFile); err != nil {
			return nil, err
		}
	}

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		if seed != nil {
			if err := repo.Seed(ctx, seed); err != nil {
				repo.Close()
				return nil, err
			}
		}
		logger.Info("Connected to PostgreSQL database")
		return repo, nil

	default:
		if seed == nil {
			logger.Info("Using empty in-memory store")
			return repository.NewMemoryRepository(), nil
		}
		logger.Info("Using seeded in-memory store",
			zap.Int("listings", len(seed.Listings)),
			zap.Int("users", len(seed.Users)),
		)
		return repository.NewSeededMemoryRepository(seed), nil
	}
}

// openWishlist connects the configured wishlist backend
func openWishlist(cfg *config.Config, logger *zap.Logger) (repository.WishlistStore, error) {
	if cfg.Storage.WishlistBackend == config.BackendRedis {
		store, err := repository.NewRedisWishlist(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		logger.Info("Connected to Redis wishlist store", zap.String("addr", cfg.Redis.Address))
		return store, nil
	}
	return repository.NewMemoryWishlist(), nil
}
