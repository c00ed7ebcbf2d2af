package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cookmate/cookmate/backend/config"
	"github.com/cookmate/cookmate/backend/internal/api"
	"github.com/cookmate/cookmate/backend/internal/database"
	"github.com/cookmate/cookmate/backend/internal/logging"
	"github.com/cookmate/cookmate/backend/internal/middleware"
	"github.com/cookmate/cookmate/backend/internal/server"
	"github.com/cookmate/cookmate/backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cookmate: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.Environment.Local())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	catalogStore, closeStore, err := database.OpenCatalogStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open catalog store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close catalog store", zap.Error(err))
		}
	}()

	// Redis is optional. Without it recipe creation is not rate limited and
	// sign-out cannot revoke tokens.
	var (
		revoker service.TokenRevoker
		limiter *middleware.RateLimiter
	)
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Warn("redis unavailable, continuing without rate limiting and token revocation", zap.Error(err))
		} else {
			defer client.Close()
			revoker = service.NewRedisTokenRevoker(client)
			limiter = middleware.NewRecipeCreationRateLimiter(client, cfg.RecipeCreateLimit, log)
		}
	}

	var blobs service.BlobStore
	if cfg.S3BucketName != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to configure S3: %w", err)
		}
		blobs = service.NewS3BlobStore(s3cfg)
	} else {
		log.Info("S3_BUCKET_NAME not set, recipe image uploads are disabled")
	}

	recipes := service.NewRecipeService(catalogStore, blobs, log)
	srv := server.New(cfg, api.Dependencies{
		Identity:      service.NewAuthService(catalogStore, cfg.JWTSecret, cfg.TokenTTL, revoker, log),
		Recipes:       recipes,
		Favorites:     service.NewFavoriteService(catalogStore, recipes, log),
		RecipeLimiter: limiter,
	}, log)

	log.Info("starting cookmate api",
		zap.String("environment", string(cfg.Environment)),
		zap.String("store", cfg.StoreDriver))
	return srv.Run(ctx)
}
