package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-catalog/backend/config"
	"github.com/pageza/recipe-catalog/backend/internal/database"
	"github.com/pageza/recipe-catalog/backend/internal/logging"
	"github.com/pageza/recipe-catalog/backend/internal/middleware"
	"github.com/pageza/recipe-catalog/backend/internal/router"
	"github.com/pageza/recipe-catalog/backend/internal/server"
	"github.com/pageza/recipe-catalog/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.Env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	images, err := newImageStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize image storage")
	}

	deps := router.Deps{
		DB:          db,
		Recipes:     service.NewRecipeService(db),
		Images:      images,
		MaxUploadMB: cfg.MaxUploadMB,
	}

	if cfg.RateLimitEnabled {
		limits := middleware.RateLimitConfig{
			Window: cfg.RateLimitWindow,
			Limit:  cfg.RateLimitLimit,
		}
		client, err := database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable, falling back to per-instance rate limiting")
			deps.RateLimit = middleware.NewLocalRateLimiter(limits).RateLimitMiddleware()
		} else {
			defer client.Close()
			deps.RateLimit = middleware.NewRateLimiter(client, limits).RateLimitMiddleware()
		}
	}

	// Create and start server
	srv := server.New(cfg, router.SetupRouter(deps))

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	go func() {
		logging.Info().Str("env", string(cfg.Env)).Str("images", images.Backend()).Msg("Starting server")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("Received signal")
	}

	// Gracefully shutdown the server
	logging.Info().Dur("timeout", server.ShutdownTimeout).Msg("Shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logging.Error().Err(err).Msg("Server shutdown error")
	}
	logging.Info().Msg("Server stopped")
}

// newImageStore keeps uploads in S3 when a bucket is configured, on local disk otherwise
func newImageStore(cfg *config.Config) (service.ImageStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if s3cfg != nil {
		logging.Info().Str("bucket", s3cfg.BucketName).Msg("Storing images in S3")
		return service.NewS3ImageStore(s3cfg), nil
	}

	store, err := service.NewLocalImageStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("dir", store.Dir()).Msg("Storing images on local disk")
	return store, nil
}
