// Package server assembles and runs the mock auth server.
package server

import (
	"context"
	"fmt"
	"time"

	"coursehub/internal/config"
	"coursehub/internal/handlers"
	"coursehub/internal/metrics"
	"coursehub/internal/repositories"
	"coursehub/internal/services"
	"coursehub/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Deps are the collaborators of the app.
type Deps struct {
	AuthService *services.AuthService
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
	StoreDriver string
	// AccessLog enables fiber's request logger.
	AccessLog bool
}

// NewApp builds the fiber app with every route of the mock auth server.
func NewApp(d Deps) *fiber.App {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               "coursehub mock auth",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if d.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"store":  d.StoreDriver,
		})
	})
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))
	}

	api := app.Group("/api")
	handlers.NewAuthHandler(d.AuthService, log).RegisterRoutes(api)
	return app
}

// Run opens the store, optionally connects to RabbitMQ, and serves until ctx
// is cancelled.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	repo, closeStore, err := repositories.OpenUserRepository(repositories.StoreConfig{
		Driver:    cfg.StoreDriver,
		UsersFile: cfg.UsersFile,
		DSN:       cfg.DatabaseDSN,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn("failed to close store", zap.Error(err))
		}
	}()

	m := metrics.New()
	opts := []services.Option{
		services.WithPasswordHashing(cfg.HashPasswords),
		services.WithMetrics(m),
		services.WithLogger(log),
	}
	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			return err
		}
		defer mq.Close()
		opts = append(opts, services.WithEvents(mq))
	}

	app := NewApp(Deps{
		AuthService: services.NewAuthService(repo, cfg.JWTSecret, opts...),
		Metrics:     m,
		Logger:      log,
		StoreDriver: cfg.StoreDriver,
		AccessLog:   cfg.AppEnv != "test",
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting mock auth server", zap.String("addr", cfg.AppPort), zap.String("store", cfg.StoreDriver))
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down mock auth server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
