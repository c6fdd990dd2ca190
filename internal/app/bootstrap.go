package app

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database/migration"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the dependency container, applies pending migrations from
// migrationsFS and returns the wired HTTP application with its cleanup.
func Bootstrap(cfg config.Config, migrationsFS fs.FS) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := container.Close

	if migrationsFS != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		err := migration.Runner{FS: migrationsFS}.Run(ctx, container.DB.SQLDB())
		cancel()
		if err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("apply migrations: %w", err)
		}
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})

	errMw := middleware.NewErrorMiddleware(container.Logger)
	f.Use(errMw.Middleware())

	logMw := middleware.NewAccessLogMiddleware(container.Logger)
	f.Use(logMw.Middleware())

	registry := routes.NewRegistry(cfg, container.DB, container.Directory, container.Logger)
	registry.Register(f)

	return &App{Fiber: f, Container: container}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
