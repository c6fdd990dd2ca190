package routes

import (
	"log"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	v1 "jobboard/internal/delivery/http/routes/v1"
	"jobboard/internal/infrastructure/skills"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg       config.Config
	db        database.DB
	directory skills.Directory
	logger    *log.Logger
	health    *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, directory skills.Directory, logger *log.Logger) *Registry {
	return &Registry{
		cfg:       cfg,
		db:        db,
		directory: directory,
		logger:    logger,
		health:    handler.NewHealthHandler(db),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.cfg, r.db, r.directory, r.logger)
}
