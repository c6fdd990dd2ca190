package app

import (
	"context"
	"log"
	"os"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/skills"
)

type Container struct {
	Config    config.Config
	Logger    *log.Logger
	DB        database.DB
	Cache     *cache.Redis
	Directory skills.Directory
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	directory := skills.NewHTTPDirectory(cfg.Skills.BaseURL, cfg.Skills.Timeout, logger)
	cached := skills.NewCachedDirectory(directory, redisCache, cfg.Redis.TTL)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     redisCache,
		Directory: cached,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("[App] redis close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
