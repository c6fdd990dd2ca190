package handler

import (
	"jobboard/internal/database"
	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
	} else if err := h.db.Ping(c.Context()); err != nil {
		dbStatus = "down"
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"database": dbStatus})
}
