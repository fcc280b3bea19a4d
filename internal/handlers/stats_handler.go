package handlers

import (
	"log/slog"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) EnvironmentalData(c *fiber.Ctx) error {
	data, err := h.statsService.EnvironmentalData()
	if err != nil {
		slog.Error("environmental data failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(data)
}

func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.statsService.Stats()
	if err != nil {
		slog.Error("stats failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(stats)
}
