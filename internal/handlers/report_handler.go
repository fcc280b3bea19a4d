package handlers

import (
	"errors"
	"log/slog"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/identity"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"github.com/ecocoleta/ecocoleta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	reports, err := h.reportService.List()
	if err != nil {
		slog.Error("report list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	out := make([]dto.ReportResponse, len(reports))
	for i := range reports {
		out[i] = services.ToResponse(&reports[i])
	}
	return c.JSON(out)
}

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.reportService.Create(caller.UserID, &req)
	if err != nil {
		if errors.Is(err, services.ErrIncompleteReport) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("report create failed", "error", err, "user_id", caller.UserID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(services.ToResponse(report))
}

func (h *ReportHandler) Investigate(c *fiber.Ctx) error {
	return h.advance(c, h.reportService.Investigate)
}

func (h *ReportHandler) Resolve(c *fiber.Ctx) error {
	return h.advance(c, h.reportService.Resolve)
}

func (h *ReportHandler) advance(c *fiber.Ctx, fn func(uuid.UUID) (*models.Report, error)) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := fn(id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("report update failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(services.ToResponse(report))
}
