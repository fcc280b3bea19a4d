package handlers

import (
	"errors"
	"log/slog"

	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/identity"
	"github.com/ecocoleta/ecocoleta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CollectionHandler struct {
	collectionService *services.CollectionService
}

func NewCollectionHandler(collectionService *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

func (h *CollectionHandler) Create(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCollectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	collection, err := h.collectionService.Create(caller.UserID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNoItems) || errors.Is(err, services.ErrInvalidItem) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("collection create failed", "error", err, "user_id", caller.UserID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateCollectionResponse{
		Collection: *collection,
		Items:      collection.Items,
	})
}

func (h *CollectionHandler) ListMine(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	collections, err := h.collectionService.ListMine(caller.UserID)
	return h.respondList(c, collections, err)
}

func (h *CollectionHandler) ListHistory(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	collections, err := h.collectionService.ListHistory(caller.UserID)
	return h.respondList(c, collections, err)
}

func (h *CollectionHandler) ListAssigned(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	collections, err := h.collectionService.ListAssigned(caller)
	return h.respondList(c, collections, err)
}

func (h *CollectionHandler) ListPending(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	collections, err := h.collectionService.ListPending(caller)
	return h.respondList(c, collections, err)
}

func (h *CollectionHandler) Cancel(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	collection, err := h.collectionService.Cancel(caller.UserID, id)
	return h.respondMutation(c, collection, err)
}

func (h *CollectionHandler) Reschedule(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	var req dto.RescheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	collection, err := h.collectionService.Reschedule(caller.UserID, id, req.Date)
	if errors.Is(err, services.ErrMissingDate) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return h.respondMutation(c, collection, err)
}

func (h *CollectionHandler) Complete(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c)
	}

	collection, err := h.collectionService.Complete(caller, id)
	if errors.Is(err, services.ErrNotCollectionOwner) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return h.respondMutation(c, collection, err)
}

func (h *CollectionHandler) respondList(c *fiber.Ctx, collections interface{}, err error) error {
	if err != nil {
		slog.Error("collection list failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(collections)
}

func (h *CollectionHandler) respondMutation(c *fiber.Ctx, collection interface{}, err error) error {
	if err != nil {
		if errors.Is(err, services.ErrCollectionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("collection update failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(collection)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid collection ID",
	})
}
