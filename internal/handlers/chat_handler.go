package handlers

import (
	"errors"
	"log/slog"

	"github.com/ecocoleta/ecocoleta-backend/internal/chat"
	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/identity"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"github.com/ecocoleta/ecocoleta-backend/internal/services"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	chatService *services.ChatService
	hub         *chat.Hub
}

func NewChatHandler(chatService *services.ChatService, hub *chat.Hub) *ChatHandler {
	return &ChatHandler{chatService: chatService, hub: hub}
}

func (h *ChatHandler) History(c *fiber.Ctx) error {
	messages, err := h.chatService.History()
	if err != nil {
		slog.Error("chat history failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(messages)
}

func (h *ChatHandler) Post(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	message, err := h.chatService.Post(caller.UserID, req.Text)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("chat post failed", "error", err, "user_id", caller.UserID.String())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	h.hub.Broadcast(toEvent(message))
	return c.Status(fiber.StatusCreated).JSON(message)
}

// Upgrade gates the websocket endpoint on an actual upgrade request.
func (h *ChatHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// inboundFrame is what clients send over the socket.
type inboundFrame struct {
	Event string `json:"event"`
	Data  struct {
		User string `json:"user"`
		Text string `json:"text"`
	} `json:"data"`
}

// Serve handles one websocket client: register with the hub, then read
// chat_message frames, persist each through the chat log and fan out.
func (h *ChatHandler) Serve(c *websocket.Conn) {
	h.hub.Register(c)
	defer func() {
		h.hub.Unregister(c)
		_ = c.Close()
	}()

	for {
		var frame inboundFrame
		if err := c.ReadJSON(&frame); err != nil {
			return
		}
		if frame.Event != "chat_message" {
			continue
		}

		message, err := h.chatService.Append(frame.Data.User, frame.Data.Text)
		if err != nil {
			slog.Error("chat relay append failed", "error", err)
			continue
		}
		h.hub.Broadcast(toEvent(message))
	}
}

func toEvent(m *models.ChatMessage) dto.ChatEvent {
	return dto.ChatEvent{
		Event: "chat_message",
		Data: dto.ChatMessageData{
			ID:        m.ID,
			User:      m.UserName,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		},
	}
}
