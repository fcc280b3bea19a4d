package dto

import (
	"time"

	"github.com/google/uuid"
)

type PostMessageRequest struct {
	Text string `json:"text"`
}

// ChatEvent is the wire shape broadcast to websocket clients.
type ChatEvent struct {
	Event string          `json:"event"`
	Data  ChatMessageData `json:"data"`
}

type ChatMessageData struct {
	ID        uuid.UUID `json:"id"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
