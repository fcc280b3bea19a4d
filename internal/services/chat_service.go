package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyMessage = errors.New("message text is required")
	ErrUserNotFound = errors.New("user not found")
)

// ChatService appends to and reads the persisted global chat log, the
// single source of truth for chat. Fan-out to live clients happens in
// the relay after a message is persisted.
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// History returns the whole log, oldest first.
func (s *ChatService) History() ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.Order("timestamp ASC").Find(&messages).Error
	return messages, err
}

// Post persists a message on behalf of an authenticated user. The
// display name is resolved from the user row, never taken from the body.
func (s *ChatService) Post(userID uuid.UUID, text string) (*models.ChatMessage, error) {
	if text == "" {
		return nil, ErrEmptyMessage
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.append(user.Name, text)
}

// Append persists a message under a raw display name. Used by the
// websocket relay, whose frames carry the sender name.
func (s *ChatService) Append(userName, text string) (*models.ChatMessage, error) {
	if userName == "" || text == "" {
		return nil, ErrEmptyMessage
	}
	return s.append(userName, text)
}

func (s *ChatService) append(userName, text string) (*models.ChatMessage, error) {
	message := models.ChatMessage{
		ID:        uuid.New(),
		UserName:  userName,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, fmt.Errorf("failed to persist chat message: %w", err)
	}
	return &message, nil
}
