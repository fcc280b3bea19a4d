package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"github.com/google/uuid"
)

func TestChatPostResolvesUserName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)
	user := seedUser(t, db, "Ana", "a@x.com", models.RoleCollector)

	message, err := svc.Post(user.ID, "hello")
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if message.UserName != "Ana" {
		t.Errorf("user name = %q, want Ana", message.UserName)
	}
	if message.Timestamp.IsZero() {
		t.Error("message has no timestamp")
	}
}

func TestChatPostValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)
	user := seedUser(t, db, "Ana", "a@x.com", models.RoleCollector)

	if _, err := svc.Post(user.ID, ""); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("empty text: got %v", err)
	}
	if _, err := svc.Post(uuid.New(), "hi"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: got %v", err)
	}
}

func TestChatHistoryAscending(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)

	older := models.ChatMessage{ID: uuid.New(), UserName: "Ana", Text: "first", Timestamp: time.Now().Add(-time.Minute)}
	newer := models.ChatMessage{ID: uuid.New(), UserName: "Bia", Text: "second", Timestamp: time.Now()}
	// Insert newest first to prove ordering comes from the query.
	if err := db.Create(&newer).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := db.Create(&older).Error; err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	history, err := svc.History()
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Text != "first" || history[1].Text != "second" {
		t.Error("history is not ascending by timestamp")
	}
}

func TestChatAppendForRelay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewChatService(db)

	if _, err := svc.Append("", "hi"); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("append without name: got %v", err)
	}

	message, err := svc.Append("Ana", "via socket")
	if err != nil {
		t.Fatalf("append failed: %v", err)
	}

	var count int64
	db.Model(&models.ChatMessage{}).Where("id = ?", message.ID).Count(&count)
	if count != 1 {
		t.Error("relay message was not persisted")
	}
}
