package services

import (
	"testing"
	"time"

	"github.com/ecocoleta/ecocoleta-backend/internal/config"
	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/identity"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database and migrates every
// model the services touch.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Collection{},
		&models.CollectionItem{},
		&models.ChatMessage{},
		&models.Keystore{},
	)
	if err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

// seedUser creates an account directly through the auth service and
// returns the created user response.
func seedUser(t *testing.T, db *gorm.DB, name, email, role string) dto.UserResponse {
	t.Helper()
	auth := NewAuthService(db, testConfig())
	resp, err := auth.Signup(&dto.SignupRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return resp.User
}

func asIdentity(u dto.UserResponse) identity.Identity {
	return identity.Identity{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
