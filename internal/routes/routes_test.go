package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecocoleta/ecocoleta-backend/internal/chat"
	"github.com/ecocoleta/ecocoleta-backend/internal/config"
	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/ecocoleta/ecocoleta-backend/internal/handlers"
	"github.com/ecocoleta/ecocoleta-backend/internal/models"
	"github.com/ecocoleta/ecocoleta-backend/internal/routes"
	"github.com/ecocoleta/ecocoleta-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestApp wires the full router against an in-memory database, the
// same way main does against Postgres.
func newTestApp(t *testing.T) *fiber.App {
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

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	hub := chat.NewHub()
	t.Cleanup(hub.Close)

	app := fiber.New()
	routes.Setup(app, cfg, routes.Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		User:       handlers.NewUserHandler(services.NewUserService(db)),
		Report:     handlers.NewReportHandler(services.NewReportService(db)),
		Collection: handlers.NewCollectionHandler(services.NewCollectionService(db)),
		Chat:       handlers.NewChatHandler(services.NewChatService(db), hub),
		Stats:      handlers.NewStatsHandler(services.NewStatsService(db)),
		Health:     handlers.NewHealthHandler(db),
		Wallet:     handlers.NewWalletHandler(services.NewWalletService(db)),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func signupAndLogin(t *testing.T, app *fiber.App, name, email string) dto.AuthResponse {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		Name: name, Email: email, Password: "password123", Role: "collector",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("signup returned %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Email: email, Password: "password123",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	var auth dto.AuthResponse
	decode(t, resp, &auth)
	if auth.Token == "" {
		t.Fatal("login returned no token")
	}
	return auth
}

func TestSignupLoginCreateAndListCollection(t *testing.T) {
	app := newTestApp(t)
	auth := signupAndLogin(t, app, "Ana", "a@x.com")

	create := dto.CreateCollectionRequest{
		Items: []dto.CollectionItemRequest{{Material: "plastic", Quantity: 5}},
		Address: models.Address{
			Street: "Rua das Flores", Number: "120", District: "Centro",
			PostalCode: "13000-000", City: "Campinas", State: "SP",
		},
	}
	resp := doJSON(t, app, http.MethodPost, "/api/collections", auth.Token, create)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create collection returned %d", resp.StatusCode)
	}
	var created dto.CreateCollectionResponse
	decode(t, resp, &created)
	if created.Collection.Status != models.CollectionPending {
		t.Errorf("created status = %s, want pending", created.Collection.Status)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/collections/my", auth.Token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list mine returned %d", resp.StatusCode)
	}
	var mine []models.Collection
	decode(t, resp, &mine)
	if len(mine) != 1 {
		t.Fatalf("expected 1 collection, got %d", len(mine))
	}
	if mine[0].ID != created.Collection.ID {
		t.Error("listed collection does not match the created one")
	}
	if mine[0].Status != models.CollectionPending {
		t.Errorf("listed status = %s, want pending", mine[0].Status)
	}
	if len(mine[0].Items) != 1 || mine[0].Items[0].Material != "plastic" || mine[0].Items[0].Quantity != 5 {
		t.Errorf("listed items wrong: %+v", mine[0].Items)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/collections/my", "/api/reports", "/api/chat", "/api/stats"} {
		resp := doJSON(t, app, http.MethodGet, path, "", nil)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("GET %s without token returned %d, want 401", path, resp.StatusCode)
		}
		resp.Body.Close()
	}
}

func TestForeignCollectionDenials(t *testing.T) {
	app := newTestApp(t)
	owner := signupAndLogin(t, app, "Ana", "a@x.com")
	intruder := signupAndLogin(t, app, "Bia", "b@x.com")

	resp := doJSON(t, app, http.MethodPost, "/api/collections", owner.Token, dto.CreateCollectionRequest{
		Items: []dto.CollectionItemRequest{{Material: "glass", Quantity: 2}},
	})
	var created dto.CreateCollectionResponse
	decode(t, resp, &created)
	id := created.Collection.ID

	// Owner-scoped mutations hide the row entirely.
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/collections/%s/cancel", id), intruder.Token, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("foreign cancel returned %d, want 404", resp.StatusCode)
	}
	resp.Body.Close()

	// Complete admits the row exists but refuses the caller.
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/collections/%s/complete", id), intruder.Token, nil)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("foreign complete returned %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/collections/%s/complete", id), owner.Token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("owner complete returned %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestChatPostAndHistory(t *testing.T) {
	app := newTestApp(t)
	auth := signupAndLogin(t, app, "Ana", "a@x.com")

	resp := doJSON(t, app, http.MethodPost, "/api/chat", auth.Token, dto.PostMessageRequest{Text: "hello all"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("post chat returned %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/chat", auth.Token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("chat history returned %d", resp.StatusCode)
	}
	var history []models.ChatMessage
	decode(t, resp, &history)
	if len(history) != 1 || history[0].Text != "hello all" || history[0].UserName != "Ana" {
		t.Errorf("history wrong: %+v", history)
	}
}
