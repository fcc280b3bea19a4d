package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecocoleta/ecocoleta-backend/internal/config"
	"github.com/ecocoleta/ecocoleta-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func protectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/secure", JWTProtected(cfg), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func signToken(t *testing.T, secret string, expiry time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "4e9c62f2-0000-0000-0000-000000000000",
		"exp": time.Now().Add(expiry).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestJWTProtected(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := protectedApp(cfg)

	cases := []struct {
		name        string
		authorize   func(r *http.Request)
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "no token",
			authorize:   func(r *http.Request) {},
			wantStatus:  fiber.StatusUnauthorized,
			wantMessage: "Unauthorized: no token provided",
		},
		{
			name: "garbage token",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.jwt")
			},
			wantStatus:  fiber.StatusUnauthorized,
			wantMessage: "Unauthorized: invalid or expired token",
		},
		{
			name: "wrong signing key",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", time.Hour))
			},
			wantStatus:  fiber.StatusUnauthorized,
			wantMessage: "Unauthorized: invalid or expired token",
		},
		{
			name: "expired token",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWTSecret, -time.Minute))
			},
			wantStatus:  fiber.StatusUnauthorized,
			wantMessage: "Unauthorized: invalid or expired token",
		},
		{
			name: "valid token",
			authorize: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, cfg.JWTSecret, time.Hour))
			},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			tc.authorize(req)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
			if tc.wantMessage != "" {
				var body dto.ErrorResponse
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Message != tc.wantMessage {
					t.Errorf("message = %q, want %q", body.Message, tc.wantMessage)
				}
			}
		})
	}
}
