package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{JWTSecret: testSecret, AdminUserIDs: "user-1", AdminToken: "letmein", CORSOrigins: "*"}
}

func signed(t *testing.T, sub string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + s
}

func newApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/optional", OptionalJWT(cfg), func(c *fiber.Ctx) error {
		return c.SendString("actor=" + ActorID(c))
	})
	app.Put("/admin", JWTProtected(cfg), AdminRequired(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Put("/token-admin", AdminRequired(cfg), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func TestOptionalJWT(t *testing.T) {
	app := newApp(testConfig())

	tests := []struct {
		name   string
		auth   string
		status int
	}{
		{"anonymous", "", fiber.StatusOK},
		{"valid token", signed(t, "user-2"), fiber.StatusOK},
		{"garbage token", "Bearer nope", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/optional", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestAdminRequired(t *testing.T) {
	app := newApp(testConfig())

	tests := []struct {
		name   string
		path   string
		auth   string
		token  string
		status int
	}{
		{"admin user", "/admin", signed(t, "user-1"), "", fiber.StatusNoContent},
		{"regular user", "/admin", signed(t, "user-2"), "", fiber.StatusForbidden},
		{"regular user with admin token", "/admin", signed(t, "user-2"), "letmein", fiber.StatusNoContent},
		{"no jwt", "/admin", "", "", fiber.StatusUnauthorized},
		{"token only", "/token-admin", "", "letmein", fiber.StatusNoContent},
		{"wrong token", "/token-admin", "", "guess", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			if tt.token != "" {
				req.Header.Set("X-Admin-Token", tt.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}
