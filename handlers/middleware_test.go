package handlers

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", RequireUser, func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("user=%d", currentUserID(c)))
	})
	return app
}

func TestRequireUser(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid id", "42", fiber.StatusOK, "user=42"},
		{"missing header", "", fiber.StatusUnauthorized, ""},
		{"non-numeric id", "abc", fiber.StatusUnauthorized, ""},
		{"zero id", "0", fiber.StatusUnauthorized, ""},
		{"negative id", "-5", fiber.StatusUnauthorized, ""},
	}

	app := newTestApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("X-User-ID", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
