package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// RequireUser resolves the authenticated user id supplied by the auth
// collaborator via the X-User-ID header and stores it in the request locals.
// Garbage ids are rejected here, never coerced.
func RequireUser(c *fiber.Ctx) error {
	raw := c.Get("X-User-ID")
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User ID required in X-User-ID header"})
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID"})
	}
	c.Locals("userID", uint(id))
	return c.Next()
}

func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
