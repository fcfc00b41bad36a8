package exts

import (
	"github.com/gofiber/fiber/v2"
	"github.com/solarent/beacon/pkg/internal/models"
)

// EnsureAuthenticated guards write paths. Read paths skip this and
// degrade to empty results instead.
func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
	}

	return nil
}
