package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/solarent/beacon/pkg/internal/http/exts"
	"github.com/solarent/beacon/pkg/internal/models"
)

func getUserinfo(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	return c.JSON(user)
}
