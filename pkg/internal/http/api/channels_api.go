package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/http/exts"
	"github.com/solarent/beacon/pkg/internal/models"
	"github.com/solarent/beacon/pkg/internal/services"
	"gorm.io/gorm"
)

func createChannel(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	workspaceId, _ := c.ParamsInt("workspaceId", 0)

	var data struct {
		Name        string `json:"name" validate:"required,max=32"`
		Description string `json:"description" validate:"max=512"`
		IsPrivate   bool   `json:"is_private"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	channel, err := services.NewChannel(user, uint(workspaceId), data.Name, data.IsPrivate, data.Description)
	if err != nil {
		if errors.Is(err, services.ErrChannelNameTaken) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if errors.Is(err, services.ErrAccessDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(channel)
}

func listChannel(c *fiber.Ctx) error {
	workspaceId, _ := c.ParamsInt("workspaceId", 0)

	user, ok := c.Locals("user").(models.Account)
	if !ok {
		return c.JSON([]models.Channel{})
	}
	if verdict := services.CheckWorkspaceAccess(database.C, user.ID, uint(workspaceId)); !verdict.Allowed {
		return c.JSON([]models.Channel{})
	}

	channels, err := services.ListChannel(user, uint(workspaceId))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(channels)
}

func getChannel(c *fiber.Ctx) error {
	channelId, _ := c.ParamsInt("channelId", 0)

	user, ok := c.Locals("user").(models.Account)
	if !ok {
		return c.JSON(nil)
	}

	channel, verdict := services.CheckChannelAccess(database.C, user.ID, uint(channelId))
	if !verdict.Allowed {
		return c.JSON(nil)
	}

	return c.JSON(channel)
}

func listChannelMembers(c *fiber.Ctx) error {
	channelId, _ := c.ParamsInt("channelId", 0)

	user, ok := c.Locals("user").(models.Account)
	if !ok {
		return c.JSON(fiber.Map{"count": 0, "data": []models.ChannelMember{}})
	}
	if _, verdict := services.CheckChannelAccess(database.C, user.ID, uint(channelId)); !verdict.Allowed {
		return c.JSON(fiber.Map{"count": 0, "data": []models.ChannelMember{}})
	}

	count, err := services.CountChannelMember(uint(channelId))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	if members, err := services.ListChannelMember(uint(channelId)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	} else {
		return c.JSON(fiber.Map{
			"count": count,
			"data":  members,
		})
	}
}

func joinChannel(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	channelId, _ := c.ParamsInt("channelId", 0)

	if err := services.JoinChannel(user, uint(channelId)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrAccessDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.SendStatus(fiber.StatusOK)
}
