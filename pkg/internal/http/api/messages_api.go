package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/solarent/beacon/pkg/internal/http/exts"
	"github.com/solarent/beacon/pkg/internal/models"
	"github.com/solarent/beacon/pkg/internal/services"
	"gorm.io/gorm"
)

func listMessage(c *fiber.Ctx) error {
	channelId, _ := c.ParamsInt("channelId", 0)
	cursor := c.Query("cursor")
	take := c.QueryInt("take", 0)

	var user *models.Account
	if val, ok := c.Locals("user").(models.Account); ok {
		user = &val
	}

	page, err := services.ListMessage(user, uint(channelId), cursor, take)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(page)
}

func newMessage(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	channelId, _ := c.ParamsInt("channelId", 0)

	var data struct {
		Uuid    string `json:"uuid"`
		Content string `json:"content" validate:"required"`
		ReplyTo *uint  `json:"reply_to"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	} else if len(strings.TrimSpace(data.Content)) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "you cannot send an empty message")
	}

	message, err := services.NewMessage(user, uint(channelId), data.Content, data.ReplyTo, data.Uuid)
	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, services.ErrBadReplyTarget) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(message)
}

func editMessage(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	messageId, _ := c.ParamsInt("messageId", 0)

	var data struct {
		Content string `json:"content" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	message, err := services.EditMessage(user, uint(messageId), data.Content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrAccessDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(message)
}

func deleteMessage(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	messageId, _ := c.ParamsInt("messageId", 0)

	if err := services.DeleteMessage(user, uint(messageId)); err != nil {
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

func toggleReaction(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)
	messageId, _ := c.ParamsInt("messageId", 0)

	var data struct {
		Emoji string `json:"emoji" validate:"required,max=16"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	message, err := services.ToggleReaction(user, uint(messageId), data.Emoji)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, services.ErrAccessDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(message)
}
