package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/http/exts"
	"github.com/solarent/beacon/pkg/internal/models"
	"github.com/solarent/beacon/pkg/internal/services"
)

func createWorkspace(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Name        string `json:"name" validate:"required,max=64"`
		Description string `json:"description" validate:"max=512"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	workspace, err := services.NewWorkspace(user, data.Name, data.Description)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(workspace)
}

func listWorkspace(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.Account)
	if !ok {
		return c.JSON([]fiber.Map{})
	}

	members, err := services.ListWorkspace(user)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(lo.Map(members, func(item models.WorkspaceMember, index int) fiber.Map {
		return fiber.Map{
			"workspace": item.Workspace,
			"role":      item.Role,
		}
	}))
}

func getWorkspace(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("workspaceId", 0)

	user, ok := c.Locals("user").(models.Account)
	if !ok {
		return c.JSON(nil)
	}
	if verdict := services.CheckWorkspaceAccess(database.C, user.ID, uint(id)); !verdict.Allowed {
		return c.JSON(nil)
	}

	workspace, err := services.GetWorkspace(uint(id))
	if err != nil {
		return c.JSON(nil)
	}

	return c.JSON(workspace)
}

func joinWorkspace(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Code string `json:"code" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	workspace, err := services.JoinWorkspaceByCode(user, data.Code)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInviteCode) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(workspace)
}

func listWorkspaceMembers(c *fiber.Ctx) error {
	id, _ := c.ParamsInt("workspaceId", 0)

	user, ok := c.Locals("user").(models.Account)
	if !ok {
		return c.JSON([]models.WorkspaceMember{})
	}
	if verdict := services.CheckWorkspaceAccess(database.C, user.ID, uint(id)); !verdict.Allowed {
		return c.JSON([]models.WorkspaceMember{})
	}

	members, err := services.ListWorkspaceMember(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(members)
}
