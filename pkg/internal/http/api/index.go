package api

import (
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		api.Get("/users/me", getUserinfo)

		workspaces := api.Group("/workspaces").Name("Workspaces API")
		{
			workspaces.Get("/", listWorkspace)
			workspaces.Post("/", createWorkspace)
			workspaces.Post("/join", joinWorkspace)
			workspaces.Get("/:workspaceId", getWorkspace)
			workspaces.Get("/:workspaceId/members", listWorkspaceMembers)
			workspaces.Get("/:workspaceId/channels", listChannel)
			workspaces.Post("/:workspaceId/channels", createChannel)
		}

		channels := api.Group("/channels").Name("Channels API")
		{
			channels.Get("/:channelId", getChannel)
			channels.Get("/:channelId/members", listChannelMembers)
			channels.Post("/:channelId/members/me", joinChannel)

			channels.Get("/:channelId/messages", listMessage)
			channels.Post("/:channelId/messages", newMessage)
			channels.Put("/:channelId/messages/:messageId", editMessage)
			channels.Delete("/:channelId/messages/:messageId", deleteMessage)
			channels.Post("/:channelId/messages/:messageId/reactions", toggleReaction)
		}
	}
}
