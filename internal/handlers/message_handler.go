package handlers

import (
	"bloomshop/internal/models"
	"bloomshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MessageHandler handles HTTP requests for contact messages.
type MessageHandler struct {
	service *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{
		service: service,
	}
}

// RegisterRoutes registers message routes: submission is public, everything
// else is admin-only.
func (h *MessageHandler) RegisterRoutes(public fiber.Router, admin fiber.Router) {
	public.Post("/messages", h.HandleCreateMessage)

	adminRoutes := admin.Group("/messages")
	adminRoutes.Get("/", h.HandleGetMessages)
	adminRoutes.Get("/unread-count", h.HandleUnreadCount)
	adminRoutes.Put("/:id/read", h.HandleMarkAsRead)
	adminRoutes.Delete("/:id", h.HandleDeleteMessage)
}

// HandleCreateMessage stores a contact form submission.
func (h *MessageHandler) HandleCreateMessage(c *fiber.Ctx) error {
	var message models.Message
	if err := c.BodyParser(&message); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateMessage(&message); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Message sent successfully",
		"data":    message,
	})
}

// HandleGetMessages retrieves all messages, newest first.
func (h *MessageHandler) HandleGetMessages(c *fiber.Ctx) error {
	messages, err := h.service.GetAllMessages()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(messages)
}

// HandleUnreadCount returns the unread message count for the admin dashboard.
func (h *MessageHandler) HandleUnreadCount(c *fiber.Ctx) error {
	count, err := h.service.UnreadCount()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"count": count,
	})
}

// HandleMarkAsRead flags a message as read.
func (h *MessageHandler) HandleMarkAsRead(c *fiber.Ctx) error {
	message, err := h.service.MarkAsRead(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Message marked as read",
		"data":    message,
	})
}

// HandleDeleteMessage deletes a message by its ID.
func (h *MessageHandler) HandleDeleteMessage(c *fiber.Ctx) error {
	if err := h.service.DeleteMessage(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Message deleted successfully",
	})
}
