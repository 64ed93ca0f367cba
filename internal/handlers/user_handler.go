package handlers

import (
	"bloomshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles the admin user-management endpoints and profile updates.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers user routes: profile editing on the authenticated
// router, user management on the admin-only router.
func (h *UserHandler) RegisterRoutes(authed fiber.Router, admin fiber.Router) {
	authed.Put("/profile", h.HandleUpdateProfile)

	userRoutes := admin.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single user by their ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdateUser applies an admin edit to a user, including role changes.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var input services.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.service.UpdateUser(c.Params("id"), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// HandleDeleteUser removes a user. The acting admin's identity comes from the
// JWT claims set by the auth middleware.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	actingUserID, _ := c.Locals("user_id").(string)

	if err := h.service.DeleteUser(c.Params("id"), actingUserID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

// HandleUpdateProfile lets the authenticated user change their own details.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	user, err := h.service.UpdateProfile(userID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
