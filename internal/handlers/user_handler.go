package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fakestore/internal/models"
	"fakestore/internal/repositories"
	"fakestore/internal/services"
	"fakestore/internal/validation"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validation.Validator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, validate *validation.Validator) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the user routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUser)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Put("/:id", h.HandleUpdateUser)
	userRoutes.Patch("/:id", h.HandleUpdateUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
}

// HandleGetUsers lists users. Password hashes and internal ids are never
// part of the response.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers(c.Context(), listOptions(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch users.",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleGetUser fetches a single user.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	raw := c.Params("id")
	if !validation.IsObjectID(raw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid user ID format.",
		})
	}
	id, _ := primitive.ObjectIDFromHex(raw)

	user, err := h.service.GetUserByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "User not found.",
			})
		}
		log.Error().Err(err).Str("id", raw).Msg("failed to fetch user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch user.",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// HandleCreateUser registers a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if details := h.validate.Validate(req); details != nil {
		return validationFailed(c, details)
	}

	user, err := h.service.CreateUser(c.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("failed to add user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to add user.",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdateUser applies a full or partial update.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	raw := c.Params("id")
	if !validation.IsObjectID(raw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid user ID format.",
		})
	}
	id, _ := primitive.ObjectIDFromHex(raw)

	var req models.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if details := h.validate.Validate(req); details != nil {
		return validationFailed(c, details)
	}

	user, err := h.service.UpdateUser(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "User not found.",
			})
		}
		log.Error().Err(err).Str("id", raw).Msg("failed to update user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update user.",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User updated successfully.",
		"data":    user,
	})
}

// HandleDeleteUser removes a user.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	raw := c.Params("id")
	if !validation.IsObjectID(raw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid user ID format.",
		})
	}
	id, _ := primitive.ObjectIDFromHex(raw)

	if err := h.service.DeleteUser(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "User not found.",
			})
		}
		log.Error().Err(err).Str("id", raw).Msg("failed to delete user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete user.",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "User deleted successfully.",
	})
}
