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

// CartHandler handles HTTP requests for carts.
type CartHandler struct {
	service  *services.CartService
	validate *validation.Validator
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, validate *validation.Validator) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/carts")
	cartRoutes.Get("/", h.HandleGetCarts)
	cartRoutes.Get("/user/:userid", h.HandleGetCartsByUser)
	cartRoutes.Get("/:id", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleCreateCart)
	cartRoutes.Put("/:id", h.HandleUpdateCart)
	cartRoutes.Patch("/:id", h.HandleUpdateCart)
	cartRoutes.Delete("/:id", h.HandleDeleteCart)
}

// HandleGetCarts lists carts dated within the requested range. An empty
// result is a valid 200.
func (h *CartHandler) HandleGetCarts(c *fiber.Ctx) error {
	start, end := dateRange(c)
	carts, err := h.service.GetAllCarts(c.Context(), start, end, listOptions(c))
	if err != nil {
		log.Error().Err(err).Msg("failed to retrieve carts")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to retrieve carts",
			"error":   err.Error(),
		})
	}
	return c.JSON(carts)
}

// HandleGetCartsByUser lists a user's carts within the requested range.
// Zero matching carts is a 404, unlike the global listing.
func (h *CartHandler) HandleGetCartsByUser(c *fiber.Ctx) error {
	raw := c.Params("userid")
	if !validation.IsObjectID(raw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid userId format.",
		})
	}
	userID, _ := primitive.ObjectIDFromHex(raw)

	start, end := dateRange(c)
	carts, err := h.service.GetCartsByUser(c.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "No carts found for the user",
			})
		}
		log.Error().Err(err).Str("userId", raw).Msg("failed to retrieve carts")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to retrieve carts",
			"error":   err.Error(),
		})
	}
	return c.JSON(carts)
}

// HandleGetCart fetches a single cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	raw := c.Params("id")
	if !validation.IsObjectID(raw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid cart ID format.",
		})
	}
	id, _ := primitive.ObjectIDFromHex(raw)

	cart, err := h.service.GetCartByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Cart not found",
			})
		}
		log.Error().Err(err).Str("id", raw).Msg("failed to retrieve cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleCreateCart adds a new cart. Referenced user and product ids are
// validated for format only, never for existence.
func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	var req models.CreateCartRequest
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

	cart, err := h.service.CreateCart(c.Context(), &req)
	if err != nil {
		log.Error().Err(err).Msg("failed to add cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to add cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// HandleUpdateCart applies a full or partial update. A supplied products
// list replaces the stored one.
func (h *CartHandler) HandleUpdateCart(c *fiber.Ctx) error {
	raw := c.Params("id")
	if !validation.IsObjectID(raw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid cart ID format.",
		})
	}
	id, _ := primitive.ObjectIDFromHex(raw)

	var req models.UpdateCartRequest
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

	cart, err := h.service.UpdateCart(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Cart not found",
			})
		}
		log.Error().Err(err).Str("id", raw).Msg("failed to update cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(cart)
}

// HandleDeleteCart removes a cart.
func (h *CartHandler) HandleDeleteCart(c *fiber.Ctx) error {
	raw := c.Params("id")
	if !validation.IsObjectID(raw) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid cart ID format.",
		})
	}
	id, _ := primitive.ObjectIDFromHex(raw)

	if err := h.service.DeleteCart(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Cart not found",
			})
		}
		log.Error().Err(err).Str("id", raw).Msg("failed to delete cart")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete cart",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Cart deleted successfully",
	})
}
