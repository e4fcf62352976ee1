package handlers

import (
	"log"
	"strconv"

	"pasar/internal/middleware"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the buyer's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddToCart)
	cartRoutes.Delete("/:id", h.HandleRemoveEntry)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// AddToCartRequest represents the request body for adding to the cart.
type AddToCartRequest struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// HandleAddToCart adds a product to the caller's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	identity := middleware.IdentityFrom(c)
	entry, err := h.service.AddToCart(identity, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding to cart for buyer %d: %v", identity.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product added to cart",
		"entry":   entry,
	})
}

// HandleGetCart returns the caller's cart with product details.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	items, err := h.service.GetCart(identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleRemoveEntry deletes one entry from the caller's cart.
func (h *CartHandler) HandleRemoveEntry(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cart entry ID must be a number",
		})
	}
	identity := middleware.IdentityFrom(c)
	if err := h.service.RemoveEntry(identity, uint(id)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart entry removed"})
}

// HandleClearCart empties the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	if err := h.service.ClearCart(identity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
