package handlers

import (
	"log"

	"pasar/internal/middleware"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles the payment processing endpoint.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

// RegisterRoutes registers the payment routes.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/payment/process", h.HandleProcessPayment)
}

// ProcessPaymentRequest supports both cart-based and ad-hoc checkouts:
// CartItems carry cart entry IDs to clean up, Items are used as given.
type ProcessPaymentRequest struct {
	CartItems []services.CheckoutItem `json:"cartItems"`
	Items     []services.CheckoutItem `json:"items"`
}

// HandleProcessPayment runs the checkout engine for the caller.
func (h *CheckoutHandler) HandleProcessPayment(c *fiber.Ctx) error {
	var req ProcessPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	items := req.Items
	fromCart := false
	if len(req.CartItems) > 0 {
		items = req.CartItems
		fromCart = true
	}

	identity := middleware.IdentityFrom(c)
	result, err := h.service.ProcessCheckout(identity, items, fromCart)
	if err != nil {
		log.Printf("Checkout failed for buyer %d: %v", identity.ID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Payment processed, orders created",
		"orders":  result.Orders,
		"total":   result.Total,
	})
}
