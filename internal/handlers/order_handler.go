package handlers

import (
	"log"
	"strconv"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Put("/update-status/:orderId", h.HandleUpdateStatus)
	orderRoutes.Post("/cancel", h.HandleCancelOrder)
}

// HandleGetOrders lists the caller's orders: purchases for buyers, sales for
// sellers.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	orders, err := h.service.ListOrders(identity)
	if err != nil {
		log.Printf("Error getting orders for user %d: %v", identity.ID, err)
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// UpdateStatusRequest represents the request body for a status update.
type UpdateStatusRequest struct {
	PaymentStatus  models.PaymentStatus  `json:"paymentStatus"`
	DeliveryStatus models.DeliveryStatus `json:"deliveryStatus"`
}

// HandleUpdateStatus lets the owning seller set an order's status pair.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	orderID, err := strconv.ParseUint(c.Params("orderId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order ID must be a number",
		})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	identity := middleware.IdentityFrom(c)
	if err := h.service.UpdateStatus(uint(orderID), identity, req.PaymentStatus, req.DeliveryStatus); err != nil {
		log.Printf("Error updating order %d status: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated"})
}

// CancelOrderRequest represents the request body for a cancellation.
type CancelOrderRequest struct {
	OrderID uint `json:"orderId"`
}

// HandleCancelOrder cancels a pending order on behalf of its buyer.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	var req CancelOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.OrderID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Order ID is required",
		})
	}

	identity := middleware.IdentityFrom(c)
	if err := h.service.Cancel(req.OrderID, identity); err != nil {
		log.Printf("Error canceling order %d: %v", req.OrderID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order canceled successfully"})
}
