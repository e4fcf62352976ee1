package handlers

import (
	"log"

	"pasar/internal/middleware"
	"pasar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// BalanceHandler handles HTTP requests for user balances.
type BalanceHandler struct {
	service *services.BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(service *services.BalanceService) *BalanceHandler {
	return &BalanceHandler{service: service}
}

// RegisterRoutes registers the balance routes.
func (h *BalanceHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/balance", h.HandleGetBalance)
	router.Put("/balance", h.HandleSetBalance)
	router.Post("/balance/add", h.HandleTopUp)
}

// HandleGetBalance returns the caller's own balance.
func (h *BalanceHandler) HandleGetBalance(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	balance, err := h.service.GetBalance(identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"balance": balance})
}

// TopUpRequest represents the request body for a buyer top-up.
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// HandleTopUp adds funds to the calling buyer's balance.
func (h *BalanceHandler) HandleTopUp(c *fiber.Ctx) error {
	var req TopUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	identity := middleware.IdentityFrom(c)
	if err := h.service.TopUp(identity, req.Amount); err != nil {
		log.Printf("Error adding balance for user %d: %v", identity.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Balance added"})
}

// SetBalanceRequest represents the admin balance override body.
type SetBalanceRequest struct {
	UserID  uint    `json:"userId"`
	Balance float64 `json:"balance"`
}

// HandleSetBalance overwrites a user's balance (admin only).
func (h *BalanceHandler) HandleSetBalance(c *fiber.Ctx) error {
	var req SetBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	identity := middleware.IdentityFrom(c)
	if err := h.service.SetBalance(identity, req.UserID, req.Balance); err != nil {
		log.Printf("Error updating balance for user %d: %v", req.UserID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Balance updated"})
}
