package handlers

import (
	"fmt"
	"log"
	"strconv"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles seller onboarding and the admin endpoints.
type AdminHandler struct {
	service  *services.AdminService
	validate *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterSellerRoutes registers the public seller onboarding route.
func (h *AdminHandler) RegisterSellerRoutes(router fiber.Router) {
	router.Post("/seller/register", h.HandleSellerRegister)
}

// RegisterRoutes registers the admin routes; callers should guard them with
// the admin role middleware.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Get("/pending-sellers", h.HandlePendingSellers)
	adminRoutes.Put("/approve-seller/:userId", h.HandleApproveSeller)
	adminRoutes.Get("/approval-history", h.HandleApprovalHistory)
	adminRoutes.Get("/all-users", h.HandleAllUsers)
}

// HandleSellerRegister records a seller's business details for approval.
func (h *AdminHandler) HandleSellerRegister(c *fiber.Ctx) error {
	var profile models.SellerProfile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(profile); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "All fields are required",
			"errors":  errorMessages,
		})
	}

	if err := h.service.SubmitSellerProfile(&profile); err != nil {
		log.Printf("Error registering seller %d: %v", profile.UserID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seller details submitted, awaiting approval"})
}

// HandlePendingSellers lists sellers awaiting approval.
func (h *AdminHandler) HandlePendingSellers(c *fiber.Ctx) error {
	sellers, err := h.service.PendingSellers(middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sellers)
}

// HandleApproveSeller approves a pending seller.
func (h *AdminHandler) HandleApproveSeller(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("userId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "User ID must be a number",
		})
	}
	if err := h.service.ApproveSeller(middleware.IdentityFrom(c), uint(userID)); err != nil {
		log.Printf("Error approving seller %d: %v", userID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Seller approved"})
}

// HandleApprovalHistory lists past approvals.
func (h *AdminHandler) HandleApprovalHistory(c *fiber.Ctx) error {
	history, err := h.service.ApprovalHistory(middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

// HandleAllUsers lists every buyer and seller.
func (h *AdminHandler) HandleAllUsers(c *fiber.Ctx) error {
	users, err := h.service.AllUsers(middleware.IdentityFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}
