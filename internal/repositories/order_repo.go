package repositories

import "pasar/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	ListByBuyer(buyerID uint) ([]models.OrderView, error)
	ListBySeller(sellerID uint) ([]models.OrderView, error)
	UpdateStatus(id uint, payment models.PaymentStatus, delivery models.DeliveryStatus) error
}
