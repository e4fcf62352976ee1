package repositories

import "pasar/internal/models"

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	Create(entry *models.CartEntry) error
	GetEntry(id uint) (*models.CartEntry, error)
	GetByBuyer(buyerID uint) ([]models.CartItem, error)
	Delete(id uint) error
	ClearByBuyer(buyerID uint) error
}
