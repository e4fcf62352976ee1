package repositories

import "pasar/internal/models"

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(product *models.Product) error
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// GetByIDsForUpdate batch-fetches products and locks their rows for the
	// rest of the enclosing transaction. Missing IDs are simply absent from
	// the result; callers decide what that means.
	GetByIDsForUpdate(ids []uint) ([]models.Product, error)
	Update(product *models.Product) error
	// DecrementStock subtracts amount from the product's stock. It fails
	// with a conflict rather than letting stock go negative.
	DecrementStock(id uint, amount int) error
	IncrementStock(id uint, amount int) error
}
