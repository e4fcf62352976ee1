package repositories

import (
	"pasar/internal/apperr"
	"pasar/internal/models"

	"gorm.io/gorm"
)

// GormCartRepository is a GORM implementation of CartRepository.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new instance of GormCartRepository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Create adds a cart entry.
func (r *GormCartRepository) Create(entry *models.CartEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to add cart entry")
	}
	return nil
}

// GetEntry retrieves a single cart entry by its ID.
func (r *GormCartRepository) GetEntry(id uint) (*models.CartEntry, error) {
	var entry models.CartEntry
	if err := r.db.First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "cart entry with ID %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "failed to get cart entry %d", id)
	}
	return &entry, nil
}

// GetByBuyer retrieves the buyer's cart joined with product details.
func (r *GormCartRepository) GetByBuyer(buyerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.Table("cart_entries").
		Select("cart_entries.id, cart_entries.product_id, cart_entries.quantity, products.description, products.price, products.image").
		Joins("JOIN products ON products.id = cart_entries.product_id").
		Where("cart_entries.buyer_id = ?", buyerID).
		Scan(&items).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "failed to get cart for buyer %d", buyerID)
	}
	return items, nil
}

// Delete removes a single cart entry.
func (r *GormCartRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.CartEntry{}, "id = ?", id).Error; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to delete cart entry %d", id)
	}
	return nil
}

// ClearByBuyer removes every cart entry belonging to the buyer.
func (r *GormCartRepository) ClearByBuyer(buyerID uint) error {
	if err := r.db.Delete(&models.CartEntry{}, "buyer_id = ?", buyerID).Error; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to clear cart for buyer %d", buyerID)
	}
	return nil
}
