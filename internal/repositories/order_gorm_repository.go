package repositories

import (
	"pasar/internal/apperr"
	"pasar/internal/models"

	"gorm.io/gorm"
)

// GormOrderRepository is a GORM implementation of OrderRepository.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order row.
func (r *GormOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to create order")
	}
	return nil
}

// GetByID retrieves a single order by its ID.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "order with ID %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "failed to get order by ID %d", id)
	}
	return &order, nil
}

func (r *GormOrderRepository) listOrders(col string, id uint) ([]models.OrderView, error) {
	var views []models.OrderView
	err := r.db.Table("orders").
		Select("orders.*, products.description, products.image").
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders."+col+" = ?", id).
		Scan(&views).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "failed to list orders")
	}
	return views, nil
}

// ListByBuyer retrieves the buyer's orders joined with product details.
func (r *GormOrderRepository) ListByBuyer(buyerID uint) ([]models.OrderView, error) {
	return r.listOrders("buyer_id", buyerID)
}

// ListBySeller retrieves the seller's orders joined with product details.
func (r *GormOrderRepository) ListBySeller(sellerID uint) ([]models.OrderView, error) {
	return r.listOrders("seller_id", sellerID)
}

// UpdateStatus sets both status legs on an order.
func (r *GormOrderRepository) UpdateStatus(id uint, payment models.PaymentStatus, delivery models.DeliveryStatus) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status":  payment,
			"delivery_status": delivery,
		})
	if res.Error != nil {
		return apperr.Wrap(apperr.Storage, res.Error, "failed to update status for order %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "order with ID %d not found", id)
	}
	return nil
}
