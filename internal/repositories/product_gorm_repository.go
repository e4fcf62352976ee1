package repositories

import (
	"pasar/internal/apperr"
	"pasar/internal/models"

	"gorm.io/gorm"
)

// GormProductRepository is a GORM implementation of ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new instance of GormProductRepository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create creates a new product in the database.
func (r *GormProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to create product")
	}
	return nil
}

// GetAll retrieves all products from the database.
func (r *GormProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "failed to get all products")
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "product with ID %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "failed to get product by ID %d", id)
	}
	return &product, nil
}

// GetByIDsForUpdate batch-fetches products, taking row locks held until the
// enclosing transaction ends.
func (r *GormProductRepository) GetByIDsForUpdate(ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := forUpdate(r.db).Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "failed to lock products")
	}
	return products, nil
}

// Update updates an existing product in the database.
func (r *GormProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return apperr.Wrap(apperr.Storage, res.Error, "failed to update product")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "product with ID %d not found for update", product.ID)
	}
	return nil
}

// DecrementStock subtracts purchased quantity from stock. The guard clause
// makes an over-decrement impossible regardless of what the caller checked.
func (r *GormProductRepository) DecrementStock(id uint, amount int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))
	if res.Error != nil {
		return apperr.Wrap(apperr.Storage, res.Error, "failed to decrement stock for product %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.Conflict, "insufficient stock for product: %d", id)
	}
	return nil
}

// IncrementStock restores stock, e.g. after an order cancellation.
func (r *GormProductRepository) IncrementStock(id uint, amount int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if res.Error != nil {
		return apperr.Wrap(apperr.Storage, res.Error, "failed to increment stock for product %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "product with ID %d not found", id)
	}
	return nil
}
