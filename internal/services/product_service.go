package services

import (
	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct lists a new product owned by the calling seller.
func (s *ProductService) CreateProduct(seller models.Identity, product *models.Product) error {
	if seller.Role != models.RoleSeller {
		return apperr.New(apperr.Authorization, "only sellers can add products")
	}
	if product.Price <= 0 || product.Quantity < 0 {
		return apperr.New(apperr.Validation, "price must be positive and quantity non-negative")
	}
	product.SellerID = seller.ID
	return s.repo.Create(product)
}

// UpdateProduct lets the owning seller change a listing's details.
func (s *ProductService) UpdateProduct(seller models.Identity, product *models.Product) error {
	if seller.Role != models.RoleSeller {
		return apperr.New(apperr.Authorization, "only sellers can update products")
	}
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing.SellerID != seller.ID {
		return apperr.New(apperr.Authorization, "product belongs to another seller")
	}
	if product.Price <= 0 || product.Quantity < 0 {
		return apperr.New(apperr.Validation, "price must be positive and quantity non-negative")
	}
	product.SellerID = existing.SellerID
	product.CreatedAt = existing.CreatedAt
	return s.repo.Update(product)
}
