package services

import (
	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// CartService handles the buyer's pending selections. Stock is checked when
// an entry is added, but stock may move before checkout; the checkout engine
// revalidates.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// AddToCart adds a product selection to the buyer's cart.
func (s *CartService) AddToCart(buyer models.Identity, productID uint, quantity int) (*models.CartEntry, error) {
	if buyer.Role != models.RoleBuyer {
		return nil, apperr.New(apperr.Authorization, "only buyers can add to cart")
	}
	if productID == 0 || quantity <= 0 {
		return nil, apperr.New(apperr.Validation, "product ID and a positive quantity are required")
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product.Quantity < quantity {
		return nil, apperr.New(apperr.Conflict, "insufficient stock for product: %d", productID)
	}

	entry := &models.CartEntry{BuyerID: buyer.ID, ProductID: productID, Quantity: quantity}
	if err := s.cartRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetCart returns the buyer's cart joined with product details.
func (s *CartService) GetCart(buyer models.Identity) ([]models.CartItem, error) {
	if buyer.Role != models.RoleBuyer {
		return nil, apperr.New(apperr.Authorization, "only buyers have a cart")
	}
	return s.cartRepo.GetByBuyer(buyer.ID)
}

// RemoveEntry deletes one entry from the buyer's own cart.
func (s *CartService) RemoveEntry(buyer models.Identity, entryID uint) error {
	entry, err := s.cartRepo.GetEntry(entryID)
	if err != nil {
		return err
	}
	if entry.BuyerID != buyer.ID {
		return apperr.New(apperr.Authorization, "unauthorized")
	}
	return s.cartRepo.Delete(entryID)
}

// ClearCart removes everything from the buyer's cart.
func (s *CartService) ClearCart(buyer models.Identity) error {
	return s.cartRepo.ClearByBuyer(buyer.ID)
}
