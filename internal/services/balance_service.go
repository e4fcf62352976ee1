package services

import (
	"log"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// BalanceService handles the ledger operations outside checkout: reading a
// balance, buyer top-ups and the admin override.
type BalanceService struct {
	userRepo repositories.UserRepository
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(userRepo repositories.UserRepository) *BalanceService {
	return &BalanceService{userRepo: userRepo}
}

// GetBalance returns the caller's own balance.
func (s *BalanceService) GetBalance(identity models.Identity) (float64, error) {
	user, err := s.userRepo.GetByID(identity.ID)
	if err != nil {
		return 0, err
	}
	return user.Balance, nil
}

// TopUp adds funds to a buyer's own balance.
func (s *BalanceService) TopUp(buyer models.Identity, amount float64) error {
	if buyer.Role != models.RoleBuyer {
		return apperr.New(apperr.Authorization, "only buyers can add balance")
	}
	if amount <= 0 {
		return apperr.New(apperr.Validation, "valid amount is required")
	}
	if err := s.userRepo.AdjustBalance(buyer.ID, amount); err != nil {
		return err
	}
	log.Printf("Added %.2f to balance for userId %d", amount, buyer.ID)
	return nil
}

// SetBalance is the admin override: it overwrites the target user's balance.
func (s *BalanceService) SetBalance(admin models.Identity, targetID uint, balance float64) error {
	if admin.Role != models.RoleAdmin {
		return apperr.New(apperr.Authorization, "only admins can update balances")
	}
	if targetID == 0 || balance < 0 {
		return apperr.New(apperr.Validation, "user ID and a non-negative balance are required")
	}
	if err := s.userRepo.SetBalance(targetID, balance); err != nil {
		return err
	}
	log.Printf("Balance updated for userId %d to %.2f by adminId %d", targetID, balance, admin.ID)
	return nil
}
