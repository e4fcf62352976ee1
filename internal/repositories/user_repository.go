package repositories

import "pasar/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetByIDForUpdate locks the user's row for the rest of the enclosing
	// transaction before returning it.
	GetByIDForUpdate(id uint) (*models.User, error)
	ListByRoles(roles ...string) ([]models.User, error)
	// AdjustBalance adds delta to the user's balance. A debit that would
	// take the balance negative fails with a conflict.
	AdjustBalance(id uint, delta float64) error
	SetBalance(id uint, balance float64) error
	Approve(id uint) error
}
