package repositories

import (
	"pasar/internal/apperr"
	"pasar/internal/models"

	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new instance of GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user in the database.
func (r *GormUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to create user")
	}
	return nil
}

func (r *GormUserRepository) getUser(cond string, arg interface{}, what string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, cond, arg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "user with %s %v not found", what, arg)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "failed to get user by %s %v", what, arg)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return r.getUser("id = ?", id, "ID")
}

// GetByUsername retrieves a user by their username from the database.
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.getUser("username = ?", username, "username")
}

// GetByEmail retrieves a user by their email from the database.
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getUser("email = ?", email, "email")
}

// GetByIDForUpdate retrieves a user and takes a row lock held until the
// enclosing transaction ends.
func (r *GormUserRepository) GetByIDForUpdate(id uint) (*models.User, error) {
	var user models.User
	err := forUpdate(r.db).First(&user, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "user with ID %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "failed to lock user %d", id)
	}
	return &user, nil
}

// ListByRoles retrieves all users holding any of the given roles.
func (r *GormUserRepository) ListByRoles(roles ...string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("role IN ?", roles).Find(&users).Error; err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "failed to list users")
	}
	return users, nil
}

// AdjustBalance applies a balance delta. Debits are guarded so the balance
// can never go negative even under concurrent writers.
func (r *GormUserRepository) AdjustBalance(id uint, delta float64) error {
	q := r.db.Model(&models.User{}).Where("id = ?", id)
	if delta < 0 {
		q = q.Where("balance >= ?", -delta)
	}
	res := q.Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return apperr.Wrap(apperr.Storage, res.Error, "failed to adjust balance for user %d", id)
	}
	if res.RowsAffected == 0 {
		if delta < 0 {
			return apperr.New(apperr.Conflict, "insufficient balance")
		}
		return apperr.New(apperr.NotFound, "user with ID %d not found", id)
	}
	return nil
}

// SetBalance overwrites the user's balance (admin override).
func (r *GormUserRepository) SetBalance(id uint, balance float64) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("balance", balance)
	if res.Error != nil {
		return apperr.Wrap(apperr.Storage, res.Error, "failed to set balance for user %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user with ID %d not found", id)
	}
	return nil
}

// Approve marks a seller account as approved.
func (r *GormUserRepository) Approve(id uint) error {
	res := r.db.Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleSeller).
		Update("approved", true)
	if res.Error != nil {
		return apperr.Wrap(apperr.Storage, res.Error, "failed to approve seller %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "seller with ID %d not found", id)
	}
	return nil
}
