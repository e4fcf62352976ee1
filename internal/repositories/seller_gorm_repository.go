package repositories

import (
	"pasar/internal/apperr"
	"pasar/internal/models"

	"gorm.io/gorm"
)

// GormSellerRepository is a GORM implementation of SellerRepository.
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new instance of GormSellerRepository.
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// CreateProfile stores a seller's submitted business details.
func (r *GormSellerRepository) CreateProfile(profile *models.SellerProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to create seller profile")
	}
	return nil
}

// GetProfile retrieves the profile for a seller user.
func (r *GormSellerRepository) GetProfile(userID uint) (*models.SellerProfile, error) {
	var profile models.SellerProfile
	if err := r.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.New(apperr.NotFound, "seller profile for user %d not found", userID)
		}
		return nil, apperr.Wrap(apperr.Storage, err, "failed to get seller profile for user %d", userID)
	}
	return &profile, nil
}

// ListPending retrieves unapproved sellers joined with their profiles.
func (r *GormSellerRepository) ListPending() ([]models.PendingSeller, error) {
	var pending []models.PendingSeller
	err := r.db.Table("users").
		Select("users.id, users.name, users.email, seller_profiles.msme_number, seller_profiles.address, seller_profiles.aadhaar_number, seller_profiles.account_number").
		Joins("JOIN seller_profiles ON seller_profiles.user_id = users.id").
		Where("users.approved = ? AND users.role = ?", false, models.RoleSeller).
		Scan(&pending).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "failed to list pending sellers")
	}
	return pending, nil
}

// RecordApproval inserts an approval audit row.
func (r *GormSellerRepository) RecordApproval(approval *models.SellerApproval) error {
	if err := r.db.Create(approval).Error; err != nil {
		return apperr.Wrap(apperr.Storage, err, "failed to record seller approval")
	}
	return nil
}

// ListApprovals retrieves approval history, newest first.
func (r *GormSellerRepository) ListApprovals() ([]models.ApprovalRecord, error) {
	var records []models.ApprovalRecord
	err := r.db.Table("seller_approvals").
		Select("seller_approvals.id, seller_approvals.user_id, seller_approvals.admin_id, seller_approvals.approved_at, sellers.name AS seller_name, sellers.email AS seller_email, admins.name AS admin_name").
		Joins("JOIN users AS sellers ON sellers.id = seller_approvals.user_id").
		Joins("JOIN users AS admins ON admins.id = seller_approvals.admin_id").
		Order("seller_approvals.approved_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, err, "failed to list approval history")
	}
	return records, nil
}
