package repositories

import "pasar/internal/models"

// SellerRepository defines the interface for seller profile and approval
// data access.
type SellerRepository interface {
	CreateProfile(profile *models.SellerProfile) error
	GetProfile(userID uint) (*models.SellerProfile, error)
	ListPending() ([]models.PendingSeller, error)
	RecordApproval(approval *models.SellerApproval) error
	ListApprovals() ([]models.ApprovalRecord, error)
}
