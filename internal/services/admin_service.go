package services

import (
	"log"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// AdminService handles seller onboarding and the admin views over users and
// approvals.
type AdminService struct {
	store repositories.Store
}

// NewAdminService creates a new AdminService.
func NewAdminService(store repositories.Store) *AdminService {
	return &AdminService{store: store}
}

// SubmitSellerProfile records a seller's business details for approval. The
// target user must already be registered with the seller role.
func (s *AdminService) SubmitSellerProfile(profile *models.SellerProfile) error {
	user, err := s.store.Users().GetByID(profile.UserID)
	if err != nil || user.Role != models.RoleSeller {
		return apperr.New(apperr.Validation, "invalid user ID or user is not a seller")
	}
	if err := s.store.Sellers().CreateProfile(profile); err != nil {
		return err
	}
	log.Printf("Seller registered: userId %d", profile.UserID)
	return nil
}

// PendingSellers lists sellers awaiting approval.
func (s *AdminService) PendingSellers(admin models.Identity) ([]models.PendingSeller, error) {
	if admin.Role != models.RoleAdmin {
		return nil, apperr.New(apperr.Authorization, "only admins can list pending sellers")
	}
	return s.store.Sellers().ListPending()
}

// ApproveSeller marks a pending seller as approved and records the approval.
// Both writes share one transaction.
func (s *AdminService) ApproveSeller(admin models.Identity, sellerID uint) error {
	if admin.Role != models.RoleAdmin {
		return apperr.New(apperr.Authorization, "only admins can approve sellers")
	}
	err := s.store.WithinTx(func(tx repositories.Store) error {
		user, err := tx.Users().GetByID(sellerID)
		if err != nil || user.Role != models.RoleSeller || user.Approved {
			return apperr.New(apperr.NotFound, "seller not found or already approved")
		}
		if err := tx.Users().Approve(sellerID); err != nil {
			return err
		}
		return tx.Sellers().RecordApproval(&models.SellerApproval{
			UserID:  sellerID,
			AdminID: admin.ID,
		})
	})
	if err != nil {
		return err
	}
	log.Printf("Seller approved: userId %d by adminId %d", sellerID, admin.ID)
	return nil
}

// ApprovalHistory lists past approvals, newest first.
func (s *AdminService) ApprovalHistory(admin models.Identity) ([]models.ApprovalRecord, error) {
	if admin.Role != models.RoleAdmin {
		return nil, apperr.New(apperr.Authorization, "only admins can view approval history")
	}
	return s.store.Sellers().ListApprovals()
}

// AllUsers lists every buyer and seller account.
func (s *AdminService) AllUsers(admin models.Identity) ([]models.User, error) {
	if admin.Role != models.RoleAdmin {
		return nil, apperr.New(apperr.Authorization, "only admins can list users")
	}
	return s.store.Users().ListByRoles(models.RoleBuyer, models.RoleSeller)
}
