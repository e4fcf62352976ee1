package models

import "time"

// SellerProfile holds the business details a seller submits for approval.
// Document storage is out of scope; only the reference numbers are kept.
type SellerProfile struct {
	UserID        uint      `json:"user_id" gorm:"primaryKey"`
	MSMENumber    string    `json:"msme_number" validate:"required,max=50"`
	Address       string    `json:"address" validate:"required,max=500"`
	AadhaarNumber string    `json:"aadhaar_number" validate:"required,max=20"`
	AccountNumber string    `json:"account_number" validate:"required,max=30"`
	CreatedAt     time.Time `json:"created_at"`
}

// SellerApproval records which admin approved which seller, and when.
type SellerApproval struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id"`
	AdminID    uint      `json:"admin_id"`
	ApprovedAt time.Time `json:"approved_at" gorm:"autoCreateTime"`
}

// PendingSeller is an unapproved seller joined with their profile, as shown
// to admins.
type PendingSeller struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	MSMENumber    string `json:"msme_number"`
	Address       string `json:"address"`
	AadhaarNumber string `json:"aadhaar_number"`
	AccountNumber string `json:"account_number"`
}

// ApprovalRecord is a seller approval joined with the names of the parties.
type ApprovalRecord struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	AdminID     uint      `json:"admin_id"`
	ApprovedAt  time.Time `json:"approved_at"`
	SellerName  string    `json:"seller_name"`
	SellerEmail string    `json:"seller_email"`
	AdminName   string    `json:"admin_name"`
}
