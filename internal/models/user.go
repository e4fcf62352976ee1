package models

import "time"

// User roles.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// User represents an account in the marketplace. Balance is the user's
// ledger: buyers spend from it, sellers are credited into it.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" validate:"required,min=2,max=100"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash once stored
	Phone     string    `json:"phone" validate:"required,min=7,max=20"`
	Address   string    `json:"address" validate:"required,max=500"`
	Role      string    `json:"role" validate:"required,oneof=admin seller buyer"`
	Balance   float64   `json:"balance" gorm:"default:0" validate:"gte=0"`
	Approved  bool      `json:"approved" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Identity is the resolved authenticated caller, extracted from a verified
// token. Services receive it explicitly and perform their own role and
// ownership checks on top of it.
type Identity struct {
	ID   uint
	Role string
}
