package models

import "time"

// Product is a listing owned by a seller. Quantity is live stock: the
// checkout engine decrements it on purchase and restores it on cancellation.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SellerID    uint      `json:"sellerId" gorm:"index"`
	Image       string    `json:"image" validate:"required,max=500"`
	Description string    `json:"description" validate:"required,max=500"`
	Price       float64   `json:"price" validate:"required,gt=0"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
