package models

// CartEntry is a pending selection by a buyer. Stock is checked when the
// entry is added, but only the checkout revalidation is authoritative.
type CartEntry struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	BuyerID   uint `json:"buyerId" gorm:"index"`
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// CartItem is a cart entry joined with its product's display fields.
type CartItem struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"productId"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}
