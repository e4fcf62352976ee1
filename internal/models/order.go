package models

import "time"

// PaymentStatus is the payment leg of an order's state.
type PaymentStatus string

// DeliveryStatus is the fulfillment leg of an order's state.
type DeliveryStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCanceled  PaymentStatus = "canceled"

	DeliveryPending   DeliveryStatus = "pending"
	DeliveryShipped   DeliveryStatus = "shipped"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCanceled  DeliveryStatus = "canceled"
)

var validPaymentStatuses = map[PaymentStatus]bool{
	PaymentPending:   true,
	PaymentCompleted: true,
	PaymentFailed:    true,
	PaymentCanceled:  true,
}

var validDeliveryStatuses = map[DeliveryStatus]bool{
	DeliveryPending:   true,
	DeliveryShipped:   true,
	DeliveryDelivered: true,
	DeliveryCanceled:  true,
}

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool { return validPaymentStatuses[s] }

// Valid reports whether s is a known delivery status.
func (s DeliveryStatus) Valid() bool { return validDeliveryStatuses[s] }

// Order is one purchased line item. Total is snapshotted at purchase time
// and never recomputed; only the status fields may change afterwards.
type Order struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	BuyerID        uint           `json:"buyerId" gorm:"index"`
	SellerID       uint           `json:"sellerId" gorm:"index"`
	ProductID      uint           `json:"productId"`
	Quantity       int            `json:"quantity"`
	Total          float64        `json:"total"`
	PaymentStatus  PaymentStatus  `json:"paymentStatus" gorm:"type:varchar(20)"`
	DeliveryStatus DeliveryStatus `json:"deliveryStatus" gorm:"type:varchar(20)"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Canceled reports whether the order has reached the terminal
// canceled/canceled state.
func (o *Order) Canceled() bool {
	return o.PaymentStatus == PaymentCanceled && o.DeliveryStatus == DeliveryCanceled
}

// Cancelable reports whether the buyer may still cancel: both legs must be
// exactly pending.
func (o *Order) Cancelable() bool {
	return o.PaymentStatus == PaymentPending && o.DeliveryStatus == DeliveryPending
}

// OrderView is an order joined with its product's display fields, as
// returned by the order listing endpoints.
type OrderView struct {
	Order
	Description string `json:"description"`
	Image       string `json:"image"`
}
