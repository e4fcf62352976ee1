package services

import (
	"encoding/json"
	"log"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/rabbitmq"

	"github.com/google/uuid"
)

// OrderService manages orders after creation: listing, seller status updates
// and buyer cancellation with stock restoration.
type OrderService struct {
	store    repositories.Store
	mqClient *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil.
func NewOrderService(store repositories.Store, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{store: store, mqClient: mqClient}
}

// ListOrders returns the caller's orders: purchases for buyers, sales for
// sellers.
func (s *OrderService) ListOrders(identity models.Identity) ([]models.OrderView, error) {
	if identity.Role == models.RoleBuyer {
		return s.store.Orders().ListByBuyer(identity.ID)
	}
	return s.store.Orders().ListBySeller(identity.ID)
}

// GetOrder returns a single order by ID.
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	return s.store.Orders().GetByID(id)
}

// UpdateStatus lets the seller who owns an order set both status legs. An
// unknown order and an order owned by another seller produce the same error,
// so callers cannot probe for order existence. Canceled orders are terminal,
// and cancellation itself is reserved for the buyer cancel path.
func (s *OrderService) UpdateStatus(orderID uint, seller models.Identity, payment models.PaymentStatus, delivery models.DeliveryStatus) error {
	if seller.Role != models.RoleSeller {
		return apperr.New(apperr.Authorization, "only sellers can update order status")
	}
	if payment == "" || delivery == "" {
		return apperr.New(apperr.Validation, "payment status and delivery status are required")
	}
	if !payment.Valid() || !delivery.Valid() ||
		payment == models.PaymentCanceled || delivery == models.DeliveryCanceled {
		return apperr.New(apperr.Validation, "invalid status: paymentStatus=%s, deliveryStatus=%s", payment, delivery)
	}

	return s.store.WithinTx(func(tx repositories.Store) error {
		order, err := tx.Orders().GetByID(orderID)
		if err != nil {
			if apperr.IsKind(err, apperr.NotFound) {
				return apperr.New(apperr.NotFound, "order not found or unauthorized")
			}
			return err
		}
		if order.SellerID != seller.ID {
			return apperr.New(apperr.NotFound, "order not found or unauthorized")
		}
		if order.Canceled() {
			return apperr.New(apperr.Conflict, "order is canceled")
		}
		return tx.Orders().UpdateStatus(orderID, payment, delivery)
	})
}

// Cancel cancels an order on behalf of its buyer. Only orders still at
// (pending, pending) qualify. The status change is transactional; restoring
// the product's stock is a compensating write afterwards, whose failure is
// logged but does not undo the cancellation.
func (s *OrderService) Cancel(orderID uint, requester models.Identity) error {
	var canceled models.Order
	err := s.store.WithinTx(func(tx repositories.Store) error {
		order, err := tx.Orders().GetByID(orderID)
		if err != nil {
			if apperr.IsKind(err, apperr.NotFound) {
				return apperr.New(apperr.NotFound, "order not found or cannot be canceled")
			}
			return err
		}
		if !order.Cancelable() {
			return apperr.New(apperr.Conflict, "order not found or cannot be canceled")
		}
		if order.BuyerID != requester.ID {
			return apperr.New(apperr.Authorization, "unauthorized")
		}
		canceled = *order
		return tx.Orders().UpdateStatus(orderID, models.PaymentCanceled, models.DeliveryCanceled)
	})
	if err != nil {
		return err
	}

	// Compensating restock, outside the cancellation's atomic boundary.
	if err := s.store.Products().IncrementStock(canceled.ProductID, canceled.Quantity); err != nil {
		log.Printf("Stock restore failed for product %d after canceling order %d: %v", canceled.ProductID, orderID, err)
	}

	s.publishOrderCanceled(&canceled)
	log.Printf("Order canceled: orderId %d, userId %d", orderID, requester.ID)
	return nil
}

func (s *OrderService) publishOrderCanceled(order *models.Order) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"event_id": uuid.New().String(),
		"order_id": order.ID,
		"buyer_id": order.BuyerID,
	})
	if err != nil {
		log.Printf("Failed to marshal order.canceled event: %v", err)
		return
	}
	if err := s.mqClient.Publish("order.canceled", body); err != nil {
		log.Printf("Warning: Failed to publish order.canceled event for order %d: %v", order.ID, err)
	}
}
