package services

import (
	"encoding/json"
	"log"
	"time"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/pkg/rabbitmq"

	"github.com/google/uuid"
)

// CheckoutItem is one line item in a checkout request. CartEntryID is set
// when the item originated from the buyer's cart, so the engine can clean the
// entry up. SellerID is optional; when the client supplies it, it must match
// the product's actual owner.
type CheckoutItem struct {
	CartEntryID int `json:"id"`
	ProductID   int `json:"productId"`
	Quantity    int `json:"quantity"`
	SellerID    int `json:"sellerId"`
}

// CheckoutOrder describes one order produced by a checkout.
type CheckoutOrder struct {
	OrderID  uint    `json:"orderId"`
	SellerID uint    `json:"sellerId"`
	Total    float64 `json:"total"`
}

// CheckoutResult is the outcome of a successful checkout.
type CheckoutResult struct {
	Orders []CheckoutOrder `json:"orders"`
	Total  float64         `json:"total"`
}

// orderCreatedEvent is the payload published to the order events queue after
// a checkout commits.
type orderCreatedEvent struct {
	EventID   string          `json:"event_id"`
	BuyerID   uint            `json:"buyer_id"`
	Total     float64         `json:"total"`
	Orders    []CheckoutOrder `json:"orders"`
	CreatedAt time.Time       `json:"created_at"`
}

// CheckoutService is the checkout engine: it validates cart contents against
// live inventory and buyer balance, then atomically creates orders,
// decrements stock and settles funds between buyer and sellers.
type CheckoutService struct {
	store    repositories.Store
	mqClient *rabbitmq.Client
}

// NewCheckoutService creates a new CheckoutService. mqClient may be nil, in
// which case no events are published.
func NewCheckoutService(store repositories.Store, mqClient *rabbitmq.Client) *CheckoutService {
	return &CheckoutService{store: store, mqClient: mqClient}
}

// ProcessCheckout converts the given items into orders. Validation runs in
// full before any mutation; the mutations (order inserts, stock decrements,
// cart cleanup and balance transfers) apply inside a single transaction or
// not at all. fromCart marks that the items came from the
// buyer's cart, so their cart entries are deleted as part of the same
// transaction.
//
// Two concurrent checkouts over the same product or the same buyer serialize
// on the product and user row locks: the loser of a stock or balance race
// gets a conflict, never a negative quantity or balance.
func (s *CheckoutService) ProcessCheckout(buyer models.Identity, items []CheckoutItem, fromCart bool) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, apperr.New(apperr.Validation, "payment items are required")
	}
	for _, item := range items {
		if item.ProductID <= 0 || item.Quantity <= 0 {
			return nil, apperr.New(apperr.Validation, "invalid item data: productId and quantity must be positive integers")
		}
		if item.SellerID < 0 {
			return nil, apperr.New(apperr.Validation, "invalid sellerId")
		}
	}

	result := &CheckoutResult{}
	err := s.store.WithinTx(func(tx repositories.Store) error {
		// Lock every touched product row up front; the locks are held until
		// commit so the stock checks below stay valid.
		productIDs := make([]uint, 0, len(items))
		for _, item := range items {
			productIDs = append(productIDs, uint(item.ProductID))
		}
		products, err := tx.Products().GetByIDsForUpdate(productIDs)
		if err != nil {
			return err
		}
		productMap := make(map[uint]models.Product, len(products))
		for _, p := range products {
			productMap[p.ID] = p
		}

		var total float64
		for _, item := range items {
			product, ok := productMap[uint(item.ProductID)]
			if !ok {
				return apperr.New(apperr.NotFound, "product not found: %d", item.ProductID)
			}
			if item.SellerID != 0 && uint(item.SellerID) != product.SellerID {
				return apperr.New(apperr.Validation, "seller mismatch for product %d", item.ProductID)
			}
			if product.Quantity < item.Quantity {
				return apperr.New(apperr.Conflict, "insufficient stock for product: %d", item.ProductID)
			}
			// Current price, not whatever the client or the cart cached.
			total += product.Price * float64(item.Quantity)
		}

		buyerRow, err := tx.Users().GetByIDForUpdate(buyer.ID)
		if err != nil {
			return err
		}
		if buyerRow.Balance < total {
			return apperr.New(apperr.Conflict, "insufficient balance")
		}

		// Validation complete; everything below mutates.
		sellerCredits := make(map[uint]float64)
		for _, item := range items {
			product := productMap[uint(item.ProductID)]
			itemTotal := product.Price * float64(item.Quantity)

			order := &models.Order{
				BuyerID:        buyer.ID,
				SellerID:       product.SellerID,
				ProductID:      product.ID,
				Quantity:       item.Quantity,
				Total:          itemTotal,
				PaymentStatus:  models.PaymentCompleted,
				DeliveryStatus: models.DeliveryPending,
			}
			if err := tx.Orders().Create(order); err != nil {
				return err
			}
			result.Orders = append(result.Orders, CheckoutOrder{
				OrderID:  order.ID,
				SellerID: product.SellerID,
				Total:    itemTotal,
			})

			if err := tx.Products().DecrementStock(product.ID, item.Quantity); err != nil {
				return err
			}

			if fromCart && item.CartEntryID > 0 {
				entry, err := tx.Carts().GetEntry(uint(item.CartEntryID))
				if err == nil && entry.BuyerID == buyer.ID {
					if err := tx.Carts().Delete(entry.ID); err != nil {
						return err
					}
				}
			}

			sellerCredits[product.SellerID] += itemTotal
		}

		if err := tx.Users().AdjustBalance(buyer.ID, -total); err != nil {
			return err
		}
		// One aggregated credit per seller, however many line items they had.
		for sellerID, credit := range sellerCredits {
			if err := tx.Users().AdjustBalance(sellerID, credit); err != nil {
				return err
			}
		}

		result.Total = total
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderCreated(buyer.ID, result)
	log.Printf("Payment processed for buyerId %d, total: %.2f, orders: %d", buyer.ID, result.Total, len(result.Orders))
	return result, nil
}

// publishOrderCreated emits an order.created event. Event delivery is
// best-effort: the checkout has already committed, so failures only log.
func (s *CheckoutService) publishOrderCreated(buyerID uint, result *CheckoutResult) {
	if s.mqClient == nil {
		return
	}
	event := orderCreatedEvent{
		EventID:   uuid.New().String(),
		BuyerID:   buyerID,
		Total:     result.Total,
		Orders:    result.Orders,
		CreatedAt: time.Now(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order.created event: %v", err)
		return
	}
	if err := s.mqClient.Publish("order.created", body); err != nil {
		log.Printf("Warning: Failed to publish order.created event for buyer %d: %v", buyerID, err)
	}
}
