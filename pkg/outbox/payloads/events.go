package payloads

import (
	"github.com/google/uuid"

	"github.com/campusmart/storefront/pkg/enums"
)

// OrderItem is the quantity of one product taken by an order.
type OrderItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// OrderCreatedEvent is emitted in the order-create transaction.
type OrderCreatedEvent struct {
	OrderID  uuid.UUID   `json:"order_id"`
	UserID   *uuid.UUID  `json:"user_id,omitempty"`
	Amount   int64       `json:"amount"`
	Currency string      `json:"currency"`
	Items    []OrderItem `json:"items"`
}

// PaymentClaimEvent records a customer claiming or revoking payment.
type PaymentClaimEvent struct {
	OrderID uuid.UUID `json:"order_id"`
	UserID  uuid.UUID `json:"user_id"`
	Claimed bool      `json:"claimed"`
}

// PaymentConfirmedEvent records an admin confirming payment.
type PaymentConfirmedEvent struct {
	OrderID uuid.UUID `json:"order_id"`
}

// DeliveryStatusChangedEvent records a forward delivery transition.
type DeliveryStatusChangedEvent struct {
	OrderID uuid.UUID            `json:"order_id"`
	From    enums.DeliveryStatus `json:"from"`
	To      enums.DeliveryStatus `json:"to"`
}

// OrderDeletedEvent records an admin deleting an unpaid order.
type OrderDeletedEvent struct {
	OrderID uuid.UUID `json:"order_id"`
}

// StockDepletedEvent is emitted when a sale takes a product to zero stock.
type StockDepletedEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}
