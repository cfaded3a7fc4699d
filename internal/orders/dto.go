package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusmart/storefront/pkg/db/models"
	"github.com/campusmart/storefront/pkg/enums"
	"github.com/campusmart/storefront/pkg/types"
)

// Actor is the authenticated caller of an order operation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.Role
}

func (a Actor) authenticated() bool {
	return a.UserID != uuid.Nil
}

// CreateOrderItem is one submitted checkout line.
type CreateOrderItem struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries a checkout submission.
type CreateOrderInput struct {
	Items          []CreateOrderItem
	Address        *types.DeliveryAddress
	IdempotencyKey string
}

// CreateOrderResult is returned by Create. Replayed is set when the
// idempotency key matched an existing order.
type CreateOrderResult struct {
	OrderID  uuid.UUID `json:"orderId"`
	Replayed bool      `json:"-"`
}

// OrderDTO is the API shape of an order.
type OrderDTO struct {
	ID               uuid.UUID              `json:"id"`
	UserID           *uuid.UUID             `json:"userId,omitempty"`
	Amount           int64                  `json:"amount"`
	Currency         string                 `json:"currency"`
	Products         types.OrderLines       `json:"products"`
	DeliveryStatus   enums.DeliveryStatus   `json:"deliveryStatus"`
	PaymentClaimed   bool                   `json:"paymentClaimed"`
	PaymentConfirmed bool                   `json:"paymentConfirmed"`
	Address          *types.DeliveryAddress `json:"address,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

func toDTO(order models.Order) OrderDTO {
	lines := order.Products
	if lines == nil {
		lines = types.OrderLines{}
	}
	return OrderDTO{
		ID:               order.ID,
		UserID:           order.UserID,
		Amount:           order.Amount,
		Currency:         order.Currency,
		Products:         lines,
		DeliveryStatus:   order.DeliveryStatus,
		PaymentClaimed:   order.PaymentClaimed,
		PaymentConfirmed: order.PaymentConfirmed,
		Address:          order.Address,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// BatchFailure describes one order a batch transition could not apply.
type BatchFailure struct {
	OrderID uuid.UUID `json:"orderId"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// BatchResult summarises a batch transition. Succeeded items are never
// rolled back when others fail.
type BatchResult struct {
	Requested int            `json:"requested"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Failures  []BatchFailure `json:"failures"`
}
