package orders

import (
	"github.com/google/uuid"

	internalorders "github.com/campusmart/storefront/internal/orders"
	"github.com/campusmart/storefront/pkg/types"
)

type createOrderItem struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1,max=99"`
}

type createOrderRequest struct {
	Items   []createOrderItem      `json:"items" validate:"max=100,dive"`
	Address *types.DeliveryAddress `json:"address" validate:"omitempty"`
}

func (r createOrderRequest) toInput(idempotencyKey string) internalorders.CreateOrderInput {
	items := make([]internalorders.CreateOrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, internalorders.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return internalorders.CreateOrderInput{
		Items:          items,
		Address:        r.Address,
		IdempotencyKey: idempotencyKey,
	}
}

type paymentClaimRequest struct {
	Claimed *bool `json:"claimed"`
}

type updateDeliveryRequest struct {
	DeliveryStatus string `json:"deliveryStatus" validate:"required"`
}

type batchRequest struct {
	OrderIDs []uuid.UUID `json:"orderIds" validate:"required,min=1"`
}
