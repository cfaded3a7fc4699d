package cart

import "github.com/google/uuid"

type addItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type checkoutReferenceRequest struct {
	OrderID uuid.UUID `json:"orderId" validate:"required"`
}
