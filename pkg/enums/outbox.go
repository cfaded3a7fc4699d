package enums

import "fmt"

// OutboxAggregateType names the entity an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder   OutboxAggregateType = "order"
	AggregateProduct OutboxAggregateType = "product"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateOrder,
	AggregateProduct,
}

// IsValid reports whether the value is a known aggregate type.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// OutboxEventType names a domain event relayed to Pub/Sub.
type OutboxEventType string

const (
	EventOrderCreated         OutboxEventType = "order.created"
	EventPaymentClaimed       OutboxEventType = "order.payment_claimed"
	EventPaymentClaimRevoked  OutboxEventType = "order.payment_claim_revoked"
	EventPaymentConfirmed     OutboxEventType = "order.payment_confirmed"
	EventOrderDispatched      OutboxEventType = "order.dispatched"
	EventOrderDelivered       OutboxEventType = "order.delivered"
	EventOrderDeleted         OutboxEventType = "order.deleted"
	EventProductStockDepleted OutboxEventType = "product.stock_depleted"
)

var validEventTypes = []OutboxEventType{
	EventOrderCreated,
	EventPaymentClaimed,
	EventPaymentClaimRevoked,
	EventPaymentConfirmed,
	EventOrderDispatched,
	EventOrderDelivered,
	EventOrderDeleted,
	EventProductStockDepleted,
}

func (e OutboxEventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known event type.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}

// DeliveryEvent maps a delivery status onto the event emitted when an order reaches it.
func DeliveryEvent(status DeliveryStatus) (OutboxEventType, bool) {
	switch status {
	case DeliveryStatusDispatched:
		return EventOrderDispatched, true
	case DeliveryStatusDelivered:
		return EventOrderDelivered, true
	}
	return "", false
}
