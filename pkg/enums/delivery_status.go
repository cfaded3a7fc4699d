package enums

import "fmt"

// DeliveryStatus tracks the physical delivery axis of an order.
type DeliveryStatus string

const (
	DeliveryStatusPending    DeliveryStatus = "pending"
	DeliveryStatusDispatched DeliveryStatus = "dispatched"
	DeliveryStatusDelivered  DeliveryStatus = "delivered"
)

var validDeliveryStatuses = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusDispatched,
	DeliveryStatusDelivered,
}

func (d DeliveryStatus) String() string {
	return string(d)
}

func (d DeliveryStatus) IsValid() bool {
	return d.rank() >= 0
}

// CanAdvanceTo reports whether moving to next keeps delivery monotonic.
// Staying in place is allowed; skipping forward is allowed.
func (d DeliveryStatus) CanAdvanceTo(next DeliveryStatus) bool {
	from, to := d.rank(), next.rank()
	if from < 0 || to < 0 {
		return false
	}
	return to >= from
}

func (d DeliveryStatus) rank() int {
	for i, candidate := range validDeliveryStatuses {
		if candidate == d {
			return i
		}
	}
	return -1
}

// ParseDeliveryStatus converts raw input into DeliveryStatus.
func ParseDeliveryStatus(value string) (DeliveryStatus, error) {
	for _, candidate := range validDeliveryStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery status %q", value)
}
