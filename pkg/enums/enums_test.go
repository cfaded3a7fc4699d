package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = ParseRole("staff")
	assert.Error(t, err)
	assert.False(t, Role("staff").IsValid())
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleAdmin.Allows(CapabilityConfirmPayment))
	assert.True(t, RoleAdmin.Allows(CapabilityManageDelivery))
	assert.False(t, RoleCustomer.Allows(CapabilityConfirmPayment))
	assert.False(t, RoleCustomer.Allows(CapabilityDeleteOrder))
	assert.False(t, Role("").Allows(CapabilityReadInbox))
}

func TestDeliveryStatusMonotonic(t *testing.T) {
	tests := []struct {
		from, to DeliveryStatus
		want     bool
	}{
		{DeliveryStatusPending, DeliveryStatusDispatched, true},
		{DeliveryStatusPending, DeliveryStatusDelivered, true},
		{DeliveryStatusDispatched, DeliveryStatusDelivered, true},
		{DeliveryStatusDispatched, DeliveryStatusDispatched, true},
		{DeliveryStatusDelivered, DeliveryStatusDispatched, false},
		{DeliveryStatusDispatched, DeliveryStatusPending, false},
		{DeliveryStatusPending, DeliveryStatus("lost"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanAdvanceTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseDeliveryStatus(t *testing.T) {
	status, err := ParseDeliveryStatus("dispatched")
	require.NoError(t, err)
	assert.Equal(t, DeliveryStatusDispatched, status)

	_, err = ParseDeliveryStatus("DISPATCHED")
	assert.Error(t, err)
}

func TestDeliveryEvent(t *testing.T) {
	event, ok := DeliveryEvent(DeliveryStatusDelivered)
	assert.True(t, ok)
	assert.Equal(t, EventOrderDelivered, event)

	_, ok = DeliveryEvent(DeliveryStatusPending)
	assert.False(t, ok)
}

func TestParseOutboxEventType(t *testing.T) {
	event, err := ParseOutboxEventType("order.created")
	require.NoError(t, err)
	assert.True(t, event.IsValid())

	_, err = ParseOutboxEventType("order.exploded")
	assert.Error(t, err)
	assert.True(t, AggregateOrder.IsValid())
}
