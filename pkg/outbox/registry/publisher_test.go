package registry

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmart/storefront/pkg/config"
	"github.com/campusmart/storefront/pkg/db/models"
	"github.com/campusmart/storefront/pkg/enums"
	"github.com/campusmart/storefront/pkg/outbox"
	"github.com/campusmart/storefront/pkg/outbox/payloads"
)

func newTestEventRegistry(t *testing.T) *EventRegistry {
	t.Helper()
	reg, err := NewEventRegistry(config.PubSubConfig{OrdersTopic: "orders-topic"})
	require.NoError(t, err)
	return reg
}

func mustEnvelope(t *testing.T, data any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	envelope, err := json.Marshal(outbox.PayloadEnvelope{
		Version:    outbox.CurrentVersion,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Data:       raw,
	})
	require.NoError(t, err)
	return envelope
}

func TestNewEventRegistryRequiresTopic(t *testing.T) {
	_, err := NewEventRegistry(config.PubSubConfig{})
	assert.Error(t, err)
}

func TestEventRegistryResolveOrderCreated(t *testing.T) {
	reg := newTestEventRegistry(t)
	orderID := uuid.New()
	productID := uuid.New()

	resolved, err := reg.Resolve(models.OutboxEvent{
		EventType:     enums.EventOrderCreated,
		AggregateType: enums.AggregateOrder,
		AggregateID:   orderID,
		Payload: mustEnvelope(t, payloads.OrderCreatedEvent{
			OrderID:  orderID,
			Amount:   2500,
			Currency: "NGN",
			Items:    []payloads.OrderItem{{ProductID: productID, Quantity: 2}},
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, "orders-topic", resolved.Descriptor.Topic)

	payload, ok := resolved.Payload.(*payloads.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, int64(2500), payload.Amount)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, productID, payload.Items[0].ProductID)
}

func TestEventRegistryResolveDeliveryEvents(t *testing.T) {
	reg := newTestEventRegistry(t)
	for _, status := range []enums.DeliveryStatus{enums.DeliveryStatusDispatched, enums.DeliveryStatusDelivered} {
		eventType, ok := enums.DeliveryEvent(status)
		require.True(t, ok)

		resolved, err := reg.Resolve(models.OutboxEvent{
			EventType:     eventType,
			AggregateType: enums.AggregateOrder,
			AggregateID:   uuid.New(),
			Payload:       mustEnvelope(t, payloads.DeliveryStatusChangedEvent{To: status}),
		})
		require.NoError(t, err)
		payload := resolved.Payload.(*payloads.DeliveryStatusChangedEvent)
		assert.Equal(t, status, payload.To)
	}
}

func TestEventRegistryRejectsBadRows(t *testing.T) {
	reg := newTestEventRegistry(t)

	cases := map[string]models.OutboxEvent{
		"unknown type": {
			EventType:     "order.exploded",
			AggregateType: enums.AggregateOrder,
			AggregateID:   uuid.New(),
			Payload:       mustEnvelope(t, map[string]string{}),
		},
		"aggregate mismatch": {
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateProduct,
			AggregateID:   uuid.New(),
			Payload:       mustEnvelope(t, payloads.OrderCreatedEvent{}),
		},
		"missing aggregate": {
			EventType:     enums.EventOrderDeleted,
			AggregateType: enums.AggregateOrder,
			Payload:       mustEnvelope(t, payloads.OrderDeletedEvent{}),
		},
		"null data": {
			EventType:     enums.EventOrderDeleted,
			AggregateType: enums.AggregateOrder,
			AggregateID:   uuid.New(),
			Payload:       mustEnvelope(t, nil),
		},
		"garbage envelope": {
			EventType:     enums.EventOrderDeleted,
			AggregateType: enums.AggregateOrder,
			AggregateID:   uuid.New(),
			Payload:       json.RawMessage(`{`),
		},
	}

	for name, event := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := reg.Resolve(event)
			require.Error(t, err)
			var nonRetryable NonRetryableError
			assert.True(t, errors.As(err, &nonRetryable))
		})
	}
}
