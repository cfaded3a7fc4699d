package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campusmart/storefront/pkg/db/dbtest"
	"github.com/campusmart/storefront/pkg/db/models"
	"github.com/campusmart/storefront/pkg/enums"
	"github.com/campusmart/storefront/pkg/outbox/payloads"
)

func TestEmitWritesEnvelope(t *testing.T) {
	client := dbtest.NewSQLite(t, "outbox_emit")
	repo := NewRepository(client.DB())
	svc := NewService(repo, nil)
	orderID := uuid.New()
	userID := uuid.New()

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.EventPaymentClaimed,
			AggregateType: enums.AggregateOrder,
			AggregateID:   orderID,
			Actor:         &ActorRef{UserID: userID, Role: enums.RoleCustomer},
			Data:          payloads.PaymentClaimEvent{OrderID: orderID, UserID: userID, Claimed: true},
		})
	})
	require.NoError(t, err)

	var rows []models.OutboxEvent
	require.NoError(t, client.DB().Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.EventPaymentClaimed, rows[0].EventType)
	assert.Equal(t, orderID, rows[0].AggregateID)

	var envelope PayloadEnvelope
	require.NoError(t, json.Unmarshal(rows[0].Payload, &envelope))
	assert.Equal(t, CurrentVersion, envelope.Version)
	assert.NotEmpty(t, envelope.EventID)
	require.NotNil(t, envelope.Actor)
	assert.Equal(t, userID, envelope.Actor.UserID)

	var data payloads.PaymentClaimEvent
	require.NoError(t, json.Unmarshal(envelope.Data, &data))
	assert.True(t, data.Claimed)
}

func TestEmitRequiresTransactionAndKnownType(t *testing.T) {
	client := dbtest.NewSQLite(t, "outbox_invalid")
	svc := NewService(NewRepository(client.DB()), nil)

	err := svc.Emit(context.Background(), nil, DomainEvent{EventType: enums.EventOrderCreated, AggregateType: enums.AggregateOrder})
	assert.Error(t, err)

	err = svc.Emit(context.Background(), client.DB(), DomainEvent{EventType: "order.exploded", AggregateType: enums.AggregateOrder})
	assert.Error(t, err)
}

func TestEmitRolledBackWithTransaction(t *testing.T) {
	client := dbtest.NewSQLite(t, "outbox_rollback")
	svc := NewService(NewRepository(client.DB()), nil)
	boom := errors.New("boom")

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := svc.Emit(context.Background(), tx, DomainEvent{
			EventType:     enums.EventOrderDeleted,
			AggregateType: enums.AggregateOrder,
			AggregateID:   uuid.New(),
			Data:          payloads.OrderDeletedEvent{},
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, client.DB().Model(&models.OutboxEvent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRepositoryFetchSkipsPublishedAndExhausted(t *testing.T) {
	client := dbtest.NewSQLite(t, "outbox_fetch")
	repo := NewRepository(client.DB())
	svc := NewService(repo, nil)
	ctx := context.Background()

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
			return svc.Emit(ctx, tx, DomainEvent{
				EventType:     enums.EventOrderDeleted,
				AggregateType: enums.AggregateOrder,
				AggregateID:   ids[i],
				Data:          payloads.OrderDeletedEvent{OrderID: ids[i]},
			})
		}))
	}

	var rows []models.OutboxEvent
	require.NoError(t, client.DB().Order("created_at ASC").Find(&rows).Error)
	require.Len(t, rows, 3)

	db := client.DB()
	require.NoError(t, repo.MarkPublishedTx(db, rows[0].ID))
	require.NoError(t, repo.MarkTerminalTx(db, rows[1].ID, errors.New("bad payload"), 5))
	require.NoError(t, repo.MarkFailedTx(db, rows[2].ID, errors.New("timeout")))

	pending, err := repo.FetchUnpublishedForPublish(db, 10, 5)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, rows[2].ID, pending[0].ID)
	assert.Equal(t, 1, pending[0].AttemptCount)
	require.NotNil(t, pending[0].LastError)
	assert.Equal(t, "timeout", *pending[0].LastError)
}
