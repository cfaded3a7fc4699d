package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/campusmart/storefront/pkg/enums"
	"github.com/campusmart/storefront/pkg/types"
)

// Order is the durable checkout record. Payment and delivery are independent axes.
type Order struct {
	ID               uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           *uuid.UUID             `gorm:"column:user_id;type:uuid"`
	Amount           int64                  `gorm:"column:amount;not null"`
	Currency         string                 `gorm:"column:currency;not null;default:'NGN'"`
	Products         types.OrderLines       `gorm:"column:products;type:jsonb;serializer:json;not null"`
	DeliveryStatus   enums.DeliveryStatus   `gorm:"column:delivery_status;not null;default:'pending'"`
	PaymentClaimed   bool                   `gorm:"column:payment_claimed;not null;default:false"`
	PaymentConfirmed bool                   `gorm:"column:payment_confirmed;not null;default:false"`
	Address          *types.DeliveryAddress `gorm:"column:address;type:jsonb;serializer:json"`
	IdempotencyKey   *string                `gorm:"column:idempotency_key"`
	CreatedAt        time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

// OwnedBy reports whether the order belongs to userID. Guest orders have no owner.
func (o *Order) OwnedBy(userID uuid.UUID) bool {
	return o != nil && o.UserID != nil && *o.UserID == userID
}
