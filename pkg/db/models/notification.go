package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an admin inbox entry emitted by order transitions.
type Notification struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string     `gorm:"column:title;type:text;not null"`
	Body      string     `gorm:"column:body;type:text;not null"`
	OrderID   *uuid.UUID `gorm:"column:order_id;type:uuid"`
	Read      bool       `gorm:"column:read;not null;default:false"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
