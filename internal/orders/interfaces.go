package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/campusmart/storefront/internal/notifications"
	"github.com/campusmart/storefront/internal/products"
	"github.com/campusmart/storefront/pkg/db/models"
	"github.com/campusmart/storefront/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type notifier interface {
	Emit(ctx context.Context, input notifications.EmitInput) error
}

// Inventory is the catalog view the order-create transaction reads and
// decrements. Both calls run on tx.
type Inventory interface {
	FindByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (bool, error)
}

type catalogInventory struct {
	repo *products.Repository
}

// NewCatalogInventory adapts the product repository to Inventory.
func NewCatalogInventory(repo *products.Repository) Inventory {
	return &catalogInventory{repo: repo}
}

func (c *catalogInventory) FindByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	return c.repo.WithTx(tx).FindByIDs(ctx, ids)
}

func (c *catalogInventory) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (bool, error) {
	return c.repo.WithTx(tx).DecrementStock(ctx, productID, qty)
}
