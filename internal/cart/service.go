package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/campusmart/storefront/internal/settings"
	"github.com/campusmart/storefront/pkg/db/models"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
)

type productLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type surchargeSource interface {
	SPF(ctx context.Context) (decimal.Decimal, error)
}

// Service exposes the cart of one cart id over HTTP.
type Service interface {
	Get(ctx context.Context, cartID string) (*View, error)
	AddItem(ctx context.Context, cartID string, input AddItemInput) (*View, error)
	Increase(ctx context.Context, cartID string, productID uuid.UUID) (*View, error)
	Decrease(ctx context.Context, cartID string, productID uuid.UUID) (*View, error)
	Remove(ctx context.Context, cartID string, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, cartID string) error
	SetCheckoutReference(ctx context.Context, cartID string, orderID uuid.UUID) (*View, error)
	ClearCheckoutReference(ctx context.Context, cartID string) (*View, error)
}

// AddItemInput is the validated add-to-cart payload.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// View is the cart payload returned to clients.
type View struct {
	Items             []Line   `json:"items"`
	Totals            Totals   `json:"totals"`
	CheckoutReference *string  `json:"checkoutReference"`
	Notices           []Notice `json:"notices,omitempty"`
}

type service struct {
	storage   StorageProvider
	products  productLookup
	surcharge surchargeSource
	logg      *logger.Logger
}

// NewService builds the cart service. surcharge may be nil, in which case
// the default service fee applies.
func NewService(storage StorageProvider, products productLookup, surcharge surchargeSource, logg *logger.Logger) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	return &service{storage: storage, products: products, surcharge: surcharge, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, cartID string) (*View, error) {
	engine, err := s.open(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return view(engine, nil), nil
}

func (s *service) AddItem(ctx context.Context, cartID string, input AddItemInput) (*View, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "productId is required")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.FindByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	engine, err := s.open(ctx, cartID)
	if err != nil {
		return nil, err
	}

	snapshot := ProductSnapshot{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    product.Category,
		Brand:       product.Brand,
		Image:       product.PrimaryImage(),
		Price:       product.Price,
		Surcharge:   product.Surcharge,
		Available:   product.Available(),
	}
	if !product.InStock {
		snapshot.Available = 0
	}

	notice, err := engine.Add(ctx, snapshot, input.Quantity)
	if err != nil {
		return nil, storageError(err, "add cart item")
	}
	var notices []Notice
	if notice != nil {
		notices = append(notices, *notice)
	}
	return view(engine, notices), nil
}

func (s *service) Increase(ctx context.Context, cartID string, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, cartID, func(engine *Engine) error {
		return engine.Increase(ctx, productID)
	})
}

func (s *service) Decrease(ctx context.Context, cartID string, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, cartID, func(engine *Engine) error {
		return engine.Decrease(ctx, productID)
	})
}

func (s *service) Remove(ctx context.Context, cartID string, productID uuid.UUID) (*View, error) {
	return s.mutate(ctx, cartID, func(engine *Engine) error {
		return engine.Remove(ctx, productID)
	})
}

func (s *service) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	engine := NewEngine(s.storage.ForCart(cartID), decimal.Zero)
	if err := engine.Clear(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) SetCheckoutReference(ctx context.Context, cartID string, orderID uuid.UUID) (*View, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orderId is required")
	}
	ref := orderID.String()
	return s.mutate(ctx, cartID, func(engine *Engine) error {
		return engine.SetCheckoutReference(ctx, &ref)
	})
}

func (s *service) ClearCheckoutReference(ctx context.Context, cartID string) (*View, error) {
	return s.mutate(ctx, cartID, func(engine *Engine) error {
		return engine.ClearCheckoutReference(ctx)
	})
}

func (s *service) mutate(ctx context.Context, cartID string, fn func(*Engine) error) (*View, error) {
	engine, err := s.open(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := fn(engine); err != nil {
		return nil, storageError(err, "update cart")
	}
	return view(engine, nil), nil
}

func (s *service) open(ctx context.Context, cartID string) (*Engine, error) {
	if cartID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	engine := NewEngine(s.storage.ForCart(cartID), s.globalSurcharge(ctx))
	if err := engine.Load(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return engine, nil
}

func (s *service) globalSurcharge(ctx context.Context) decimal.Decimal {
	if s.surcharge == nil {
		return settings.DefaultSPF
	}
	spf, err := s.surcharge.SPF(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "service fee lookup failed, using default")
		}
		return settings.DefaultSPF
	}
	return spf
}

// storageError passes typed engine signals through and wraps store failures.
func storageError(err error, msg string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

func view(engine *Engine, notices []Notice) *View {
	items := engine.Lines()
	if items == nil {
		items = []Line{}
	}
	return &View{
		Items:             items,
		Totals:            engine.Totals(),
		CheckoutReference: engine.CheckoutReference(),
		Notices:           notices,
	}
}
