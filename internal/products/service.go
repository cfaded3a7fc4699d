package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/campusmart/storefront/pkg/db/models"
	pkgerrors "github.com/campusmart/storefront/pkg/errors"
	"github.com/campusmart/storefront/pkg/logger"
	"github.com/campusmart/storefront/pkg/pagination"
	"github.com/campusmart/storefront/pkg/types"
)

// Service exposes catalog reads and admin catalog management.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*types.Page[ProductDTO], error)
	SetInStock(ctx context.Context, id uuid.UUID, inStock bool) (*ProductDTO, error)
	Restock(ctx context.Context, id uuid.UUID, input RestockInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs the catalog service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() || input.Surcharge.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and surcharge must not be negative")
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}

	remaining := input.Stock
	product := &models.Product{
		Name:           name,
		Description:    strings.TrimSpace(input.Description),
		Category:       strings.TrimSpace(input.Category),
		Brand:          strings.TrimSpace(input.Brand),
		Images:         pq.StringArray(cleanImages(input.Images)),
		Price:          input.Price,
		Surcharge:      input.Surcharge,
		Stock:          input.Stock,
		RemainingStock: &remaining,
		InStock:        input.Stock > 0,
	}
	if input.ListPrice != nil {
		product.ListPrice = decimal.NewNullDecimal(*input.ListPrice)
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "product_id", product.ID.String()), "product created")
	}
	dto := toDTO(*product)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*product)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*types.Page[ProductDTO], error) {
	rows, next, err := s.repo.List(ctx, params, filters)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	items := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, toDTO(row))
	}
	return &types.Page[ProductDTO]{Items: items, Cursor: next}, nil
}

func (s *service) SetInStock(ctx context.Context, id uuid.UUID, inStock bool) (*ProductDTO, error) {
	found, err := s.repo.UpdateFields(ctx, id, map[string]any{"in_stock": inStock})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return s.Get(ctx, id)
}

func (s *service) Restock(ctx context.Context, id uuid.UUID, input RestockInput) (*ProductDTO, error) {
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must not be negative")
	}
	found, err := s.repo.UpdateFields(ctx, id, map[string]any{
		"stock":           input.Stock,
		"remaining_stock": input.Stock,
		"in_stock":        input.Stock > 0,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restock product")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{"product_id": id.String(), "stock": input.Stock})
		s.logg.Info(logCtx, "product restocked")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, image := range images {
		if trimmed := strings.TrimSpace(image); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
