package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusmart/storefront/pkg/db/models"
)

// ProductDTO is the catalog payload returned to clients.
type ProductDTO struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Category       string           `json:"category"`
	Brand          string           `json:"brand"`
	Images         []string         `json:"images"`
	Price          decimal.Decimal  `json:"price"`
	ListPrice      *decimal.Decimal `json:"listPrice,omitempty"`
	Surcharge      decimal.Decimal  `json:"dmc"`
	Stock          int              `json:"stock"`
	RemainingStock int              `json:"remainingStock"`
	InStock        bool             `json:"inStock"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// CreateProductInput is the validated admin create payload.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Brand       string
	Images      []string
	Price       decimal.Decimal
	ListPrice   *decimal.Decimal
	Surcharge   decimal.Decimal
	Stock       int
}

// RestockInput resets both counters to Stock.
type RestockInput struct {
	Stock int
}

func toDTO(p models.Product) ProductDTO {
	images := []string(p.Images)
	if images == nil {
		images = []string{}
	}
	dto := ProductDTO{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Brand:          p.Brand,
		Images:         images,
		Price:          p.Price,
		Surcharge:      p.Surcharge,
		Stock:          p.Stock,
		RemainingStock: p.Available(),
		InStock:        p.InStock,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.ListPrice.Valid {
		listPrice := p.ListPrice.Decimal
		dto.ListPrice = &listPrice
	}
	return dto
}
