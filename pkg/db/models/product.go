package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog listing. RemainingStock is nil until the first sale
// or restock; Stock is the fallback counter.
type Product struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string              `gorm:"column:name;not null"`
	Description    string              `gorm:"column:description;not null;default:''"`
	Category       string              `gorm:"column:category;not null;default:''"`
	Brand          string              `gorm:"column:brand;not null;default:''"`
	Images         pq.StringArray      `gorm:"column:images;type:text[]"`
	Price          decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null"`
	ListPrice      decimal.NullDecimal `gorm:"column:list_price;type:numeric(12,2)"`
	Surcharge      decimal.Decimal     `gorm:"column:surcharge;type:numeric(12,2);not null;default:0"`
	Stock          int                 `gorm:"column:stock;not null;default:0"`
	RemainingStock *int                `gorm:"column:remaining_stock"`
	InStock        bool                `gorm:"column:in_stock;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// Available returns remainingStock, falling back to stock.
func (p *Product) Available() int {
	if p == nil {
		return 0
	}
	if p.RemainingStock != nil {
		return *p.RemainingStock
	}
	return p.Stock
}

// PrimaryImage returns the first image URL or "".
func (p *Product) PrimaryImage() string {
	if p == nil || len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
