package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity is the hard per-line cap regardless of stock.
const MaxLineQuantity = 99

// Line is one cart entry. StockCeiling is the product's available count
// captured when the line was added and is not refreshed afterwards.
type Line struct {
	ProductID     uuid.UUID       `json:"productId"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	Image         string          `json:"image,omitempty"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	UnitSurcharge decimal.Decimal `json:"unitSurcharge"`
	Quantity      int             `json:"quantity"`
	StockCeiling  int             `json:"stockCeiling"`
}

// ProductSnapshot is the catalog view the engine needs to add a line.
type ProductSnapshot struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Brand       string
	Image       string
	Price       decimal.Decimal
	Surcharge   decimal.Decimal
	Available   int
}

// Totals are derived from the lines and never stored.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	SurchargeTotal  decimal.Decimal `json:"surchargeTotal"`
	GlobalSurcharge decimal.Decimal `json:"globalSurcharge"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	TotalQuantity   int             `json:"totalQuantity"`
}

// ComputeTotals is a pure function of lines and the flat fee. The fee only
// applies to a non-empty cart.
func ComputeTotals(lines []Line, globalSurcharge decimal.Decimal) Totals {
	totals := Totals{
		Subtotal:        decimal.Zero,
		SurchargeTotal:  decimal.Zero,
		GlobalSurcharge: decimal.Zero,
	}
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		totals.Subtotal = totals.Subtotal.Add(line.UnitPrice.Mul(qty))
		totals.SurchargeTotal = totals.SurchargeTotal.Add(line.UnitSurcharge.Mul(qty))
		totals.TotalQuantity += line.Quantity
	}
	if len(lines) > 0 {
		totals.GlobalSurcharge = globalSurcharge
	}
	totals.GrandTotal = totals.Subtotal.Add(totals.SurchargeTotal).Add(totals.GlobalSurcharge)
	return totals
}

// persistedLine mirrors Line with an optional surcharge so carts written
// before the surcharge existed can be detected on load.
type persistedLine struct {
	ProductID     uuid.UUID        `json:"productId"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Category      string           `json:"category,omitempty"`
	Brand         string           `json:"brand,omitempty"`
	Image         string           `json:"image,omitempty"`
	UnitPrice     decimal.Decimal  `json:"unitPrice"`
	UnitSurcharge *decimal.Decimal `json:"unitSurcharge,omitempty"`
	Quantity      int              `json:"quantity"`
	StockCeiling  int              `json:"stockCeiling"`
}

func (p persistedLine) toLine() (Line, bool) {
	line := Line{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Brand:         p.Brand,
		Image:         p.Image,
		UnitPrice:     p.UnitPrice,
		UnitSurcharge: decimal.Zero,
		Quantity:      p.Quantity,
		StockCeiling:  p.StockCeiling,
	}
	if p.UnitSurcharge == nil {
		return line, true
	}
	line.UnitSurcharge = *p.UnitSurcharge
	return line, false
}
