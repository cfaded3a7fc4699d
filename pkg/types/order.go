package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is the product snapshot captured on an order at creation. It is
// decoupled from the live catalog row.
type OrderLine struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	SelectedImg string          `json:"selectedImg,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// LineTotal returns price × quantity.
func (l OrderLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderLines is the ordered snapshot stored on the order row.
type OrderLines []OrderLine

// Amount returns round(Σ price×quantity) as an integer amount.
func (ls OrderLines) Amount() int64 {
	total := decimal.Zero
	for _, line := range ls {
		total = total.Add(line.LineTotal())
	}
	return total.Round(0).IntPart()
}

// SiteSettings is the storefront configuration document held under the
// "settings" key.
type SiteSettings struct {
	BankName          string          `json:"bankName"`
	BankAccountNumber string          `json:"bankAccountNumber"`
	AccountHolderName string          `json:"accountHolderName"`
	Hostels           []string        `json:"hostels"`
	SPF               decimal.Decimal `json:"spf"`
	WhatsappNumber    string          `json:"whatsappNumber"`
}
