package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/campusmart/storefront/pkg/errors"
)

// NoticeStockCeiling marks an Add that was clamped to the available stock.
const NoticeStockCeiling = "STOCK_CEILING"

// Notice is a non-fatal signal from a mutation that still applied.
type Notice struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Engine holds one cart in memory and writes it through to Storage after
// every mutation. An Engine is not safe for concurrent use.
type Engine struct {
	storage         Storage
	globalSurcharge decimal.Decimal
	lines           []Line
	checkoutRef     *string
	totals          Totals
}

func NewEngine(storage Storage, globalSurcharge decimal.Decimal) *Engine {
	e := &Engine{storage: storage, globalSurcharge: globalSurcharge}
	e.recompute()
	return e
}

// Load reads persisted state. Lines persisted without a surcharge are
// backfilled with zero and the cart is re-saved straight away.
func (e *Engine) Load(ctx context.Context) error {
	raw, found, err := e.storage.Load(ctx, KeyItems)
	if err != nil {
		return fmt.Errorf("load cart items: %w", err)
	}
	e.lines = nil
	migrated := false
	if found && len(raw) > 0 {
		var stored []persistedLine
		if err := json.Unmarshal(raw, &stored); err != nil {
			return fmt.Errorf("decode cart items: %w", err)
		}
		e.lines = make([]Line, 0, len(stored))
		for _, p := range stored {
			line, backfilled := p.toLine()
			migrated = migrated || backfilled
			e.lines = append(e.lines, line)
		}
	}

	raw, found, err = e.storage.Load(ctx, KeyCheckoutReference)
	if err != nil {
		return fmt.Errorf("load checkout reference: %w", err)
	}
	e.checkoutRef = nil
	if found && len(raw) > 0 {
		var ref *string
		if err := json.Unmarshal(raw, &ref); err != nil {
			return fmt.Errorf("decode checkout reference: %w", err)
		}
		e.checkoutRef = ref
	}

	e.recompute()
	if migrated {
		return e.persist(ctx)
	}
	return nil
}

// Lines returns a copy of the current lines in insertion order.
func (e *Engine) Lines() []Line {
	return append([]Line(nil), e.lines...)
}

func (e *Engine) Totals() Totals {
	return e.totals
}

func (e *Engine) CheckoutReference() *string {
	if e.checkoutRef == nil {
		return nil
	}
	ref := *e.checkoutRef
	return &ref
}

// Add appends a new line, clamping quantity to the stock ceiling and the
// per-line cap. Adding a product already in the cart appends another line.
func (e *Engine) Add(ctx context.Context, product ProductSnapshot, quantity int) (*Notice, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if product.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	ceiling := product.Available
	if ceiling <= 0 {
		return nil, insufficientStock(product.ID, product.Name, 0, quantity, "out of stock")
	}

	var notice *Notice
	clamped := quantity
	if clamped > ceiling {
		clamped = ceiling
		notice = &Notice{Code: NoticeStockCeiling, Message: fmt.Sprintf("only %d left in stock", ceiling)}
	}
	if clamped > MaxLineQuantity {
		clamped = MaxLineQuantity
		if notice == nil {
			notice = &Notice{Code: NoticeStockCeiling, Message: "maximum quantity reached"}
		}
	}

	e.lines = append(e.lines, Line{
		ProductID:     product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		Brand:         product.Brand,
		Image:         product.Image,
		UnitPrice:     product.Price,
		UnitSurcharge: product.Surcharge,
		Quantity:      clamped,
		StockCeiling:  ceiling,
	})
	e.recompute()
	return notice, e.persist(ctx)
}

// Increase adds one unit to the first line of productID.
func (e *Engine) Increase(ctx context.Context, productID uuid.UUID) error {
	idx := e.indexOf(productID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	line := &e.lines[idx]
	if line.Quantity >= MaxLineQuantity {
		return pkgerrors.New(pkgerrors.CodeValidation, "maximum quantity reached").
			WithDetails(map[string]any{"productId": productID, "limit": MaxLineQuantity})
	}
	if line.Quantity >= line.StockCeiling {
		return insufficientStock(productID, line.Name, line.StockCeiling, line.Quantity+1,
			fmt.Sprintf("only %d left in stock", line.StockCeiling))
	}
	line.Quantity++
	e.recompute()
	return e.persist(ctx)
}

// Decrease removes one unit from the first line of productID. A line at
// quantity 1 is left alone; Remove is the only way to drop it.
func (e *Engine) Decrease(ctx context.Context, productID uuid.UUID) error {
	idx := e.indexOf(productID)
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	line := &e.lines[idx]
	if line.Quantity <= 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot go below 1").
			WithDetails(map[string]any{"productId": productID})
	}
	line.Quantity--
	e.recompute()
	return e.persist(ctx)
}

// Remove drops every line of productID.
func (e *Engine) Remove(ctx context.Context, productID uuid.UUID) error {
	kept := e.lines[:0]
	for _, line := range e.lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	e.lines = kept
	e.recompute()
	return e.persist(ctx)
}

// Clear empties the cart and deletes both persisted keys.
func (e *Engine) Clear(ctx context.Context) error {
	e.lines = nil
	e.checkoutRef = nil
	e.recompute()
	if err := e.storage.Delete(ctx, KeyItems, KeyCheckoutReference); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// SetCheckoutReference links the cart to an in-flight order id; nil unlinks it.
func (e *Engine) SetCheckoutReference(ctx context.Context, ref *string) error {
	if ref == nil {
		return e.ClearCheckoutReference(ctx)
	}
	value := *ref
	e.checkoutRef = &value
	raw, err := json.Marshal(e.checkoutRef)
	if err != nil {
		return fmt.Errorf("encode checkout reference: %w", err)
	}
	if err := e.storage.Save(ctx, KeyCheckoutReference, raw); err != nil {
		return fmt.Errorf("save checkout reference: %w", err)
	}
	return nil
}

func (e *Engine) ClearCheckoutReference(ctx context.Context) error {
	e.checkoutRef = nil
	if err := e.storage.Delete(ctx, KeyCheckoutReference); err != nil {
		return fmt.Errorf("clear checkout reference: %w", err)
	}
	return nil
}

func (e *Engine) indexOf(productID uuid.UUID) int {
	for i, line := range e.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (e *Engine) recompute() {
	e.totals = ComputeTotals(e.lines, e.globalSurcharge)
}

func (e *Engine) persist(ctx context.Context) error {
	lines := e.lines
	if lines == nil {
		lines = []Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart items: %w", err)
	}
	if err := e.storage.Save(ctx, KeyItems, raw); err != nil {
		return fmt.Errorf("save cart items: %w", err)
	}
	return nil
}

func insufficientStock(productID uuid.UUID, name string, available, requested int, msg string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, msg).WithDetails(map[string]any{
		"productId":   productID,
		"productName": name,
		"available":   available,
		"requested":   requested,
	})
}
