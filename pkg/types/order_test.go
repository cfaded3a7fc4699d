package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderLinesAmountRounds(t *testing.T) {
	lines := OrderLines{
		{Quantity: 3, Price: decimal.RequireFromString("1500.25")},
		{Quantity: 1, Price: decimal.RequireFromString("99.40")},
	}
	// 4500.75 + 99.40 = 4600.15
	assert.Equal(t, int64(4600), lines.Amount())
	assert.Equal(t, int64(0), OrderLines{}.Amount())
}

func TestOrderLinesAmountRoundsHalfUp(t *testing.T) {
	lines := OrderLines{{Quantity: 1, Price: decimal.RequireFromString("10.5")}}
	assert.Equal(t, int64(11), lines.Amount())
}
