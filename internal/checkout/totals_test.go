package checkout

import (
	"testing"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_KnownCart(t *testing.T) {
	// [{price 10, qty 2}, {price 5, qty 1}] at 19.25% tax, no fee
	totals := ComputeTotals(testutil.SampleCart(), DefaultTaxRate, nil)

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("25")),
		"subtotal = %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.RequireFromString("4.8125")),
		"tax = %s", totals.Tax)
	assert.True(t, totals.Shipping.IsZero())
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("29.8125")),
		"total = %s", totals.Total)
	assert.Equal(t, "29.81", totals.DisplayTotal(), "rounding is display-only")
}

func TestComputeTotals_WithDeliveryQuote(t *testing.T) {
	quote := &domain.DeliveryQuote{
		Fee:        decimal.RequireFromString("1500"),
		DistanceKM: 12.4,
	}

	totals := ComputeTotals(testutil.SampleCart(), DefaultTaxRate, quote)

	assert.True(t, totals.Shipping.Equal(decimal.RequireFromString("1500")))
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("1529.8125")))
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(&domain.Cart{}, DefaultTaxRate, nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
}
