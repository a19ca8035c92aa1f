package checkout

import (
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the fixed regional VAT rate applied to the subtotal
var DefaultTaxRate = decimal.RequireFromString("0.1925")

// Totals is the client-side order total breakdown. It exists for display
// and as the amount sent to payment initiation; the backend recomputes
// and persists the authoritative total.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives the breakdown from the cart, tax rate and the
// delivery quote. A nil quote means the fee is not yet known and counts
// as zero.
func ComputeTotals(cart *domain.Cart, taxRate decimal.Decimal, quote *domain.DeliveryQuote) Totals {
	subtotal := cart.Subtotal()
	tax := subtotal.Mul(taxRate)

	shipping := decimal.Zero
	if quote != nil {
		shipping = quote.Fee
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}

// DisplayTotal rounds the total to two decimals. Rounding happens only
// here; the exact value is what goes to payment initiation.
func (t Totals) DisplayTotal() string {
	return t.Total.StringFixed(2)
}
