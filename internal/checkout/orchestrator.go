package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/observability"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Step identifies the checkout flow position
type Step string

const (
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

var (
	ErrWrongStep            = errors.New("operation not valid for the current step")
	ErrInvalidPaymentMethod = errors.New("select a valid payment method")
	ErrSubmissionInFlight   = errors.New("a submission is already in progress")
)

// minPhoneDigits is the minimum digit count for mobile money numbers
const minPhoneDigits = 9

// Checkout drives one purchase flow: shipping → payment → confirmation,
// with a free back edge from payment to shipping. State collected at a
// step survives any later failure so the user never re-enters data.
type Checkout struct {
	api          domain.CheckoutAPI
	taxRate      decimal.Decimal
	confirmDelay time.Duration

	mu         sync.Mutex
	submitting bool

	step     Step
	cart     domain.Cart
	shipping domain.ShippingDetails
	quote    *domain.DeliveryQuote
	method   domain.PaymentMethod
	phone    string
	receipt  *domain.PaymentReceipt
	order    *domain.Order
}

// Begin starts a checkout over a snapshot of the cart. An empty cart is
// rejected; the handler redirects out of the flow in that case.
func Begin(api domain.CheckoutAPI, cart *domain.Cart, taxRate decimal.Decimal, confirmDelay time.Duration) (*Checkout, error) {
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	return &Checkout{
		api:          api,
		taxRate:      taxRate,
		confirmDelay: confirmDelay,
		step:         StepShipping,
		cart:         *cart,
	}, nil
}

// Step returns the current flow position
func (c *Checkout) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Cart returns the cart snapshot the flow was started with
func (c *Checkout) Cart() domain.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cart
}

// Shipping returns the collected shipping details
func (c *Checkout) Shipping() domain.ShippingDetails {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shipping
}

// Quote returns the delivery quote, nil while "to be calculated"
func (c *Checkout) Quote() *domain.DeliveryQuote {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quote
}

// Receipt returns the last payment receipt obtained, if any. It is
// retained even when a later order creation fails, so the reference can
// be shown to the user alongside the error.
func (c *Checkout) Receipt() *domain.PaymentReceipt {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipt
}

// Order returns the created order once the flow reached confirmation
func (c *Checkout) Order() *domain.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

// Totals computes the current client-side total breakdown
func (c *Checkout) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ComputeTotals(&c.cart, c.taxRate, c.quote)
}

// LookupDeliveryFee asks the backend for a quote from the buyer's
// coordinates. Failure is tolerated: the quote stays nil, the fee counts
// as zero and the flow is never blocked. The error is returned for
// display only.
func (c *Checkout) LookupDeliveryFee(ctx context.Context, lat, lng float64) error {
	quote, err := c.api.DeliveryFee(ctx, lat, lng)
	if err != nil {
		observability.DeliveryFeeLookupsTotal.WithLabelValues("failed").Inc()
		slog.Warn("delivery fee lookup failed, fee to be calculated",
			slog.String("error", err.Error()))
		return err
	}
	observability.DeliveryFeeLookupsTotal.WithLabelValues("ok").Inc()

	c.mu.Lock()
	c.quote = quote
	c.mu.Unlock()
	return nil
}

// SubmitShipping stores the shipping form and advances to payment.
// Defaults are acceptable, so the step advances unconditionally.
func (c *Checkout) SubmitShipping(details domain.ShippingDetails) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepShipping {
		return ErrWrongStep
	}
	c.shipping = details
	c.step = StepPayment
	observability.CheckoutStepTransitions.WithLabelValues(string(StepShipping), string(StepPayment)).Inc()
	return nil
}

// Back moves from payment to shipping. Collected data is kept.
func (c *Checkout) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepPayment {
		return ErrWrongStep
	}
	c.step = StepShipping
	observability.CheckoutStepTransitions.WithLabelValues(string(StepPayment), string(StepShipping)).Inc()
	return nil
}

// SubmitPayment runs the payment step: local phone validation, payment
// initiation, a fixed wait standing in for the asynchronous provider
// confirmation, then order creation. Any failure keeps the flow on the
// payment step with all collected state intact; nothing is retried
// automatically.
func (c *Checkout) SubmitPayment(ctx context.Context, method domain.PaymentMethod, phone string) (*domain.Order, error) {
	c.mu.Lock()
	if c.step != StepPayment {
		c.mu.Unlock()
		return nil, ErrWrongStep
	}
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if !method.Valid() {
		c.mu.Unlock()
		return nil, ErrInvalidPaymentMethod
	}
	if method.IsMobileMoney() && countDigits(phone) < minPhoneDigits {
		c.mu.Unlock()
		return nil, domain.ErrInvalidPhone
	}
	c.submitting = true
	c.method = method
	c.phone = phone
	shipping := c.shipping
	totals := ComputeTotals(&c.cart, c.taxRate, c.quote)
	items := orderItems(c.cart)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	if method.IsMobileMoney() {
		receipt, err := c.api.InitiatePayment(ctx, domain.PaymentRequest{
			Provider:       method,
			Amount:         totals.Total,
			PhoneNumber:    phone,
			IdempotencyKey: uuid.New().String(),
		})
		if err != nil {
			observability.PaymentInitiationsTotal.WithLabelValues(string(method), "failed").Inc()
			return nil, err
		}
		observability.PaymentInitiationsTotal.WithLabelValues(string(method), "ok").Inc()

		c.mu.Lock()
		c.receipt = receipt
		c.mu.Unlock()

		// TODO: replace with a poll against the provider's confirmation
		// endpoint once the backend exposes one.
		select {
		case <-time.After(c.confirmDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	req := domain.OrderRequest{
		Items:         items,
		Shipping:      shipping,
		PaymentMethod: method,
		DeliveryFee:   totals.Shipping,
	}
	if receipt := c.Receipt(); receipt != nil {
		req.PaymentReference = receipt.Reference
	}

	order, err := c.api.CreateOrder(ctx, req)
	if err != nil {
		// The receipt stays retained so the reference can be displayed
		// next to the error.
		return nil, err
	}

	c.mu.Lock()
	c.order = order
	c.step = StepConfirmation
	c.mu.Unlock()
	observability.CheckoutStepTransitions.WithLabelValues(string(StepPayment), string(StepConfirmation)).Inc()

	return order, nil
}

func orderItems(cart domain.Cart) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.Quantity <= 0 {
			continue
		}
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return items
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
