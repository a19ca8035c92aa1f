package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidPhone  = errors.New("phone number must have at least 9 digits")
)

// PaymentMethod identifies how the buyer pays
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentMTN    PaymentMethod = "mtn_momo"
	PaymentOrange PaymentMethod = "orange_money"
)

// IsMobileMoney reports whether the method requires a phone number
func (m PaymentMethod) IsMobileMoney() bool {
	return m == PaymentMTN || m == PaymentOrange
}

// Valid reports whether the method is one of the three supported methods
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentMTN || m == PaymentOrange
}

// ShippingDetails are the recipient and address fields collected at checkout
type ShippingDetails struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Notes    string `json:"notes,omitempty"`
}

// DeliveryQuote is the fee and distance computed from the buyer's coordinates
type DeliveryQuote struct {
	Fee        decimal.Decimal `json:"delivery_fee"`
	DistanceKM float64         `json:"distance_km"`
}

// PaymentRequest initiates a mobile money payment upstream
type PaymentRequest struct {
	Provider       PaymentMethod   `json:"provider"`
	Amount         decimal.Decimal `json:"amount"`
	PhoneNumber    string          `json:"phone_number"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// PaymentReceipt is returned by the payment initiation endpoint
type PaymentReceipt struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// OrderItem is one purchased line
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderRequest creates an order upstream. The backend recomputes and
// persists the authoritative total; the client never sends one.
type OrderRequest struct {
	Items            []OrderItem     `json:"items"`
	Shipping         ShippingDetails `json:"shipping"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
}

// Order is a persisted order as returned by the backend
type Order struct {
	ID        int64           `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Items     []OrderItem     `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
}

// CheckoutAPI is the slice of the backend the checkout orchestrator talks to
type CheckoutAPI interface {
	DeliveryFee(ctx context.Context, lat, lng float64) (*DeliveryQuote, error)
	InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error)
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}
