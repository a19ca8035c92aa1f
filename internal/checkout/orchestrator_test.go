package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfirmDelay = time.Millisecond

func beginFlow(t *testing.T, api domain.CheckoutAPI) *Checkout {
	t.Helper()
	flow, err := Begin(api, testutil.SampleCart(), DefaultTaxRate, testConfirmDelay)
	require.NoError(t, err)
	return flow
}

func TestBegin_EmptyCart(t *testing.T) {
	api := &testutil.MockCheckoutAPI{}

	flow, err := Begin(api, &domain.Cart{}, DefaultTaxRate, testConfirmDelay)

	assert.Nil(t, flow)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestLookupDeliveryFee_FailureDoesNotBlock(t *testing.T) {
	api := &testutil.MockCheckoutAPI{
		DeliveryFeeFunc: func(ctx context.Context, lat, lng float64) (*domain.DeliveryQuote, error) {
			return nil, errors.New("geolocation denied")
		},
	}
	flow := beginFlow(t, api)

	err := flow.LookupDeliveryFee(context.Background(), 4.05, 9.7)

	assert.Error(t, err)
	assert.Nil(t, flow.Quote(), "fee stays to-be-calculated")

	// The shipping step still advances and the fee defaults to zero
	require.NoError(t, flow.SubmitShipping(testutil.SampleShipping()))
	assert.Equal(t, StepPayment, flow.Step())
	assert.True(t, flow.Totals().Shipping.IsZero())
}

func TestLookupDeliveryFee_Success(t *testing.T) {
	api := &testutil.MockCheckoutAPI{
		DeliveryFeeFunc: func(ctx context.Context, lat, lng float64) (*domain.DeliveryQuote, error) {
			return &domain.DeliveryQuote{
				Fee:        decimal.RequireFromString("1500"),
				DistanceKM: 8.2,
			}, nil
		},
	}
	flow := beginFlow(t, api)

	require.NoError(t, flow.LookupDeliveryFee(context.Background(), 4.05, 9.7))

	quote := flow.Quote()
	require.NotNil(t, quote)
	assert.Equal(t, 8.2, quote.DistanceKM)
	assert.True(t, flow.Totals().Shipping.Equal(decimal.RequireFromString("1500")))
}

func TestBack_OnlyFromPayment(t *testing.T) {
	api := &testutil.MockCheckoutAPI{}
	flow := beginFlow(t, api)

	assert.ErrorIs(t, flow.Back(), ErrWrongStep)

	require.NoError(t, flow.SubmitShipping(testutil.SampleShipping()))
	require.NoError(t, flow.Back())
	assert.Equal(t, StepShipping, flow.Step())

	// Data collected before going back survives
	assert.Equal(t, testutil.SampleShipping(), flow.Shipping())
}

func TestSubmitPayment_WrongStep(t *testing.T) {
	api := &testutil.MockCheckoutAPI{}
	flow := beginFlow(t, api)

	_, err := flow.SubmitPayment(context.Background(), domain.PaymentMTN, "690112233")

	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestSubmitPayment_ShortPhone_NoNetworkCall(t *testing.T) {
	api := &testutil.MockCheckoutAPI{}
	flow := beginFlow(t, api)
	require.NoError(t, flow.SubmitShipping(testutil.SampleShipping()))

	_, err := flow.SubmitPayment(context.Background(), domain.PaymentMTN, "69011")

	assert.ErrorIs(t, err, domain.ErrInvalidPhone)
	assert.Equal(t, int64(0), api.InitiatePaymentCalls.Load(), "validation failure must not reach the network")
	assert.Equal(t, int64(0), api.CreateOrderCalls.Load())
	assert.Equal(t, StepPayment, flow.Step())
}

func TestSubmitPayment_InvalidMethod(t *testing.T) {
	api := &testutil.MockCheckoutAPI{}
	flow := beginFlow(t, api)
	require.NoError(t, flow.SubmitShipping(testutil.SampleShipping()))

	_, err := flow.SubmitPayment(context.Background(), domain.PaymentMethod("paypal"), "")

	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	assert.Equal(t, int64(0), api.InitiatePaymentCalls.Load())
}

func TestSubmitPayment_MobileMoney_Success(t *testing.T) {
	var initiated domain.PaymentRequest
	var created domain.OrderRequest
	api := &testutil.MockCheckoutAPI{
		InitiatePaymentFunc: func(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentReceipt, error) {
			initiated = req
			return &domain.PaymentReceipt{Reference: "PAY-123", Status: "pending"}, nil
		},
		CreateOrderFunc: func(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
			created = req
			return &domain.Order{ID: 77, Status: "pending"}, nil
		},
	}
	flow := beginFlow(t, api)
	require.NoError(t, flow.SubmitShipping(testutil.SampleShipping()))

	order, err := flow.SubmitPayment(context.Background(), domain.PaymentMTN, "690112233")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(77), order.ID)
	assert.Equal(t, StepConfirmation, flow.Step())

	// Payment initiation carried the client-side total
	assert.Equal(t, domain.PaymentMTN, initiated.Provider)
	assert.True(t, initiated.Amount.Equal(decimal.RequireFromString("29.8125")))
	assert.Equal(t, "690112233", initiated.PhoneNumber)
	assert.NotEmpty(t, initiated.IdempotencyKey)

	// Order creation carried the shipping fields and the reference
	assert.Equal(t, testutil.SampleShipping(), created.Shipping)
	assert.Equal(t, "PAY-123", created.PaymentReference)
	assert.Len(t, created.Items, 2)

	receipt := flow.Receipt()
	require.NotNil(t, receipt)
	assert.Equal(t, "PAY-123", receipt.Reference)
}

func TestSubmitPayment_Card_SkipsInitiation(t *testing.T) {
	api := &testutil.MockCheckoutAPI{
		CreateOrderFunc: func(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
			return &domain.Order{ID: 5}, nil
		},
	}
	flow := beginFlow(t, api)
	require.NoError(t, flow.SubmitShipping(testutil.SampleShipping()))

	order, err := flow.SubmitPayment(context.Background(), domain.PaymentCard, "")

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, int64(0), api.InitiatePaymentCalls.Load())
	assert.Equal(t, int64(1), api.CreateOrderCalls.Load())
}

func TestSubmitPayment_InitiationFails_StaysOnPayment(t *testing.T) {
	api := &testutil.MockCheckoutAPI{
		InitiatePaymentFunc: func(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentReceipt, error) {
			return nil, errors.New("provider unavailable")
		},
	}
	flow := beginFlow(t, api)
	require.NoError(t, flow.SubmitShipping(testutil.SampleShipping()))

	_, err := flow.SubmitPayment(context.Background(), domain.PaymentOrange, "699887766")

	assert.ErrorContains(t, err, "provider unavailable")
	assert.Equal(t, StepPayment, flow.Step())
	assert.Equal(t, int64(0), api.CreateOrderCalls.Load(), "no order without a payment")
	assert.Equal(t, testutil.SampleShipping(), flow.Shipping(), "shipping data survives the failure")
}

func TestSubmitPayment_OrderFails_RetainsReference(t *testing.T) {
	api := &testutil.MockCheckoutAPI{
		InitiatePaymentFunc: func(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentReceipt, error) {
			return &domain.PaymentReceipt{Reference: "PAY-456", Status: "pending"}, nil
		},
		CreateOrderFunc: func(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
			return nil, errors.New("order service down")
		},
	}
	flow := beginFlow(t, api)
	require.NoError(t, flow.SubmitShipping(testutil.SampleShipping()))

	order, err := flow.SubmitPayment(context.Background(), domain.PaymentMTN, "690112233")

	assert.Nil(t, order)
	assert.ErrorContains(t, err, "order service down")
	assert.Equal(t, StepPayment, flow.Step(), "flow stays on payment for a resubmit")

	receipt := flow.Receipt()
	require.NotNil(t, receipt, "the reference already obtained is retained")
	assert.Equal(t, "PAY-456", receipt.Reference)
}

func TestSubmitShipping_AdvancesUnconditionally(t *testing.T) {
	api := &testutil.MockCheckoutAPI{}
	flow := beginFlow(t, api)

	// Even an empty form advances; defaults are acceptable
	require.NoError(t, flow.SubmitShipping(domain.ShippingDetails{}))
	assert.Equal(t, StepPayment, flow.Step())

	// Submitting again at the wrong step is rejected
	assert.ErrorIs(t, flow.SubmitShipping(domain.ShippingDetails{}), ErrWrongStep)
}

func TestCountDigits(t *testing.T) {
	tests := []struct {
		phone string
		want  int
	}{
		{"690112233", 9},
		{"+237 690 112 233", 12},
		{"69-01", 4},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countDigits(tt.phone), "phone %q", tt.phone)
	}
}
