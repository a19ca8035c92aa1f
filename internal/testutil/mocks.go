// Package testutil provides shared mocks and fixtures for testing the
// market gateway.
package testutil

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
)

// ErrMockNotImplemented is returned by mock methods without an override
var ErrMockNotImplemented = errors.New("mock function not implemented")

// MockAuthAPI implements domain.AuthAPI for testing. Set the Func fields
// to customize behavior; the call counters are safe for concurrent use.
type MockAuthAPI struct {
	LoginFunc   func(ctx context.Context, username, password string) (*domain.TokenPair, error)
	RefreshFunc func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	LogoutFunc  func(ctx context.Context, refreshToken string) error
	ProfileFunc func(ctx context.Context) (*domain.User, error)

	LoginCalls   atomic.Int64
	RefreshCalls atomic.Int64
	LogoutCalls  atomic.Int64
	ProfileCalls atomic.Int64
}

func (m *MockAuthAPI) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	m.LoginCalls.Add(1)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return nil, ErrMockNotImplemented
}

func (m *MockAuthAPI) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	m.RefreshCalls.Add(1)
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return nil, ErrMockNotImplemented
}

func (m *MockAuthAPI) Logout(ctx context.Context, refreshToken string) error {
	m.LogoutCalls.Add(1)
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *MockAuthAPI) Profile(ctx context.Context) (*domain.User, error) {
	m.ProfileCalls.Add(1)
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return nil, ErrMockNotImplemented
}

// MockCheckoutAPI implements domain.CheckoutAPI for testing
type MockCheckoutAPI struct {
	DeliveryFeeFunc     func(ctx context.Context, lat, lng float64) (*domain.DeliveryQuote, error)
	InitiatePaymentFunc func(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentReceipt, error)
	CreateOrderFunc     func(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)

	DeliveryFeeCalls     atomic.Int64
	InitiatePaymentCalls atomic.Int64
	CreateOrderCalls     atomic.Int64
}

func (m *MockCheckoutAPI) DeliveryFee(ctx context.Context, lat, lng float64) (*domain.DeliveryQuote, error) {
	m.DeliveryFeeCalls.Add(1)
	if m.DeliveryFeeFunc != nil {
		return m.DeliveryFeeFunc(ctx, lat, lng)
	}
	return nil, ErrMockNotImplemented
}

func (m *MockCheckoutAPI) InitiatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentReceipt, error) {
	m.InitiatePaymentCalls.Add(1)
	if m.InitiatePaymentFunc != nil {
		return m.InitiatePaymentFunc(ctx, req)
	}
	return nil, ErrMockNotImplemented
}

func (m *MockCheckoutAPI) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	m.CreateOrderCalls.Add(1)
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, req)
	}
	return nil, ErrMockNotImplemented
}
