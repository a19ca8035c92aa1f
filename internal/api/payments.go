package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
)

// DeliveryFee asks the backend for a delivery quote from the buyer's
// coordinates to the nearest producer location.
func (c *Client) DeliveryFee(ctx context.Context, lat, lng float64) (*domain.DeliveryQuote, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))

	var quote domain.DeliveryQuote
	if err := c.do(ctx, "delivery.fee", http.MethodGet, queryPath("/delivery/fee", query), nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// InitiatePayment starts a mobile money payment and returns the provider
// reference. Confirmation arrives asynchronously on the provider side; the
// caller decides how long to wait. Never retried.
func (c *Client) InitiatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentReceipt, error) {
	var receipt domain.PaymentReceipt
	if err := c.do(ctx, "payments.initiate", http.MethodPost, "/payments/mobile", req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
