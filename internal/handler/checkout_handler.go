package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/checkout"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

// CheckoutHandler owns the active checkout flow. The flow is created
// when the checkout view is entered with a non-empty cart and destroyed
// when the user leaves or completes it.
type CheckoutHandler struct {
	client       *api.Client
	taxRate      decimal.Decimal
	confirmDelay time.Duration

	mu   sync.Mutex
	flow *checkout.Checkout
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(client *api.Client, taxRate decimal.Decimal, confirmDelay time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		client:       client,
		taxRate:      taxRate,
		confirmDelay: confirmDelay,
	}
}

// CheckoutStateResponse is the flow state returned after every step call
type CheckoutStateResponse struct {
	Step             string                 `json:"step"`
	Items            []domain.CartItem      `json:"items"`
	Totals           checkout.Totals        `json:"totals"`
	ShippingDisplay  string                 `json:"shipping_display"`
	DistanceKM       float64                `json:"distance_km,omitempty"`
	Shipping         domain.ShippingDetails `json:"shipping_details"`
	PaymentReference string                 `json:"payment_reference,omitempty"`
	OrderID          int64                  `json:"order_id,omitempty"`
}

// Start enters the checkout flow. An empty cart redirects back to the
// cart page instead of entering the flow.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	cart, err := h.client.Cart(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	flow, err := checkout.Begin(h.client, cart, h.taxRate, h.confirmDelay)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			w.Header().Set("Location", "/cart")
			respondError(w, http.StatusSeeOther, "Cart is empty")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.mu.Lock()
	h.flow = flow
	h.mu.Unlock()

	respondJSON(w, http.StatusCreated, h.state(flow))
}

// State returns the current flow state
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.current()
	if !ok {
		respondError(w, http.StatusNotFound, "No checkout in progress")
		return
	}
	respondJSON(w, http.StatusOK, h.state(flow))
}

// Cancel leaves the flow, destroying its state
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.flow = nil
	h.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ShippingRequest carries the shipping form plus optional browser
// coordinates for the delivery-fee lookup
type ShippingRequest struct {
	domain.ShippingDetails
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// SubmitShipping stores the shipping form and advances to payment. The
// delivery-fee lookup runs first when coordinates are present; its
// failure never blocks the step.
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.current()
	if !ok {
		respondError(w, http.StatusNotFound, "No checkout in progress")
		return
	}

	var req ShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Latitude != nil && req.Longitude != nil {
		// Failure tolerated: the fee shows as "to be calculated"
		_ = flow.LookupDeliveryFee(r.Context(), *req.Latitude, *req.Longitude)
	}

	if err := flow.SubmitShipping(req.ShippingDetails); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.state(flow))
}

// Back moves from payment back to shipping
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.current()
	if !ok {
		respondError(w, http.StatusNotFound, "No checkout in progress")
		return
	}
	if err := flow.Back(); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, h.state(flow))
}

// PaymentRequest carries the method selection and the mobile money phone
type PaymentRequest struct {
	Method domain.PaymentMethod `json:"method"`
	Phone  string               `json:"phone,omitempty"`
}

// SubmitPayment runs the payment step. On failure the flow stays on the
// payment step with everything the user entered intact; the response
// carries the retained payment reference when one was already obtained.
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	flow, ok := h.current()
	if !ok {
		respondError(w, http.StatusNotFound, "No checkout in progress")
		return
	}

	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := flow.SubmitPayment(r.Context(), req.Method, req.Phone)
	if err != nil {
		h.respondPaymentError(w, flow, err)
		return
	}

	state := h.state(flow)
	state.OrderID = order.ID
	respondJSON(w, http.StatusOK, state)
}

func (h *CheckoutHandler) respondPaymentError(w http.ResponseWriter, flow *checkout.Checkout, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, checkout.ErrInvalidPaymentMethod):
		status = http.StatusBadRequest
	case errors.Is(err, checkout.ErrWrongStep),
		errors.Is(err, checkout.ErrSubmissionInFlight):
		status = http.StatusConflict
	default:
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= http.StatusBadRequest && apiErr.Status <= 599 {
			status = apiErr.Status
		}
	}

	payload := map[string]any{"error": err.Error(), "step": string(flow.Step())}
	if receipt := flow.Receipt(); receipt != nil {
		payload["payment_reference"] = receipt.Reference
	}
	respondJSON(w, status, payload)
}

func (h *CheckoutHandler) current() (*checkout.Checkout, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.flow, h.flow != nil
}

func (h *CheckoutHandler) state(flow *checkout.Checkout) CheckoutStateResponse {
	totals := flow.Totals()
	cart := flow.Cart()

	resp := CheckoutStateResponse{
		Step:            string(flow.Step()),
		Items:           cart.Items,
		Totals:          totals,
		ShippingDisplay: "to be calculated",
		Shipping:        flow.Shipping(),
	}
	if quote := flow.Quote(); quote != nil {
		resp.ShippingDisplay = quote.Fee.StringFixed(2)
		resp.DistanceKM = quote.DistanceKM
	}
	if receipt := flow.Receipt(); receipt != nil {
		resp.PaymentReference = receipt.Reference
	}
	if order := flow.Order(); order != nil {
		resp.OrderID = order.ID
	}
	return resp
}
