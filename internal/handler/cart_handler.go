package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"

	"github.com/go-chi/chi/v5"
)

// CartHandler passes cart operations through to the backend. The cart
// itself lives upstream; the gateway holds no copy outside an active
// checkout snapshot.
type CartHandler struct {
	client *api.Client
}

// NewCartHandler creates a cart handler
func NewCartHandler(client *api.Client) *CartHandler {
	return &CartHandler{client: client}
}

// Get returns the current cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.client.Cart(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// AddItemRequest adds a product line
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Add adds a product to the cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "Product and positive quantity are required")
		return
	}

	cart, err := h.client.AddToCart(r.Context(), req.ProductID, req.Quantity)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// UpdateItemRequest sets a line quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// Update sets the quantity of a cart line
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be positive")
		return
	}

	cart, err := h.client.UpdateCartItem(r.Context(), productID, req.Quantity)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// Remove deletes a cart line
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	cart, err := h.client.RemoveFromCart(r.Context(), productID)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.client.ClearCart(r.Context()); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
