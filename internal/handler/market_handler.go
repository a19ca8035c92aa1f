package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"

	"github.com/go-chi/chi/v5"
)

// MarketHandler passes catalog, order, messaging and favorites reads and
// writes through to the backend. These routes are display glue; the
// gateway adds no logic beyond error mapping.
type MarketHandler struct {
	client *api.Client
}

// NewMarketHandler creates a market passthrough handler
func NewMarketHandler(client *api.Client) *MarketHandler {
	return &MarketHandler{client: client}
}

func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

// Products lists products with optional filters
func (h *MarketHandler) Products(w http.ResponseWriter, r *http.Request) {
	filter := api.ProductFilter{Search: r.URL.Query().Get("search")}
	if v, err := strconv.ParseInt(r.URL.Query().Get("category"), 10, 64); err == nil {
		filter.CategoryID = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("seller"), 10, 64); err == nil {
		filter.SellerID = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		filter.Page = v
	}

	products, err := h.client.Products(r.Context(), filter)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Product returns one product
func (h *MarketHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	product, err := h.client.Product(r.Context(), id)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// Categories lists categories
func (h *MarketHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.Categories(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// CreateCategory creates a category
func (h *MarketHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		respondError(w, http.StatusBadRequest, "Category name is required")
		return
	}
	category, err := h.client.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

// Sellers lists sellers
func (h *MarketHandler) Sellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.client.Sellers(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sellers)
}

// Seller returns one seller
func (h *MarketHandler) Seller(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid seller id")
		return
	}
	seller, err := h.client.Seller(r.Context(), id)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, seller)
}

// SellerStats returns the current seller's dashboard numbers
func (h *MarketHandler) SellerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.client.SellerStats(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Reviews lists reviews for a product
func (h *MarketHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	reviews, err := h.client.Reviews(r.Context(), id)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

// ReplyToReview posts a seller reply on a review
func (h *MarketHandler) ReplyToReview(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid review id")
		return
	}
	var req struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reply == "" {
		respondError(w, http.StatusBadRequest, "Reply text is required")
		return
	}
	if err := h.client.ReplyToReview(r.Context(), id, req.Reply); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Orders lists the buyer's orders
func (h *MarketHandler) Orders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	orders, err := h.client.Orders(r.Context(), page)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// SellerOrders lists orders received by the seller
func (h *MarketHandler) SellerOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	orders, err := h.client.SellerOrders(r.Context(), page)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// Order returns one order
func (h *MarketHandler) Order(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	order, err := h.client.Order(r.Context(), id)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus moves an order to a new status
func (h *MarketHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		respondError(w, http.StatusBadRequest, "Status is required")
		return
	}
	order, err := h.client.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// Messages lists the user's messages
func (h *MarketHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.client.Messages(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}

// SendMessage sends a message to another user
func (h *MarketHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RecipientID int64  `json:"recipient_id"`
		Content     string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RecipientID <= 0 || req.Content == "" {
		respondError(w, http.StatusBadRequest, "Recipient and content are required")
		return
	}
	message, err := h.client.SendMessage(r.Context(), req.RecipientID, req.Content)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

// MarkMessageRead marks one message as read
func (h *MarketHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid message id")
		return
	}
	if err := h.client.MarkMessageRead(r.Context(), id); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Favorites lists the user's favorite products
func (h *MarketHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.Favorites(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// ToggleFavorite flips a product's favorite flag
func (h *MarketHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	favorite, err := h.client.ToggleFavorite(r.Context(), id)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"favorite": favorite})
}
