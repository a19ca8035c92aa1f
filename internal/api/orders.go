package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
)

// CreateOrder places an order upstream. Never retried.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, "orders.create", http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Orders lists the current buyer's orders
func (c *Client) Orders(ctx context.Context, page int) ([]domain.Order, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	var orders []domain.Order
	if err := c.do(ctx, "orders.list", http.MethodGet, queryPath("/orders", query), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SellerOrders lists orders received by the current seller
func (c *Client) SellerOrders(ctx context.Context, page int) ([]domain.Order, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	var orders []domain.Order
	if err := c.do(ctx, "orders.seller_list", http.MethodGet, queryPath("/orders/seller", query), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches one order by id
func (c *Client) Order(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/orders/%d", id)
	if err := c.do(ctx, "orders.get", http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order to a new status (seller side)
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	body := map[string]string{"status": status}
	path := fmt.Sprintf("/orders/%d/status", id)
	var order domain.Order
	if err := c.do(ctx, "orders.update_status", http.MethodPatch, path, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
