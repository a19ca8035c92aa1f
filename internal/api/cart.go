package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
)

// Cart fetches the current user's cart
func (c *Client) Cart(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, "cart.get", http.MethodGet, "/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds a product line to the cart
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	body := map[string]any{
		"product_id": productID,
		"quantity":   quantity,
	}
	var cart domain.Cart
	if err := c.do(ctx, "cart.add", http.MethodPost, "/cart/items", body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem sets the quantity of an existing cart line
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	body := map[string]any{"quantity": quantity}
	path := fmt.Sprintf("/cart/items/%d", productID)
	var cart domain.Cart
	if err := c.do(ctx, "cart.update", http.MethodPut, path, body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveFromCart deletes a cart line
func (c *Client) RemoveFromCart(ctx context.Context, productID int64) (*domain.Cart, error) {
	path := fmt.Sprintf("/cart/items/%d", productID)
	var cart domain.Cart
	if err := c.do(ctx, "cart.remove", http.MethodDelete, path, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart removes every line from the cart
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, "cart.clear", http.MethodDelete, "/cart", nil, nil)
}

// Favorites lists the user's favorite products
func (c *Client) Favorites(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, "favorites.list", http.MethodGet, "/favorites", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ToggleFavorite flips the favorite flag for a product and reports the new state
func (c *Client) ToggleFavorite(ctx context.Context, productID int64) (bool, error) {
	var result struct {
		Favorite bool `json:"favorite"`
	}
	path := fmt.Sprintf("/favorites/%d/toggle", productID)
	if err := c.do(ctx, "favorites.toggle", http.MethodPost, path, nil, &result); err != nil {
		return false, err
	}
	return result.Favorite, nil
}
