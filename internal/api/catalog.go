package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
)

// ProductFilter narrows a product listing
type ProductFilter struct {
	CategoryID int64
	SellerID   int64
	Search     string
	Page       int
}

// Products lists products matching the filter
func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	query := url.Values{}
	if filter.CategoryID > 0 {
		query.Set("category", strconv.FormatInt(filter.CategoryID, 10))
	}
	if filter.SellerID > 0 {
		query.Set("seller", strconv.FormatInt(filter.SellerID, 10))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}

	var products []domain.Product
	if err := c.do(ctx, "products.list", http.MethodGet, queryPath("/products", query), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single product by id
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, "products.get", http.MethodGet, path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories lists all product categories
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, "categories.list", http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category (seller/admin only)
func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	var category domain.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, "categories.create", http.MethodPost, "/categories", body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Sellers lists producer accounts
func (c *Client) Sellers(ctx context.Context) ([]domain.Seller, error) {
	var sellers []domain.Seller
	if err := c.do(ctx, "sellers.list", http.MethodGet, "/sellers", nil, &sellers); err != nil {
		return nil, err
	}
	return sellers, nil
}

// Seller fetches a single seller by id
func (c *Client) Seller(ctx context.Context, id int64) (*domain.Seller, error) {
	var seller domain.Seller
	path := fmt.Sprintf("/sellers/%d", id)
	if err := c.do(ctx, "sellers.get", http.MethodGet, path, nil, &seller); err != nil {
		return nil, err
	}
	return &seller, nil
}

// SellerStats fetches the current seller's dashboard numbers
func (c *Client) SellerStats(ctx context.Context) (*domain.SellerStats, error) {
	var stats domain.SellerStats
	if err := c.do(ctx, "sellers.stats", http.MethodGet, "/seller/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Reviews lists reviews for a product
func (c *Client) Reviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	path := fmt.Sprintf("/products/%d/reviews", productID)
	if err := c.do(ctx, "reviews.list", http.MethodGet, path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ReplyToReview posts a seller reply on a review
func (c *Client) ReplyToReview(ctx context.Context, reviewID int64, reply string) error {
	body := map[string]string{"reply": reply}
	path := fmt.Sprintf("/reviews/%d/reply", reviewID)
	return c.do(ctx, "reviews.reply", http.MethodPost, path, body, nil)
}
