package api

import (
	"context"
	"net/http"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
)

// RegisterRequest carries the sign-up fields
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsSeller  bool   `json:"is_seller"`
}

// Register creates an account upstream
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "auth.register", http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token pair
func (c *Client) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	body := map[string]string{
		"username": username,
		"password": password,
	}
	var pair domain.TokenPair
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Refresh exchanges a refresh token for a new token pair
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	body := map[string]string{"refresh": refreshToken}
	var pair domain.TokenPair
	if err := c.do(ctx, "auth.refresh", http.MethodPost, "/auth/refresh", body, &pair); err != nil {
		return nil, err
	}
	// Some backends rotate only the access token
	if pair.Refresh == "" {
		pair.Refresh = refreshToken
	}
	return &pair, nil
}

// Logout invalidates the refresh token server-side
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refresh": refreshToken}
	return c.do(ctx, "auth.logout", http.MethodPost, "/auth/logout", body, nil)
}

// Profile fetches the current user using the stored access token
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "auth.profile", http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates profile fields for the current user
func (c *Client) UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, "auth.update_profile", http.MethodPut, "/auth/profile", profile, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword changes the current user's password
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	return c.do(ctx, "auth.change_password", http.MethodPost, "/auth/change-password", body, nil)
}
