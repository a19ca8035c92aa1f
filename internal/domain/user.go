package domain

import (
	"context"
	"errors"
)

var (
	ErrUnauthorized       = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Profile holds the optional profile sub-record attached to a user
type Profile struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Avatar  string `json:"avatar,omitempty"`
}

// User represents the authenticated marketplace user
type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	IsSeller  bool     `json:"is_seller"`
	Profile   *Profile `json:"profile,omitempty"`
}

// TokenPair is the access/refresh token pair issued by the backend.
// The access token is short-lived; the refresh token is exchanged for a
// new pair via the refresh endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenStore owns the persisted token pair. Implementations must be safe
// for concurrent use.
type TokenStore interface {
	Pair() (*TokenPair, bool)
	Save(pair *TokenPair) error
	Clear()
}

// AuthAPI is the slice of the backend the session manager talks to
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context) (*User, error)
}
