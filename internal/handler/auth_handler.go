package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/session"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	sessions   *session.Manager
	client     *api.Client
	cookieName string
	secure     bool
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(sessions *session.Manager, client *api.Client, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{
		sessions:   sessions,
		client:     client,
		cookieName: cookieName,
		secure:     secure,
	}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// Login signs the user in through the session manager and sets the auth
// cookie the /account route guard checks for.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondUpstreamError(w, err)
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, h.sessions.LastError())
		return
	}

	h.setAuthCookie(w)

	respondJSON(w, http.StatusOK, LoginResponse{Success: true, User: user})
}

// RegisterRequest represents sign-up fields
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Confirm   string `json:"confirm_password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsSeller  bool   `json:"is_seller"`
}

// Register creates an account upstream after local validation
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Validation failures never reach the network
	if req.Username == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "Username and email are required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if req.Password != req.Confirm {
		respondError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	user, err := h.client.Register(r.Context(), api.RegisterRequest{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsSeller:  req.IsSeller,
	})
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Logout clears the session and the auth cookie. Always succeeds locally
// even when the backend call fails.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me returns the current identity, or 401 when anonymous
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.Current(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ChangePasswordRequest carries the password change fields
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	Confirm         string `json:"confirm_password"`
}

// ChangePassword validates locally and forwards the change upstream
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.NewPassword) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if req.NewPassword != req.Confirm {
		respondError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	if err := h.client.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpdateProfile forwards profile updates upstream and refreshes the
// cached identity so every component observes the change
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.client.UpdateProfile(r.Context(), profile)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	h.sessions.NotifyAuthChanged()

	respondJSON(w, http.StatusOK, user)
}

// setAuthCookie mirrors the access token into the cookie the site's
// route-protection layer checks on /account navigation
func (h *AuthHandler) setAuthCookie(w http.ResponseWriter) {
	token := ""
	if pair, ok := h.sessions.Tokens(); ok {
		token = pair.Access
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
