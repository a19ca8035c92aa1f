package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/api"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/session"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthBackend fakes the upstream auth endpoints. loginStatus controls
// the /auth/login response; calls counts every request received.
func newAuthBackend(t *testing.T, loginStatus int, calls *atomic.Int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		switch r.URL.Path {
		case "/auth/login":
			if loginStatus != http.StatusOK {
				w.WriteHeader(loginStatus)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
				return
			}
			json.NewEncoder(w).Encode(testutil.SampleTokenPair())
		case "/auth/profile":
			json.NewEncoder(w).Encode(testutil.SampleUser())
		case "/auth/logout":
			w.WriteHeader(http.StatusInternalServerError)
		case "/auth/register":
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(testutil.SampleUser())
		default:
			t.Errorf("Unexpected backend path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newAuthHandler(backendURL string) *AuthHandler {
	tokens := session.NewMemoryTokenStore()
	client := api.New(backendURL, 5*time.Second, tokens)
	sessions := session.NewManager(client, tokens)
	return NewAuthHandler(sessions, client, "agri_token", false)
}

func authCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "agri_token" {
			return c
		}
	}
	return nil
}

func TestLogin_Success_SetsAuthCookie(t *testing.T) {
	backend := newAuthBackend(t, http.StatusOK, nil)
	defer backend.Close()

	h := newAuthHandler(backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"amina","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "amina", resp.User.Username)

	cookie := authCookie(rec)
	require.NotNil(t, cookie, "login must set the route guard cookie")
	assert.Equal(t, testutil.SampleTokenPair().Access, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestLogin_MissingFields_NeverReachesBackend(t *testing.T) {
	var calls atomic.Int64
	backend := newAuthBackend(t, http.StatusOK, &calls)
	defer backend.Close()

	h := newAuthHandler(backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"amina"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int64(0), calls.Load())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	backend := newAuthBackend(t, http.StatusUnauthorized, nil)
	defer backend.Close()

	h := newAuthHandler(backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"amina","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, authCookie(rec))
}

func TestLogout_ClearsCookieDespiteBackendFailure(t *testing.T) {
	backend := newAuthBackend(t, http.StatusOK, nil)
	defer backend.Close()

	h := newAuthHandler(backend.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookie := authCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestRegister_LocalValidation(t *testing.T) {
	var calls atomic.Int64
	backend := newAuthBackend(t, http.StatusOK, &calls)
	defer backend.Close()

	h := newAuthHandler(backend.URL)

	tests := []struct {
		name string
		body string
	}{
		{"short password", `{"username":"a","email":"a@b.cm","password":"short","confirm_password":"short"}`},
		{"password mismatch", `{"username":"a","email":"a@b.cm","password":"longenough1","confirm_password":"longenough2"}`},
		{"missing email", `{"username":"a","password":"longenough1","confirm_password":"longenough1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Equal(t, int64(0), calls.Load(), "validation failures must not reach the backend")
}

func TestRegister_Success(t *testing.T) {
	backend := newAuthBackend(t, http.StatusOK, nil)
	defer backend.Close()

	h := newAuthHandler(backend.URL)

	body := `{"username":"amina","email":"amina@example.com","password":"secret123","confirm_password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var user domain.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "amina", user.Username)
}

func TestMe_Anonymous(t *testing.T) {
	backend := newAuthBackend(t, http.StatusOK, nil)
	defer backend.Close()

	h := newAuthHandler(backend.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
