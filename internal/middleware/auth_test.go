package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/session"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthCookie_RedirectsWithOriginalPath(t *testing.T) {
	guard := RequireAuthCookie("agri_token")
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/account/orders/5", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login?redirect=%2Faccount%2Forders%2F5", rec.Header().Get("Location"))
}

func TestRequireAuthCookie_PassesWithCookie(t *testing.T) {
	guard := RequireAuthCookie("agri_token")
	called := false
	handler := guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(&http.Cookie{Name: "agri_token", Value: "some-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSession_RejectsAnonymous(t *testing.T) {
	api := &testutil.MockAuthAPI{}
	sessions := session.NewManager(api, session.NewMemoryTokenStore())
	sessions.Start(context.Background())

	handler := RequireSession(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run for anonymous request")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_PutsUserOnContext(t *testing.T) {
	api := &testutil.MockAuthAPI{
		ProfileFunc: func(ctx context.Context) (*domain.User, error) {
			return testutil.SampleUser(), nil
		},
	}
	tokens := session.NewMemoryTokenStore()
	require.NoError(t, tokens.Save(testutil.SampleTokenPair()))
	sessions := session.NewManager(api, tokens)
	sessions.Start(context.Background())

	var got *domain.User
	handler := RequireSession(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetUser(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, testutil.SampleUser().Username, got.Username)
}
