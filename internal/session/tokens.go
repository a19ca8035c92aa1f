package session

import (
	"sync"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway treats a token expiring within this window as already
// expired so a request does not race the expiry.
const expiryLeeway = 30 * time.Second

// MemoryTokenStore keeps the token pair in process memory. One store
// serves the whole process; every component observes the same pair.
type MemoryTokenStore struct {
	mu   sync.RWMutex
	pair *domain.TokenPair
}

// NewMemoryTokenStore creates an empty token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Pair returns the stored token pair, if any
func (s *MemoryTokenStore) Pair() (*domain.TokenPair, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pair == nil {
		return nil, false
	}
	copied := *s.pair
	return &copied, true
}

// Save replaces the stored token pair
func (s *MemoryTokenStore) Save(pair *domain.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *pair
	s.pair = &copied
	return nil
}

// Clear removes the stored token pair
func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = nil
}

// accessExpired inspects the access token's exp claim without verifying
// the signature (verification is the backend's job). Opaque or malformed
// tokens are passed through and left to the backend to reject.
func accessExpired(token string) bool {
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().Add(expiryLeeway).After(exp.Time)
}
