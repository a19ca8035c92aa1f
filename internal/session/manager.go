package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/domain"
	"github.com/ELYM2/D-AGRI-MARKET-front-sub000/internal/observability"
)

// State is the externally observable authentication state
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

const (
	// settleDelay lets a freshly persisted token pair settle before the
	// follow-up profile fetch. Workaround for the backend occasionally
	// rejecting a token issued in the same instant.
	settleDelay = 500 * time.Millisecond

	// waitTick / waitMax bound the poll loop of callers that arrive while
	// a profile fetch is already in flight.
	waitTick = 50 * time.Millisecond
	waitMax  = 5 * time.Second

	// debounceDelay coalesces bursts of passive revalidation signals
	debounceDelay = 200 * time.Millisecond
)

// Manager is the single source of truth for the signed-in identity.
// One instance serves the whole process and is injected everywhere a
// component needs to know who is logged in.
type Manager struct {
	api    domain.AuthAPI
	tokens domain.TokenStore

	mu         sync.Mutex
	state      State
	user       *domain.User
	lastErr    string
	loadedOnce bool
	inFlight   bool

	subs    map[int]func(*domain.User)
	nextSub int

	debounceMu sync.Mutex
	debounce   *time.Timer
	closed     bool

	// overridable in tests
	settle time.Duration
}

// NewManager creates a session manager over the given backend and token store
func NewManager(api domain.AuthAPI, tokens domain.TokenStore) *Manager {
	return &Manager{
		api:    api,
		tokens: tokens,
		state:  StateUninitialized,
		subs:   make(map[int]func(*domain.User)),
		settle: settleDelay,
	}
}

// Start performs the initial silent profile fetch. Safe to call once at
// process start; the session resolves to authenticated or anonymous.
func (m *Manager) Start(ctx context.Context) *domain.User {
	return m.fetchProfile(ctx, false)
}

// Current returns the signed-in user. If a profile fetch is already in
// flight it waits for that fetch instead of starting another; the wait is
// bounded and a timeout yields nil. If the session never loaded, one
// fetch is issued.
func (m *Manager) Current(ctx context.Context) *domain.User {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		observability.ProfileFetchCoalescedTotal.Inc()
		return m.awaitInFlight(ctx)
	}
	if m.loadedOnce {
		user := m.user
		m.mu.Unlock()
		return user
	}
	m.mu.Unlock()
	return m.fetchProfile(ctx, false)
}

// State returns the observable state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError returns the human-readable error from the last failed fetch
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Tokens exposes the current token pair so the login handler can mirror
// the access token into the route-guard cookie
func (m *Manager) Tokens() (*domain.TokenPair, bool) {
	return m.tokens.Pair()
}

// Login exchanges credentials for tokens, persists them, waits for the
// pair to settle and fetches the profile. Returns the identity or nil.
func (m *Manager) Login(ctx context.Context, username, password string) (*domain.User, error) {
	pair, err := m.api.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := m.tokens.Save(pair); err != nil {
		return nil, err
	}

	time.Sleep(m.settle)

	// A fetch already in flight when the tokens changed still reflects
	// the pre-login session; wait it out so the follow-up fetch carries
	// the new identity instead of coalescing onto the stale one.
	m.mu.Lock()
	busy := m.inFlight
	m.mu.Unlock()
	if busy {
		m.awaitInFlight(ctx)
	}

	user := m.fetchProfile(ctx, false)
	return user, nil
}

// Logout clears local tokens and identity first, so the anonymous state
// is observable immediately with no network round-trip, then invalidates
// the refresh token upstream (best effort).
func (m *Manager) Logout(ctx context.Context) {
	var refreshToken string
	if pair, ok := m.tokens.Pair(); ok {
		refreshToken = pair.Refresh
	}

	m.tokens.Clear()

	m.mu.Lock()
	m.user = nil
	m.state = StateAnonymous
	m.loadedOnce = true
	m.lastErr = ""
	subs := m.subscribers()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}

	if refreshToken != "" {
		if err := m.api.Logout(ctx, refreshToken); err != nil {
			slog.Warn("server-side logout failed, local session already cleared",
				slog.String("error", err.Error()))
		}
	}
}

// Reload forces a fresh profile fetch, flipping the loading state
func (m *Manager) Reload(ctx context.Context) *domain.User {
	return m.fetchProfile(ctx, false)
}

// NotifyAuthChanged coalesces passive revalidation signals (window focus,
// tab visibility, cross-component auth events). Bursts within the
// debounce window produce at most one silent fetch.
func (m *Manager) NotifyAuthChanged() {
	m.debounceMu.Lock()
	defer m.debounceMu.Unlock()

	if m.closed {
		return
	}
	if m.debounce != nil {
		m.debounce.Reset(debounceDelay)
		return
	}
	m.debounce = time.AfterFunc(debounceDelay, func() {
		m.debounceMu.Lock()
		m.debounce = nil
		m.debounceMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), waitMax)
		defer cancel()
		m.fetchProfile(ctx, true)
	})
}

// Subscribe registers a callback invoked with the identity (or nil) on
// every resolved state change. The returned function unsubscribes.
func (m *Manager) Subscribe(fn func(*domain.User)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Close stops any armed debounce timer and ignores further revalidation
// signals
func (m *Manager) Close() {
	m.debounceMu.Lock()
	defer m.debounceMu.Unlock()
	m.closed = true
	if m.debounce != nil {
		m.debounce.Stop()
		m.debounce = nil
	}
}

// fetchProfile is the single-flight profile fetch. A silent fetch does
// not flip the observable state to loading once a previous load has
// completed, so passive revalidation cannot cause UI flicker.
func (m *Manager) fetchProfile(ctx context.Context, silent bool) *domain.User {
	m.mu.Lock()
	if m.inFlight {
		m.mu.Unlock()
		observability.ProfileFetchCoalescedTotal.Inc()
		return m.awaitInFlight(ctx)
	}
	m.inFlight = true
	if !silent || !m.loadedOnce {
		m.state = StateLoading
	}
	m.mu.Unlock()

	user, errMsg := m.loadProfile(ctx)

	m.mu.Lock()
	m.inFlight = false
	m.loadedOnce = true
	m.lastErr = errMsg
	m.user = user
	if user != nil {
		m.state = StateAuthenticated
	} else {
		m.state = StateAnonymous
	}
	subs := m.subscribers()
	m.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
	return user
}

// loadProfile performs the network part of a fetch: at most one profile
// request, at most one refresh, at most one retried profile request.
func (m *Manager) loadProfile(ctx context.Context) (*domain.User, string) {
	pair, ok := m.tokens.Pair()
	if !ok || (pair.Access == "" && pair.Refresh == "") {
		observability.ProfileFetchesTotal.WithLabelValues("anonymous").Inc()
		return nil, ""
	}

	// A known-expired access token is guaranteed to 401; refresh up front
	// and spend the one allowed refresh attempt there.
	refreshed := false
	if accessExpired(pair.Access) && pair.Refresh != "" {
		if !m.refresh(ctx, pair.Refresh) {
			m.tokens.Clear()
			observability.ProfileFetchesTotal.WithLabelValues("anonymous").Inc()
			return nil, "session expired"
		}
		refreshed = true
	}

	user, err := m.api.Profile(ctx)
	if err == nil {
		observability.ProfileFetchesTotal.WithLabelValues("ok").Inc()
		return user, ""
	}

	if errors.Is(err, domain.ErrUnauthorized) && !refreshed {
		pair, ok = m.tokens.Pair()
		if ok && pair.Refresh != "" && m.refresh(ctx, pair.Refresh) {
			if user, err = m.api.Profile(ctx); err == nil {
				observability.ProfileFetchesTotal.WithLabelValues("refresh").Inc()
				return user, ""
			}
		}
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		m.tokens.Clear()
		observability.ProfileFetchesTotal.WithLabelValues("anonymous").Inc()
		return nil, "session expired"
	}

	observability.ProfileFetchesTotal.WithLabelValues("error").Inc()
	return nil, err.Error()
}

func (m *Manager) refresh(ctx context.Context, refreshToken string) bool {
	pair, err := m.api.Refresh(ctx, refreshToken)
	if err != nil {
		observability.TokenRefreshesTotal.WithLabelValues("failed").Inc()
		return false
	}
	if err := m.tokens.Save(pair); err != nil {
		observability.TokenRefreshesTotal.WithLabelValues("failed").Inc()
		return false
	}
	observability.TokenRefreshesTotal.WithLabelValues("ok").Inc()
	return true
}

// awaitInFlight polls until the in-flight fetch resolves, bounded at
// waitMax. A timed-out wait returns nil rather than a stale result.
func (m *Manager) awaitInFlight(ctx context.Context) *domain.User {
	deadline := time.Now().Add(waitMax)
	ticker := time.NewTicker(waitTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.mu.Lock()
			if !m.inFlight {
				user := m.user
				m.mu.Unlock()
				return user
			}
			m.mu.Unlock()
			if time.Now().After(deadline) {
				return nil
			}
		}
	}
}

// subscribers snapshots the callbacks under m.mu so notification happens
// without holding the lock
func (m *Manager) subscribers() []func(*domain.User) {
	subs := make([]func(*domain.User), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return subs
}
