package storefront

import (
	"context"
	"sync"

	"github.com/KingGimer44/VideoJuego/models"
)

// SessionState is either anonymous or authenticated.
type SessionState int

const (
	Anonymous SessionState = iota
	Authenticated
)

func (s SessionState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Route names the navigation subtree reachable in a state.
type Route string

const (
	RouteAuth Route = "auth"
	RouteMain Route = "main"
)

// RouteFor maps a session state to its navigation subtree.
func RouteFor(s SessionState) Route {
	if s == Authenticated {
		return RouteMain
	}
	return RouteAuth
}

// Authenticator is the part of the API the session needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (*models.AuthResponse, error)
}

// SessionSnapshot is what listeners receive after every transition.
type SessionSnapshot struct {
	State   SessionState
	User    *models.UserResponse
	Loading bool
	Err     error
}

// Route returns the subtree for this snapshot.
func (s SessionSnapshot) Route() Route { return RouteFor(s.State) }

// Session tracks the signed-in user. Logging out clears the cart.
type Session struct {
	api  Authenticator
	cart *Cart

	mu        sync.Mutex
	state     SessionState
	user      *models.UserResponse
	token     string
	loading   bool
	lastErr   error
	listeners map[int]func(SessionSnapshot)
	nextID    int
}

// NewSession starts anonymous. cart may be nil.
func NewSession(api Authenticator, cart *Cart) *Session {
	return &Session{api: api, cart: cart, listeners: make(map[int]func(SessionSnapshot))}
}

func (s *Session) Subscribe(fn func(SessionSnapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) State() SessionState { return s.Snapshot().State }

func (s *Session) User() *models.UserResponse { return s.Snapshot().User }

func (s *Session) Route() Route { return s.Snapshot().Route() }

// Token is the bearer token from the last login, if the API issued one.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Login authenticates on success. On failure the session stays anonymous
// and the error is kept as the last error.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.update(func() {
		s.loading = true
		s.lastErr = nil
	})

	resp, err := s.api.Login(ctx, email, password)

	s.update(func() {
		s.loading = false
		if err != nil {
			s.lastErr = err
			return
		}
		user := resp.User
		s.state = Authenticated
		s.user = &user
		s.token = resp.Token
	})
	return err
}

// Register creates the account without signing in. The caller logs in next.
func (s *Session) Register(ctx context.Context, name, email, password string) (*models.UserResponse, error) {
	s.update(func() {
		s.loading = true
		s.lastErr = nil
	})

	resp, err := s.api.Register(ctx, name, email, password)

	s.update(func() {
		s.loading = false
		s.lastErr = err
	})
	if err != nil {
		return nil, err
	}
	user := resp.User
	return &user, nil
}

// Logout returns to anonymous and empties the cart.
func (s *Session) Logout() {
	s.update(func() {
		s.state = Anonymous
		s.user = nil
		s.token = ""
		s.lastErr = nil
	})
	if s.cart != nil {
		s.cart.ClearCart()
	}
}

func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	snap := s.snapshotLocked()
	listeners := make([]func(SessionSnapshot), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

func (s *Session) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{State: s.state, Loading: s.loading, Err: s.lastErr}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}
