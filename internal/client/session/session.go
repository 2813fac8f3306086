package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// ProfileFetcher resolves the stored credential token into the current user.
type ProfileFetcher interface {
	Me(ctx context.Context) (*models.User, error)
}

// TokenStore persists the single credential token.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type Status string

const (
	StatusLoading       Status = "loading"
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

type Session struct {
	// op serializes Init, Login, Logout and Close.
	op sync.Mutex

	mu          sync.RWMutex
	user        *models.User
	loading     bool
	initialized bool
	closed      bool

	api    ProfileFetcher
	store  TokenStore
	logger logging.Logger
}

// New returns a session in the loading state. Nothing is read until Init.
func New(api ProfileFetcher, store TokenStore, logger logging.Logger) *Session {
	return &Session{
		api:     api,
		store:   store,
		logger:  logger.With("component", "session"),
		loading: true,
	}
}

// Init hydrates the session from the stored token. With no token it finishes
// anonymous without touching the network. A token the backend does not
// resolve is cleared. Loading is false once Init returns, whatever the
// outcome. Only storage failures are returned.
func (s *Session) Init(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.initialized {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.initialized = true
	s.mu.Unlock()

	defer s.setLoading(false)

	token, err := s.store.Token(ctx)
	if err != nil {
		s.logger.Error(ctx, "cannot read stored token", "error", err)
		return fmt.Errorf("read stored token: %w", err)
	}
	if token == "" {
		s.logger.Debug(ctx, "no stored token")
		return nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn(ctx, "stored token did not resolve, clearing it", "error", err)
		if cerr := s.store.ClearToken(context.WithoutCancel(ctx)); cerr != nil {
			return fmt.Errorf("clear stored token: %w", cerr)
		}
		return nil
	}

	s.setUser(user)
	s.logger.Info(ctx, "session restored", s.identity(token, user)...)
	return nil
}

// Login stores token and then fetches the profile it belongs to. The fetch
// is issued only after the token is persisted. If the fetch fails the token
// is cleared again and the returned error wraps ErrProfileUnavailable.
func (s *Session) Login(ctx context.Context, token string) error {
	s.op.Lock()
	defer s.op.Unlock()

	if s.isClosed() {
		return ErrClosed
	}
	if token == "" {
		return ErrEmptyToken
	}

	if err := s.store.SetToken(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn(ctx, "failed to fetch profile after login", "error", err)
		s.setUser(nil)
		if cerr := s.store.ClearToken(context.WithoutCancel(ctx)); cerr != nil {
			s.logger.Error(ctx, "cannot clear token after failed login", "error", cerr)
		}
		return fmt.Errorf("%w: %w", ErrProfileUnavailable, err)
	}

	s.setUser(user)
	s.logger.Info(ctx, "session established", s.identity(token, user)...)
	return nil
}

// Logout forgets the user and clears the stored token. No request is made.
// The in-memory user is dropped even when clearing storage fails.
func (s *Session) Logout(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.setUser(nil)
	if err := s.store.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

// Close ends the session's lifetime. The stored token is kept so the next
// process can restore it. Further Init and Login calls return ErrClosed.
func (s *Session) Close(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.user = nil
	s.loading = false
	return nil
}

// User returns the current user, or nil when anonymous.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading is true until Init has finished.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.loading:
		return StatusLoading
	case s.user != nil:
		return StatusAuthenticated
	default:
		return StatusAnonymous
	}
}

// Subject returns the "sub" claim of the stored token, or "" when there is
// no token or it is not a JWT.
func (s *Session) Subject(ctx context.Context) (string, error) {
	token, err := s.store.Token(ctx)
	if err != nil {
		return "", err
	}
	sub, _ := SubjectOf(token)
	return sub, nil
}

func (s *Session) identity(token string, user *models.User) []any {
	args := []any{"email", user.Email}
	if sub, ok := SubjectOf(token); ok {
		args = append(args, "subject", sub)
	}
	return args
}

func (s *Session) setUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Session) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}
