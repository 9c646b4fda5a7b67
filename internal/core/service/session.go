package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
	"github.com/teslo-shop/storefront-go/internal/metrics"
)

// Session is the single shared authentication state of the process: current
// user, bearer token, and status. All fields are written only by Session's
// own operations (single-writer cell); reads may come from any goroutine.
//
// Operations report success as a bool and never surface errors to callers —
// a failed login and a failed network call look the same: a cleared session.
type Session struct {
	mu     sync.RWMutex
	auth   ports.AuthAPI
	tokens ports.TokenStore
	log    zerolog.Logger

	user   *domain.User
	token  string
	status domain.AuthStatus
}

// NewSession returns a session in the "checking" state; call
// CheckAuthStatus at startup to resolve it against the persisted token.
func NewSession(auth ports.AuthAPI, tokens ports.TokenStore, log zerolog.Logger) *Session {
	return &Session{
		auth:   auth,
		tokens: tokens,
		log:    log,
		status: domain.AuthChecking,
	}
}

// Login signs the user in. On success the token is persisted and mirrored
// into memory; on any failure the persisted token is cleared and the
// session resets to not-authenticated.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	res, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.log.Debug().Err(err).Str("email", email).Msg("login failed")
		s.reset(ctx)
		metrics.AuthOperationsTotal.WithLabelValues("login", "failed").Inc()
		return false
	}

	s.establish(ctx, res)
	metrics.AuthOperationsTotal.WithLabelValues("login", "ok").Inc()
	return true
}

// Register creates an account and signs it in. Same contract as Login.
func (s *Session) Register(ctx context.Context, fullName, email, password string) bool {
	res, err := s.auth.Register(ctx, fullName, email, password)
	if err != nil {
		s.log.Debug().Err(err).Str("email", email).Msg("registration failed")
		s.reset(ctx)
		metrics.AuthOperationsTotal.WithLabelValues("register", "failed").Inc()
		return false
	}

	s.establish(ctx, res)
	metrics.AuthOperationsTotal.WithLabelValues("register", "ok").Inc()
	return true
}

// CheckAuthStatus revalidates the persisted token at startup. A missing
// token, a locally expired one, and a rejected check all resolve to
// not-authenticated.
func (s *Session) CheckAuthStatus(ctx context.Context) bool {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		s.reset(ctx)
		metrics.AuthOperationsTotal.WithLabelValues("check_status", "failed").Inc()
		return false
	}

	if expired(token) {
		s.log.Debug().Msg("persisted token already expired, skipping check")
		s.reset(ctx)
		metrics.AuthOperationsTotal.WithLabelValues("check_status", "failed").Inc()
		return false
	}

	res, err := s.auth.CheckStatus(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("token rejected by backend")
		s.reset(ctx)
		metrics.AuthOperationsTotal.WithLabelValues("check_status", "failed").Inc()
		return false
	}

	s.establish(ctx, res)
	metrics.AuthOperationsTotal.WithLabelValues("check_status", "ok").Inc()
	return true
}

// Logout clears the session synchronously; no network call is made.
func (s *Session) Logout(ctx context.Context) {
	s.reset(ctx)
	metrics.AuthOperationsTotal.WithLabelValues("logout", "ok").Inc()
}

// IsAdmin reports whether the signed-in user carries the admin role.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the in-memory bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Status returns the current lifecycle state.
func (s *Session) Status() domain.AuthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) establish(ctx context.Context, res *ports.AuthResult) {
	if err := s.tokens.Set(ctx, res.Token); err != nil {
		s.log.Error().Err(err).Msg("failed to persist token, session is memory-only")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user := res.User
	s.user = &user
	s.token = res.Token
	s.status = domain.AuthAuthenticated
}

func (s *Session) reset(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to clear persisted token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	s.status = domain.AuthNotAuthenticated
}

// expired peeks at the token's exp claim without verifying the signature:
// the backend remains the authority, this only skips a doomed round trip.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque tokens pass through to the backend check.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
