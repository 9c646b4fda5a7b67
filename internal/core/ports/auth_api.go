package ports

import (
	"context"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
)

// AuthResult is the backend's answer to any auth operation: the account
// plus a fresh bearer token.
type AuthResult struct {
	User  domain.User
	Token string
}

// AuthAPI groups the auth action functions. Each performs exactly one HTTP
// call and maps the response into AuthResult.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, fullName, email, password string) (*AuthResult, error)
	// CheckStatus revalidates the currently persisted token and returns a
	// renewed one.
	CheckStatus(ctx context.Context) (*AuthResult, error)
}

// TokenStore is the single durable key holding the bearer token. Get
// returns domain.ErrNoToken when nothing is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
