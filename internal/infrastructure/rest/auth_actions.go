package rest

import (
	"context"
	"net/http"

	"github.com/teslo-shop/storefront-go/internal/core/domain"
	"github.com/teslo-shop/storefront-go/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	var out authResponse
	req := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&out)

	if _, err := c.send("login", req, http.MethodPost, "/auth/login"); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: out.User, Token: out.Token}, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (*ports.AuthResult, error) {
	var out authResponse
	req := c.http.R().
		SetContext(ctx).
		SetBody(registerRequest{FullName: fullName, Email: email, Password: password}).
		SetResult(&out)

	if _, err := c.send("register", req, http.MethodPost, "/auth/register"); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: out.User, Token: out.Token}, nil
}

// CheckStatus revalidates the persisted token against the backend and
// returns a renewed session. Without a stored token no call is made.
func (c *Client) CheckStatus(ctx context.Context) (*ports.AuthResult, error) {
	if _, err := c.tokens.Get(ctx); err != nil {
		return nil, domain.ErrNoToken
	}

	var out authResponse
	req := c.http.R().SetContext(ctx).SetResult(&out)

	if _, err := c.send("check_status", req, http.MethodGet, "/auth/check-status"); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: out.User, Token: out.Token}, nil
}
