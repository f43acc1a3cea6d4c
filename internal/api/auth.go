package api

import (
	"context"
	"net/http"

	"coursehub/internal/errs"
	"coursehub/internal/models"
)

// Login posts credentials to the session login endpoint. A 2xx reply with
// success=false is reported as an AuthError.
func (c *Client) Login(ctx context.Context, body models.LoginRequest) (*models.AuthResponse, error) {
	out := &models.AuthResponse{}
	if err := c.do(ctx, request{op: "login", method: http.MethodPost, url: "/api/auth/login/", body: body, out: out}); err != nil {
		return nil, err
	}
	if out.Success != nil && !*out.Success {
		return nil, &errs.AuthError{Message: out.Text()}
	}
	return out, nil
}

// Register creates an account. It does not establish a session on the client side.
func (c *Client) Register(ctx context.Context, body models.RegisterRequest) (*models.AuthResponse, error) {
	out := &models.AuthResponse{}
	if err := c.do(ctx, request{op: "register", method: http.MethodPost, url: "/api/auth/register/", body: body, out: out}); err != nil {
		return nil, err
	}
	if out.Success != nil && !*out.Success {
		return nil, &errs.NetworkError{Op: "register", Message: out.Text()}
	}
	return out, nil
}

// Logout ends the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, request{op: "logout", method: http.MethodPost, url: "/api/auth/logout/"})
}
