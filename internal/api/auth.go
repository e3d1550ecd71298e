package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
)

// unwrap decodes an envelope response and, when the call succeeded,
// unmarshals its data into out (out may be nil for message-only endpoints).
// A 2xx with success=false is still an error.
func (c *Client) unwrap(ctx context.Context, method, reqPath string, query url.Values, body any, out any) (string, error) {
	var env dtos.Envelope
	if err := c.doRequest(ctx, method, reqPath, query, body, &env); err != nil {
		return "", err
	}
	if !env.Success {
		return "", &APIError{Status: http.StatusOK, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return env.Message, nil
}

// -----------------------------------------------------------------------------
// POST /auth/login
// -----------------------------------------------------------------------------
func (c *Client) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.AuthData, error) {
	var data dtos.AuthData
	if _, err := c.unwrap(ctx, http.MethodPost, "/auth/login", nil, req, &data); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &data, nil
}

// -----------------------------------------------------------------------------
// POST /auth/signup
// -----------------------------------------------------------------------------
func (c *Client) Signup(ctx context.Context, req dtos.SignupRequest) (*dtos.AuthData, error) {
	var data dtos.AuthData
	if _, err := c.unwrap(ctx, http.MethodPost, "/auth/signup", nil, req, &data); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &data, nil
}

// -----------------------------------------------------------------------------
// POST /auth/refresh-token
// -----------------------------------------------------------------------------
// The refresh credential travels in the cookie jar; the request has no body.
func (c *Client) RefreshToken(ctx context.Context) (*dtos.AuthData, error) {
	var data dtos.AuthData
	if _, err := c.unwrap(ctx, http.MethodPost, "/auth/refresh-token", nil, nil, &data); err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	return &data, nil
}

// -----------------------------------------------------------------------------
// GET /auth/me
// -----------------------------------------------------------------------------
func (c *Client) Me(ctx context.Context) (*dtos.User, error) {
	var data struct {
		User dtos.User `json:"user"`
	}
	if _, err := c.unwrap(ctx, http.MethodGet, "/auth/me", nil, nil, &data); err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	return &data.User, nil
}

// -----------------------------------------------------------------------------
// POST /auth/logout
// -----------------------------------------------------------------------------
func (c *Client) Logout(ctx context.Context) error {
	if _, err := c.unwrap(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// POST /auth/forgot-password
// -----------------------------------------------------------------------------
func (c *Client) ForgotPassword(ctx context.Context, req dtos.ForgotPasswordRequest) (string, error) {
	msg, err := c.unwrap(ctx, http.MethodPost, "/auth/forgot-password", nil, req, nil)
	if err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return msg, nil
}

// -----------------------------------------------------------------------------
// POST /auth/reset-password
// -----------------------------------------------------------------------------
func (c *Client) ResetPassword(ctx context.Context, req dtos.ResetPasswordRequest) (string, error) {
	msg, err := c.unwrap(ctx, http.MethodPost, "/auth/reset-password", nil, req, nil)
	if err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	return msg, nil
}
