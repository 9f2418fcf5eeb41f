// Package api is the HTTP client for the TEC-AI backend. It owns bearer
// authentication, transient-failure retries, and the typed auth-failure
// classification the session layer reacts to.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tecai-sistemas/tecai/internal/authz"
)

// TokenSource supplies the current bearer token, if any. The session
// manager implements it over the credential store.
type TokenSource interface {
	Token() (string, bool)
}

// Config holds client configuration.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	MaxTries uint
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:  "http://localhost:3000",
		Timeout:  20 * time.Second,
		MaxTries: 3,
	}
}

// Client talks JSON to the backend. Auth failures come back as *AuthError,
// other failures as *APIError; neither is retried. Network errors and 5xx
// responses are retried with exponential backoff up to MaxTries.
type Client struct {
	cfg    Config
	http   *http.Client
	tokens TokenSource
}

// New creates a client. tokens may be nil for unauthenticated use.
func New(cfg Config, tokens TokenSource) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = DefaultConfig().MaxTries
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		tokens: tokens,
	}
}

// LoginRequest is the credential payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the new bearer token and the identity it belongs to.
type LoginResponse struct {
	Token    string   `json:"token"`
	Identity Identity `json:"user"`
}

// Identity is the backend's view of the authenticated user. Permissions is
// populated for non-super-admin roles only.
type Identity struct {
	UserID      string                     `json:"userId"`
	Username    string                     `json:"username"`
	Email       string                     `json:"email"`
	RoleID      int                        `json:"roleId"`
	RoleName    string                     `json:"roleName"`
	RoleIDs     []int                      `json:"roleIds"`
	Permissions []authz.PermissionRelation `json:"permissions"`
}

// Role returns the canonical role for the identity.
func (i *Identity) Role() authz.Role {
	return authz.ParseRole(i.RoleID)
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleID   int    `json:"roleId"`
}

type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Agent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	AgentID string `json:"agentId"`
}

// Login exchanges credentials for a bearer token. No bearer header is sent.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response missing token")
	}
	return &resp, nil
}

// Me resolves the current identity, primary role, and permission relations.
// Any 401/403-class response is an auth failure; the identity endpoint
// never distinguishes a forbidden token from an expired one.
func (c *Client) Me(ctx context.Context) (*Identity, error) {
	var ident Identity
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &ident); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
			return nil, &AuthError{Status: apiErr.Status, Message: apiErr.Message}
		}
		return nil, err
	}
	return &ident, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ListDepartments(ctx context.Context) ([]Department, error) {
	var departments []Department
	if err := c.doJSON(ctx, http.MethodGet, "/departments", nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var agents []Agent
	if err := c.doJSON(ctx, http.MethodGet, "/agents", nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id, name string) (*Category, error) {
	var category Category
	payload := map[string]string{"name": name}
	if err := c.doJSON(ctx, http.MethodPut, "/categories/"+id, payload, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// doJSON performs one logical request with retries. Auth failures and
// other 4xx responses are permanent; network errors and 5xx are retried.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	operation := func() (struct{}, error) {
		err := c.doOnce(ctx, method, path, body, out)
		if err == nil {
			return struct{}{}, nil
		}

		var ae *AuthError
		if errors.As(err, &ae) {
			return struct{}{}, backoff.Permanent(err)
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return struct{}{}, backoff.Permanent(err)
		}

		log.Debug().Err(err).Str("method", method).Str("path", path).Msg("retrying request")
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(c.cfg.MaxTries),
	)
	return err
}

// errorResponse is the backend's error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) tokenInvalid() bool {
	switch e.Error {
	case "invalid_token", "token_expired", "token_invalid":
		return true
	}
	return false
}

func (e errorResponse) text(status int) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return http.StatusText(status)
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(c.cfg.BaseURL, "/")+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		_ = json.Unmarshal(respBody, &errResp)
		return classifyStatus(resp.StatusCode, errResp)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func classifyStatus(status int, errResp errorResponse) error {
	switch {
	case status == http.StatusUnauthorized:
		return &AuthError{Status: status, Message: errResp.text(status)}
	case status == http.StatusForbidden && errResp.tokenInvalid():
		return &AuthError{Status: status, Message: errResp.text(status)}
	default:
		return &APIError{Status: status, Message: errResp.text(status)}
	}
}
