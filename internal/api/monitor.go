package api

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// ExpiryHandler is notified when an API call fails authentication. The
// session manager implements it; it is responsible for collapsing repeated
// notifications into a single cleanup.
type ExpiryHandler interface {
	HandleExpiry(ctx context.Context)
}

// Monitor wraps a Client and routes typed auth failures to a single
// handler injected at construction. The original error always reaches the
// caller so call-site handling keeps working; the handler runs
// fire-and-forget off the request path. A nil handler leaves errors
// untouched.
type Monitor struct {
	client  *Client
	handler ExpiryHandler
	wg      sync.WaitGroup
}

// NewMonitor creates a monitor around client. handler may be nil.
func NewMonitor(client *Client, handler ExpiryHandler) *Monitor {
	return &Monitor{client: client, handler: handler}
}

// notify inspects err for an auth failure and dispatches the handler.
// Always returns err unchanged.
func (m *Monitor) notify(err error) error {
	if err == nil || !IsAuthError(err) {
		return err
	}

	if m.handler == nil {
		return err
	}

	log.Debug().Err(err).Msg("auth failure detected, notifying session owner")
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.handler.HandleExpiry(context.Background())
	}()

	return err
}

// Wait blocks until all in-flight expiry notifications have finished.
// Called before process exit so a detected expiry completes its cleanup.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// Login starts a new session; there is no session to expire yet, so no
// monitoring applies.
func (m *Monitor) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	return m.client.Login(ctx, username, password)
}

func (m *Monitor) Me(ctx context.Context) (*Identity, error) {
	ident, err := m.client.Me(ctx)
	return ident, m.notify(err)
}

func (m *Monitor) ListUsers(ctx context.Context) ([]User, error) {
	users, err := m.client.ListUsers(ctx)
	return users, m.notify(err)
}

func (m *Monitor) ListDepartments(ctx context.Context) ([]Department, error) {
	departments, err := m.client.ListDepartments(ctx)
	return departments, m.notify(err)
}

func (m *Monitor) ListAgents(ctx context.Context) ([]Agent, error) {
	agents, err := m.client.ListAgents(ctx)
	return agents, m.notify(err)
}

func (m *Monitor) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := m.client.ListCategories(ctx)
	return categories, m.notify(err)
}

func (m *Monitor) UpdateCategory(ctx context.Context, id, name string) (*Category, error) {
	category, err := m.client.UpdateCategory(ctx, id, name)
	return category, m.notify(err)
}
