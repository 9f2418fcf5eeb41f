package session

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/tecai-sistemas/tecai/internal/storage"
)

// State of the session lifecycle.
type State int32

const (
	StateActive State = iota
	StateCleaning
	StateAwaitingAck
	StateRedirecting
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StateCleaning:
		return "CLEANING"
	case StateAwaitingAck:
		return "AWAITING_ACK"
	case StateRedirecting:
		return "REDIRECTING"
	default:
		return "UNKNOWN"
	}
}

// Notifier presents the blocking session-expired notice. NoticeExpired
// returns only after the user acknowledges it; there is no timeout.
type Notifier interface {
	NoticeExpired(ctx context.Context)
}

// Navigator moves the user to the login entry point, replacing history so
// the previous protected screen cannot be reached by navigating back.
type Navigator interface {
	ReplaceToLogin(ctx context.Context)
}

// Manager is the sole authority for destroying a session. Teardown runs at
// most once per expiry event regardless of how many API calls fail
// concurrently; losing triggers are dropped.
type Manager struct {
	store    storage.Store
	notifier Notifier
	nav      Navigator

	cleaning atomic.Bool
	state    atomic.Int32
}

// NewManager creates a manager over store. notifier and nav drive the
// user-visible expiry sequence.
func NewManager(store storage.Store, notifier Notifier, nav Navigator) *Manager {
	return &Manager{store: store, notifier: notifier, nav: nav}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// Cleaning reports whether a teardown is in flight.
func (m *Manager) Cleaning() bool {
	return m.cleaning.Load()
}

// Begin starts a new session, replacing any previous one.
func (m *Manager) Begin(s *Session) error {
	if err := s.writeTo(m.store); err != nil {
		return err
	}

	log.Info().Str("username", s.Username).Str("role", s.PrimaryRole().String()).Msg("session started")
	return nil
}

// Current loads the stored session snapshot. An empty or unreadable store
// yields an invalid session.
func (m *Manager) Current() *Session {
	return readFrom(m.store)
}

// Token implements api.TokenSource over the credential store.
func (m *Manager) Token() (string, bool) {
	token, ok, err := m.store.Read(storage.KeyToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read token")
		return "", false
	}
	if token == "" {
		return "", false
	}
	return token, ok
}

// HandleExpiry tears the session down after the backend rejected the
// token: clear storage, show the blocking notice, then redirect to login.
// Concurrent triggers while a teardown is in flight are dropped; the guard
// flag is released only after the redirect completes.
func (m *Manager) HandleExpiry(ctx context.Context) {
	if !m.cleaning.CompareAndSwap(false, true) {
		log.Debug().Msg("session teardown already in flight, dropping trigger")
		return
	}

	log.Info().Msg("session expired, tearing down")
	m.state.Store(int32(StateCleaning))

	// Storage failures are advisory here: presenting the notice and
	// forcing re-login takes priority over confirming a perfect wipe.
	if err := m.store.RemoveAll(storage.SessionKeys); err != nil {
		log.Warn().Err(err).Msg("session cleanup finished with storage errors")
	}

	m.state.Store(int32(StateAwaitingAck))
	m.notifier.NoticeExpired(ctx)

	m.state.Store(int32(StateRedirecting))
	m.nav.ReplaceToLogin(ctx)

	m.state.Store(int32(StateActive))
	m.cleaning.Store(false)
}

// Logout destroys the session on the user's request. It shares the
// teardown guard with HandleExpiry, so a logout racing an expiry still
// cleans up at most once. No notice is shown; the user asked for this.
func (m *Manager) Logout(ctx context.Context) {
	if !m.cleaning.CompareAndSwap(false, true) {
		log.Debug().Msg("session teardown already in flight, dropping logout")
		return
	}

	m.state.Store(int32(StateCleaning))

	if err := m.store.RemoveAll(storage.SessionKeys); err != nil {
		log.Warn().Err(err).Msg("logout cleanup finished with storage errors")
	}

	m.state.Store(int32(StateRedirecting))
	m.nav.ReplaceToLogin(ctx)

	m.state.Store(int32(StateActive))
	m.cleaning.Store(false)

	log.Info().Msg("logged out")
}
