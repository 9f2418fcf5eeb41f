package session

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/tecai-sistemas/tecai/internal/api"
	"github.com/tecai-sistemas/tecai/internal/authz"
)

// GuardState is the outcome of one guard pass.
type GuardState int32

const (
	// GuardLoading is the state while verification is pending; protected
	// content must not be shown.
	GuardLoading GuardState = iota
	// GuardAuthenticated means the protected content may run.
	GuardAuthenticated
	// GuardRedirectLogin means no usable session exists; go to login.
	GuardRedirectLogin
	// GuardRedirectDenied means the session is valid but the role does not
	// match the required set.
	GuardRedirectDenied
)

func (s GuardState) String() string {
	switch s {
	case GuardLoading:
		return "loading"
	case GuardAuthenticated:
		return "authenticated"
	case GuardRedirectLogin:
		return "redirect-login"
	case GuardRedirectDenied:
		return "redirect-denied"
	default:
		return "unknown"
	}
}

// IdentityResolver performs the fresh identity check for a guard pass.
type IdentityResolver interface {
	Me(ctx context.Context) (*api.Identity, error)
}

// GuardDecision carries the outcome of a Check. Identity is set only when
// State is GuardAuthenticated.
type GuardDecision struct {
	State    GuardState
	Role     authz.Role
	Identity *api.Identity
	Reason   string
}

// Guard protects one group of commands with a required role set. Every
// Check performs its own fresh identity check against the backend; nothing
// is cached across groups, since required roles differ between them.
type Guard struct {
	required []authz.Role
	tokens   api.TokenSource
	resolver IdentityResolver

	state  atomic.Int32
	closed atomic.Bool
}

// NewGuard creates a guard requiring one of the given roles.
func NewGuard(required []authz.Role, tokens api.TokenSource, resolver IdentityResolver) *Guard {
	return &Guard{required: required, tokens: tokens, resolver: resolver}
}

// State returns the guard's current state. It reads GuardLoading while a
// Check is in flight.
func (g *Guard) State() GuardState {
	return GuardState(g.state.Load())
}

// Close marks the guard dead. A Check resolving after Close is discarded
// and fails closed instead of acting on a stale result.
func (g *Guard) Close() {
	g.closed.Store(true)
}

// Check verifies the current user against the required role set. Every
// uncertainty fails closed: no token, resolver error, or unknown role all
// end in a redirect with protected content never exposed.
func (g *Guard) Check(ctx context.Context) GuardDecision {
	g.state.Store(int32(GuardLoading))

	token, ok := g.tokens.Token()
	if !ok || token == "" {
		g.state.Store(int32(GuardRedirectLogin))
		return GuardDecision{State: GuardRedirectLogin, Reason: "no session token"}
	}

	ident, err := g.resolver.Me(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("identity check failed, failing closed")
		g.state.Store(int32(GuardRedirectLogin))
		return GuardDecision{State: GuardRedirectLogin, Reason: "identity check failed"}
	}

	if g.closed.Load() {
		log.Debug().Msg("guard closed before identity check resolved, discarding")
		g.state.Store(int32(GuardRedirectLogin))
		return GuardDecision{State: GuardRedirectLogin, Reason: "guard closed"}
	}

	role := authz.ParseRole(ident.RoleID)
	if !slices.Contains(g.required, role) {
		g.state.Store(int32(GuardRedirectDenied))
		return GuardDecision{
			State:  GuardRedirectDenied,
			Role:   role,
			Reason: fmt.Sprintf("role %s is not allowed here", role),
		}
	}

	g.state.Store(int32(GuardAuthenticated))
	return GuardDecision{State: GuardAuthenticated, Role: role, Identity: ident}
}

// Protect runs fn exactly once if the guard authenticates the current
// user, and returns the decision either way.
func (g *Guard) Protect(ctx context.Context, fn func(ident *api.Identity) error) (GuardDecision, error) {
	decision := g.Check(ctx)
	if decision.State != GuardAuthenticated {
		return decision, nil
	}
	return decision, fn(decision.Identity)
}
