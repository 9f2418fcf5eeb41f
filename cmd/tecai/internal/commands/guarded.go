package commands

import (
	"context"
	"fmt"

	"github.com/tecai-sistemas/tecai/internal/api"
	"github.com/tecai-sistemas/tecai/internal/authz"
	"github.com/tecai-sistemas/tecai/internal/session"
)

// runGuarded runs fn behind a fresh role-gated check. The protected action
// never runs on a redirect decision; the returned error tells the user how
// to proceed.
func runGuarded(
	ctx context.Context,
	app *app,
	required []authz.Role,
	fn func(ident *api.Identity) error,
) error {
	guard := session.NewGuard(required, app.manager, app.api)
	defer guard.Close()

	decision, err := guard.Protect(ctx, fn)
	switch decision.State {
	case session.GuardAuthenticated:
		return err
	case session.GuardRedirectDenied:
		return fmt.Errorf("access denied: %s", decision.Reason)
	default:
		return fmt.Errorf("not authenticated (%s); run 'tecai login'", decision.Reason)
	}
}
