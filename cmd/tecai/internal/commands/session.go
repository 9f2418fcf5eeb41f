package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/tecai-sistemas/tecai/internal/session"
)

// SessionCmd inspects local session state.
type SessionCmd struct {
	Status SessionStatusCmd `cmd:"" help:"Show session status"`
}

// SessionStatusCmd reports token presence and locally readable expiry.
type SessionStatusCmd struct{}

func (c *SessionStatusCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	sess := app.manager.Current()
	if !sess.Valid() {
		fmt.Println("No active session.")
		return nil
	}

	fmt.Printf("User:      %s\n", sess.Username)
	fmt.Printf("Role:      %s\n", sess.PrimaryRole())
	fmt.Printf("Lifecycle: %s\n", app.manager.State())

	info := session.InspectToken(sess.Token)
	switch {
	case info.Opaque:
		fmt.Println("Token:     opaque (expiry unknown locally)")
	case info.ExpiresAt.IsZero():
		fmt.Println("Token:     no expiry claim")
	case info.Expired(time.Now()):
		fmt.Printf("Token:     expired at %s\n", info.ExpiresAt.Format(time.RFC3339))
	default:
		fmt.Printf("Token:     valid until %s\n", info.ExpiresAt.Format(time.RFC3339))
	}

	return nil
}
