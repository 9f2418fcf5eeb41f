package commands

import (
	"context"
	"fmt"
)

// LogoutCmd destroys the local session.
type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.manager.Current().Valid() {
		fmt.Println("No active session.")
		return nil
	}

	app.manager.Logout(ctx)
	return nil
}
