package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tecai-sistemas/tecai/internal/authz"
)

// WhoamiCmd shows the authenticated identity. By default it asks the
// backend; --cached reads the local snapshot without a network call.
type WhoamiCmd struct {
	Cached bool `help:"Show the locally cached identity without contacting the backend"`
}

func (c *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	if c.Cached {
		sess := app.manager.Current()
		if !sess.Valid() {
			return fmt.Errorf("no active session; run 'tecai login'")
		}

		fmt.Printf("Username: %s\n", sess.Username)
		fmt.Printf("Email:    %s\n", sess.Email)
		fmt.Printf("Role:     %s\n", sess.PrimaryRole())
		printPermissions(sess.Permissions)
		return nil
	}

	ident, err := app.api.Me(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve identity: %w", err)
	}

	fmt.Printf("Username: %s\n", ident.Username)
	fmt.Printf("Email:    %s\n", ident.Email)
	fmt.Printf("Role:     %s\n", ident.Role())
	printPermissions(ident.Permissions)
	return nil
}

func printPermissions(relations []authz.PermissionRelation) {
	if len(relations) == 0 {
		return
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AGENT\tCATEGORIES\tCONTENT")
	for _, rel := range relations {
		fmt.Fprintf(w, "%s\t%v\t%v\n", rel.AgentID, rel.ManageCategories, rel.ManageContent)
	}
	w.Flush()
}
