package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tecai-sistemas/tecai/internal/api"
	"github.com/tecai-sistemas/tecai/internal/authz"
)

// SuperCmd is the super-administrator command group.
type SuperCmd struct {
	Agents SuperAgentsCmd `cmd:"" help:"Manage agents"`
}

var superRoles = []authz.Role{authz.RoleSuperAdmin}

// SuperAgentsCmd lists agents.
type SuperAgentsCmd struct {
	List SuperAgentsListCmd `cmd:"" help:"List agents"`
}

type SuperAgentsListCmd struct{}

func (c *SuperAgentsListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	return runGuarded(ctx, app, superRoles, func(ident *api.Identity) error {
		agents, err := app.api.ListAgents(ctx)
		if err != nil {
			return fmt.Errorf("failed to list agents: %w", err)
		}

		if len(agents) == 0 {
			fmt.Println("No agents found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, agent := range agents {
			fmt.Fprintf(w, "%s\t%s\n", agent.ID, agent.Name)
		}
		w.Flush()
		return nil
	})
}
