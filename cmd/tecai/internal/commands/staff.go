package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tecai-sistemas/tecai/internal/api"
	"github.com/tecai-sistemas/tecai/internal/authz"
)

// StaffCmd is the staff command group, open to every authenticated role.
type StaffCmd struct {
	Categories StaffCategoriesCmd `cmd:"" help:"Work with categories"`
}

var staffRoles = []authz.Role{authz.RoleSuperAdmin, authz.RoleAdmin, authz.RoleFuncionario}

// StaffCategoriesCmd lists and edits categories.
type StaffCategoriesCmd struct {
	List StaffCategoriesListCmd `cmd:"" help:"List categories"`
	Edit StaffCategoriesEditCmd `cmd:"" help:"Rename a category"`
}

type StaffCategoriesListCmd struct{}

func (c *StaffCategoriesListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	return runGuarded(ctx, app, staffRoles, func(ident *api.Identity) error {
		categories, err := app.api.ListCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		if len(categories) == 0 {
			fmt.Println("No categories found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tAGENT")
		for _, category := range categories {
			fmt.Fprintf(w, "%s\t%s\t%s\n", category.ID, category.Name, category.AgentID)
		}
		w.Flush()
		return nil
	})
}

// StaffCategoriesEditCmd renames a category. On top of the group's role
// gate, the edit needs an explicit category-management grant for the
// category's agent; a denial is reported inline, not as a redirect.
type StaffCategoriesEditCmd struct {
	ID    string `arg:"" help:"Category id"`
	Agent string `help:"Agent owning the category" required:""`
	Name  string `help:"New category name" required:""`
}

func (c *StaffCategoriesEditCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	return runGuarded(ctx, app, staffRoles, func(ident *api.Identity) error {
		decision := authz.Can(ident.Role(), c.Agent, authz.CapManageCategories, ident.Permissions)
		if !decision.Allowed {
			fmt.Printf("Cannot edit category: %s\n", decision.Reason)
			return nil
		}

		category, err := app.api.UpdateCategory(ctx, c.ID, c.Name)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}

		fmt.Printf("Category %s renamed to %q.\n", category.ID, category.Name)
		return nil
	})
}
