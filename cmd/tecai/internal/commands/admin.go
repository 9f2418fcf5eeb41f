package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/tecai-sistemas/tecai/internal/api"
	"github.com/tecai-sistemas/tecai/internal/authz"
)

// AdminCmd is the administrator command group, open to super admins too.
type AdminCmd struct {
	Users       AdminUsersCmd       `cmd:"" help:"Manage users"`
	Departments AdminDepartmentsCmd `cmd:"" help:"Manage departments"`
}

var adminRoles = []authz.Role{authz.RoleSuperAdmin, authz.RoleAdmin}

// AdminUsersCmd lists users.
type AdminUsersCmd struct {
	List AdminUsersListCmd `cmd:"" help:"List users"`
}

type AdminUsersListCmd struct{}

func (c *AdminUsersListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	return runGuarded(ctx, app, adminRoles, func(ident *api.Identity) error {
		users, err := app.api.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
		for _, user := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", user.ID, user.Username, user.Email, authz.ParseRole(user.RoleID))
		}
		w.Flush()
		return nil
	})
}

// AdminDepartmentsCmd lists departments.
type AdminDepartmentsCmd struct {
	List AdminDepartmentsListCmd `cmd:"" help:"List departments"`
}

type AdminDepartmentsListCmd struct{}

func (c *AdminDepartmentsListCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	return runGuarded(ctx, app, adminRoles, func(ident *api.Identity) error {
		departments, err := app.api.ListDepartments(ctx)
		if err != nil {
			return fmt.Errorf("failed to list departments: %w", err)
		}

		if len(departments) == 0 {
			fmt.Println("No departments found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, dept := range departments {
			fmt.Fprintf(w, "%s\t%s\n", dept.ID, dept.Name)
		}
		w.Flush()
		return nil
	})
}
