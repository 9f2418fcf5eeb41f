package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tecai-sistemas/tecai/internal/session"
)

// LoginCmd authenticates and starts a new local session.
type LoginCmd struct {
	Username string `arg:"" help:"Account username"`
	Password string `help:"Account password (prompted when omitted)" env:"TECAI_PASSWORD"`
}

func (c *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	app, err := newApp(globals)
	if err != nil {
		return err
	}
	defer app.Close()

	password := c.Password
	if password == "" {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	resp, err := app.api.Login(ctx, c.Username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sess := &session.Session{
		Token:           resp.Token,
		UserID:          resp.Identity.UserID,
		Username:        resp.Identity.Username,
		Email:           resp.Identity.Email,
		PrimaryRoleID:   resp.Identity.RoleID,
		PrimaryRoleName: resp.Identity.RoleName,
		AllRoles:        resp.Identity.RoleIDs,
		Permissions:     resp.Identity.Permissions,
	}

	if err := app.manager.Begin(sess); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	fmt.Printf("Logged in as %s (%s).\n", sess.Username, sess.PrimaryRole())

	info := session.InspectToken(sess.Token)
	if !info.Opaque && !info.ExpiresAt.IsZero() {
		fmt.Printf("Token expires: %s\n", info.ExpiresAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
