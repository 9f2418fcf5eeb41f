package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/tecai-sistemas/tecai/cmd/tecai/internal/commands"
	"github.com/tecai-sistemas/tecai/internal/logger"
)

var (
	version = "dev"
	cli     struct {
		Login   commands.LoginCmd   `cmd:"" help:"Authenticate against the TEC-AI backend"`
		Logout  commands.LogoutCmd  `cmd:"" help:"End the current session"`
		Whoami  commands.WhoamiCmd  `cmd:"" help:"Show the authenticated identity"`
		Session commands.SessionCmd `cmd:"" help:"Inspect local session state"`
		Super   commands.SuperCmd   `cmd:"" help:"Super administrator commands"`
		Admin   commands.AdminCmd   `cmd:"" help:"Administrator commands"`
		Staff   commands.StaffCmd   `cmd:"" help:"Staff commands"`
		Config  string              `help:"Path to config file" type:"path"`
		Debug   bool                `help:"Enable debug logging"`
		Version kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = logger.Setup(cli.Debug)

	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version, ConfigPath: cli.Config})
	cmd.FatalIfErrorf(err)
}
