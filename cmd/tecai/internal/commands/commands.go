package commands

// Globals carries top-level CLI flags into every command.
type Globals struct {
	Debug      bool
	Version    string
	ConfigPath string
}
