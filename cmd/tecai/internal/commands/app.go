package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/tecai-sistemas/tecai/internal/api"
	"github.com/tecai-sistemas/tecai/internal/config"
	"github.com/tecai-sistemas/tecai/internal/session"
	"github.com/tecai-sistemas/tecai/internal/storage"
)

// app wires the client together for one command run. Dependencies flow
// explicitly: store → manager → client/monitor; nothing is reached through
// ambient state.
type app struct {
	cfg     config.Config
	store   storage.Store
	manager *session.Manager
	api     *api.Monitor
}

func newApp(g *Globals) (*app, error) {
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if g.Debug {
		cfg.Debug = true
	}

	store, err := cfg.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}

	manager := session.NewManager(store,
		&consoleNotifier{in: os.Stdin, out: os.Stdout},
		&consoleNavigator{out: os.Stdout},
	)

	client := api.New(api.Config{BaseURL: cfg.APIURL, Timeout: cfg.Timeout}, manager)
	monitor := api.NewMonitor(client, manager)

	return &app{cfg: cfg, store: store, manager: manager, api: monitor}, nil
}

// Close waits for any in-flight expiry teardown so the process never exits
// mid-cleanup.
func (a *app) Close() {
	a.api.Wait()
}

// consoleNotifier is the terminal rendition of the blocking expiry notice:
// print it and wait for explicit acknowledgement. No timeout.
type consoleNotifier struct {
	in  io.Reader
	out io.Writer
}

func (n *consoleNotifier) NoticeExpired(ctx context.Context) {
	fmt.Fprintln(n.out)
	fmt.Fprintln(n.out, "Your session has expired. You will be signed out.")
	fmt.Fprint(n.out, "Press Enter to continue... ")

	reader := bufio.NewReader(n.in)
	_, _ = reader.ReadString('\n')
}

// consoleNavigator is the terminal rendition of the history-replacing
// redirect: the session is gone, the only way forward is a fresh login.
type consoleNavigator struct {
	out io.Writer
}

func (n *consoleNavigator) ReplaceToLogin(ctx context.Context) {
	fmt.Fprintln(n.out, "Signed out. Run 'tecai login' to start a new session.")
}
