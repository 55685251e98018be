// Command agenda is a terminal client for the contact API.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/vortex-fintech/agenda/client"
	"github.com/vortex-fintech/agenda/config"
	"github.com/vortex-fintech/agenda/logger"
	"github.com/vortex-fintech/agenda/toast"
)

var (
	version = "dev"
	commit  = "unknown"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config  string `help:"YAML profile path." default:"${config_path}" type:"path"`
	BaseURL string `name:"base-url" help:"API base URL, overrides the profile."`
	Wait    bool   `help:"Wait for the backend to answer before running the command."`
	Plain   bool   `help:"Disable colors and styling."`
	Debug   bool   `help:"Log API calls to stderr."`
}

// CLI is the top-level command structure.
type CLI struct {
	Globals

	Version    kong.VersionFlag `help:"Show version." short:"V"`
	List       ListCmd          `cmd:"" help:"List active contacts."`
	Show       ShowCmd          `cmd:"" help:"Show one contact."`
	Add        AddCmd           `cmd:"" help:"Create a contact."`
	Edit       EditCmd          `cmd:"" help:"Update a contact."`
	Favorite   FavoriteCmd      `cmd:"" help:"Toggle the favorite flag of a contact."`
	Deactivate DeactivateCmd    `cmd:"" help:"Deactivate a contact."`
}

// reportedError is a failure the user has already been told about.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

// app is what commands run against.
type app struct {
	ctx    context.Context
	api    *client.Client
	out    io.Writer
	in     *bufio.Reader
	toasts *toast.Service
	styled bool
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "agenda.yaml"
	}
	return dir + "/agenda/config.yaml"
}

func newApp(ctx context.Context, g Globals, out io.Writer, in io.Reader) (*app, func(), error) {
	cfg, err := config.LoadClient(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.BaseURL != "" {
		cfg.BaseURL = g.BaseURL
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	log, err := newLogger(cfg.Env, g.Debug)
	if err != nil {
		return nil, nil, err
	}

	api, err := client.New(cfg.BaseURL, client.WithTimeout(cfg.Timeout), client.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	if g.Wait {
		if err := api.WaitReady(ctx); err != nil {
			log.SafeSync()
			return nil, nil, fmt.Errorf("backend at %s is not ready: %w", cfg.BaseURL, err)
		}
	}

	styled := !g.Plain && isTerminal(out)
	return &app{
		ctx:    ctx,
		api:    api,
		out:    out,
		in:     bufio.NewReader(in),
		toasts: toast.NewService(toast.NewTerminal(out, !styled)),
		styled: styled,
	}, log.SafeSync, nil
}

// newLogger keeps the CLI quiet in production unless debug is set. Any other
// env logs to stderr with that env's format and level.
func newLogger(env string, debug bool) (*logger.Logger, error) {
	quiet := strings.TrimSpace(env) == "" || strings.EqualFold(strings.TrimSpace(env), "production")
	if quiet && !debug {
		return logger.Nop(), nil
	}
	opts := []logger.Option{logger.WithOutput("stderr")}
	if debug {
		opts = append(opts, logger.WithLevel(zap.DebugLevel))
	}
	return logger.New("agenda", env, opts...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// confirm asks on the app's input; only an explicit yes accepts.
func (a *app) confirm(message string) bool {
	_, _ = fmt.Fprintf(a.out, "%s [s/N] ", message)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, stdin io.Reader, opts ...kong.Option) error {
	var cli CLI
	opts = append([]kong.Option{
		kong.Name("agenda"),
		kong.Description("Manage contacts through the agenda API."),
		kong.UsageOnError(),
		kong.Vars{"version": version + " " + commit, "config_path": defaultConfigPath()},
		kong.Writers(stdout, stderr),
	}, opts...)
	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	a, flush, err := newApp(ctx, cli.Globals, stdout, stdin)
	if err != nil {
		return err
	}
	defer flush()
	return kctx.Run(a)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Stdin)
	if err == nil {
		return
	}
	var rep reportedError
	if !errors.As(err, &rep) {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}
	stop()
	os.Exit(1)
}
