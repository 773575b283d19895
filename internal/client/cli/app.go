package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/dmitrijs2005/favkeeper/internal/client/client"
	"github.com/dmitrijs2005/favkeeper/internal/client/config"
	"github.com/urfave/cli/v3"
)

// App holds the state shared by all commands of one invocation. client and
// tokens are built in setup once the global flags are known.
type App struct {
	client client.Client
	tokens *TokenStore
	logger *log.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewLogger creates the CLI logger writing to w (os.Stderr when nil).
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true, Prefix: "favkeeper"})
}

// NewCommand builds the favkeeper command tree. Prompts read from in,
// results go to out and diagnostics to errOut.
func NewCommand(in io.Reader, out, errOut io.Writer) *cli.Command {
	a := &App{
		logger: NewLogger(errOut),
		reader: bufio.NewReader(in),
		out:    out,
	}

	return &cli.Command{
		Name:      "favkeeper",
		Usage:     "Manage a favkeeper account and its favourites",
		Reader:    in,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a JSON or TOML configuration file",
				Sources: cli.EnvVars("FAVKEEPER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"a"},
				Usage:   "Base URL of the favkeeper server",
				Sources: cli.EnvVars("FAVKEEPER_SERVER"),
			},
			&cli.StringFlag{
				Name:    "token-file",
				Usage:   "Where the login token is stored",
				Sources: cli.EnvVars("FAVKEEPER_TOKEN_FILE"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Timeout for a single API call",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before:   a.setup,
		Commands: a.commands(),
	}
}

func (a *App) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("server") {
		cfg.ServerURL = cmd.String("server")
	}
	if cmd.IsSet("token-file") {
		cfg.TokenFile = cmd.String("token-file")
	}
	if cmd.IsSet("timeout") {
		cfg.RequestTimeout = cmd.Duration("timeout")
	}
	if cmd.Bool("debug") {
		a.logger.SetLevel(log.DebugLevel)
	}

	a.client = client.NewHTTPClient(cfg.ServerURL, &http.Client{Timeout: cfg.RequestTimeout})
	a.tokens = NewTokenStore(cfg.TokenFile)
	a.logger.Debug("configured", "server", cfg.ServerURL, "token_file", cfg.TokenFile)

	return ctx, nil
}
