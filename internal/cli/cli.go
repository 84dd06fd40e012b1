package cli

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/typst-community/dev-builds/pkg/buildinfo"
	"github.com/typst-community/dev-builds/pkg/command"
	"github.com/typst-community/dev-builds/pkg/config"
	"github.com/typst-community/dev-builds/pkg/release"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the binary name used in help and completion scripts.
	appName = "devbuilds"

	// apiTimeout bounds a single hosting API request.
	apiTimeout = 30 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command results (the tag, the catalog summary).
	Out io.Writer

	// Getenv overrides the environment lookup. Nil means the process
	// environment plus a local .env file.
	Getenv func(string) string

	// Runner overrides subprocess execution. Nil means os/exec.
	Runner command.Runner

	// HTTPClient is used by the API release source. Nil means a client with
	// a default timeout.
	HTTPClient *http.Client

	configPath string
}

// New creates a new CLI instance logging to w. Results go to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "devbuilds publishes the catalog of typst development builds",
		Long: `devbuilds builds the catalog of development builds published as releases of
the dev-builds repository (typst, docs, package-check, hayagriva and the
packages bundler), writes it as catalog.json and renders the release page.

It also computes the release tag for a freshly built upstream checkout.`,
		Version:       buildinfo.Resolve().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultFile+" when present)")

	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.tagCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// loadConfig reads the layered configuration. Flags are applied by the
// calling command.
func (c *CLI) loadConfig() (*config.Config, error) {
	getenv := c.Getenv
	if getenv == nil {
		var err error
		getenv, err = config.Env(config.DefaultDotEnv)
		if err != nil {
			return nil, err
		}
	}
	return config.Load(c.configPath, getenv)
}

// runner returns the subprocess runner, working in dir.
func (c *CLI) runner(dir string) command.Runner {
	if c.Runner != nil {
		return c.Runner
	}
	return command.NewExecRunner(dir)
}

// newLister creates the release source selected by cfg.
func (c *CLI) newLister(cfg *config.Config) (release.Lister, error) {
	switch cfg.Source {
	case config.SourceAPI:
		client := c.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: apiTimeout}
		}
		return release.NewAPILister(client, cfg.APIURL, cfg.Repository, cfg.Limit)
	default:
		return release.NewGHLister(c.runner(""), cfg.Repository, cfg.Limit), nil
	}
}
