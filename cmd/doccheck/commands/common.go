package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doccheck/internal/config"
	"git.home.luguber.info/inful/doccheck/internal/examples"
	"git.home.luguber.info/inful/doccheck/internal/logfields"
	"git.home.luguber.info/inful/doccheck/internal/metrics"
	"git.home.luguber.info/inful/doccheck/internal/sitecheck"
	"git.home.luguber.info/inful/doccheck/internal/version"
)

// Global is shared state handed to every subcommand.
type Global struct {
	In     io.Reader // filter input when no file is given
	Out    io.Writer // report lines
	Err    io.Writer // log output
	Logger *slog.Logger
	RunID  string

	Registry *prometheus.Registry
	Recorder metrics.Recorder

	// test seams
	executor examples.Executor
	builder  sitecheck.Builder
}

// NewGlobal creates the shared state with a fresh metrics registry.
func NewGlobal(in io.Reader, out, errOut io.Writer) *Global {
	reg := prometheus.NewRegistry()
	return &Global{
		In:       in,
		Out:      out,
		Err:      errOut,
		Logger:   slog.Default(),
		Registry: reg,
		Recorder: metrics.NewPrometheusRecorder(reg),
	}
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path" default:"${config_path}"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in textfile format to this path" type:"path"`

	Examples ExamplesCmd `cmd:"" help:"Run the documentation examples of every package"`
	Site     SiteCmd     `cmd:"" help:"Build the documentation site and check its diagnostics"`
	Filter   FilterCmd   `cmd:"" help:"Apply the warning ignore-list to saved builder output"`
	List     ListCmd     `cmd:"" help:"List discovered packages"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	g.RunID = uuid.NewString()
	level := os.Getenv("DOCCHECK_LOG_LEVEL")
	g.configureLogging(level, "text", c.Verbose)
	return nil
}

// loadConfig reads the configuration file and reapplies its logging settings.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	g.configureLogging(cfg.Logging.LogLevel(), cfg.Logging.LogFormat(), c.Verbose)
	if c.MetricsFile == "" && cfg.Metrics.Textfile != "" {
		c.MetricsFile = cfg.Metrics.Textfile
	}
	return cfg, nil
}

func (g *Global) configureLogging(level, format string, verbose bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	w := g.Err
	if w == nil {
		w = os.Stderr
	}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	if g.RunID != "" {
		logger = logger.With(logfields.RunID(g.RunID))
	}
	g.Logger = logger
	slog.SetDefault(logger)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds the command-line parser for cli. ctx and g are bound for command
// Run methods and hooks.
func New(ctx context.Context, cli *CLI, g *Global, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("doccheck"),
		kong.Description("Verify that documentation examples pass and the documentation site builds cleanly."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String(), "config_path": config.DefaultPath},
		kong.Bind(g, cli),
		kong.BindTo(ctx, (*context.Context)(nil)),
	}
	return kong.New(cli, append(opts, options...)...)
}

// Execute runs the selected command and writes the metrics textfile when one
// was requested. A metrics write failure never hides the command's own error.
func Execute(kctx *kong.Context, cli *CLI, g *Global) error {
	runErr := kctx.Run()
	if cli.MetricsFile == "" {
		return runErr
	}
	if err := metrics.WriteTextfile(cli.MetricsFile, g.Registry); err != nil {
		if runErr != nil {
			g.Logger.Warn("Failed to write metrics textfile", logfields.Path(cli.MetricsFile), logfields.Error(err))
			return runErr
		}
		return err
	}
	g.Logger.Debug("Wrote metrics textfile", logfields.Path(cli.MetricsFile))
	return runErr
}
