package sitecheck

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/doccheck/internal/config"
	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
	"git.home.luguber.info/inful/doccheck/internal/logfields"
	"git.home.luguber.info/inful/doccheck/internal/metrics"
)

// Stage names used for logging and metrics.
const (
	StagePrepare = "prepare"
	StageBuild   = "build"
	StageFilter  = "filter"
	StageVerify  = "verify"
)

// Outcome of a site check.
type Outcome string

const (
	OutcomeSkipped   Outcome = metrics.OutcomeSkipped
	OutcomePassed    Outcome = metrics.OutcomePassed
	OutcomeRecovered Outcome = metrics.OutcomeRecovered
	OutcomeFailed    Outcome = metrics.OutcomeFailed
)

// Options configure a Checker.
type Options struct {
	SourceDir    string
	BuildDir     string
	IndexFile    string
	StderrFile   string // raw diagnostics, written only when the build fails
	FilteredFile string // diagnostics left after filtering
	Rules        []WarningRule
}

// OptionsFromConfig builds Options from the site configuration.
func OptionsFromConfig(site config.SiteConfig) (Options, error) {
	rules, err := CompileRules(site.IgnoreWarnings)
	if err != nil {
		return Options{}, err
	}
	return Options{
		SourceDir:    site.SourceDir,
		BuildDir:     site.BuildDir,
		IndexFile:    site.IndexFile,
		StderrFile:   site.StderrFile,
		FilteredFile: site.FilteredFile,
		Rules:        rules,
	}, nil
}

// Result describes one site check.
type Result struct {
	Outcome    Outcome
	ExitCode   int
	RawLines   []string
	Kept       []string
	Dropped    int
	IndexPath  string
	IndexTitle string
	Duration   time.Duration
}

// Checker runs the site check state machine.
type Checker struct {
	opts     Options
	builder  Builder
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewChecker creates a checker using builder.
func NewChecker(opts Options, builder Builder) *Checker {
	if opts.IndexFile == "" {
		opts.IndexFile = config.DefaultIndexFile
	}
	return &Checker{
		opts:     opts,
		builder:  builder,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder sets the metrics recorder.
func (c *Checker) WithRecorder(rec metrics.Recorder) *Checker {
	if rec != nil {
		c.recorder = rec
	}
	return c
}

// WithLogger sets the logger.
func (c *Checker) WithLogger(l *slog.Logger) *Checker {
	if l != nil {
		c.logger = l
	}
	return c
}

// Options returns the checker's options.
func (c *Checker) Options() Options {
	return c.opts
}

// Run executes the check. Without optIn it returns a skipped result and touches
// nothing. Failures are returned as classified errors alongside the result:
// CategorySiteBuild for unfiltered diagnostics, CategoryArtifact for a missing index.
func (c *Checker) Run(ctx context.Context, optIn bool) (Result, error) {
	start := time.Now()
	res, err := c.run(ctx, optIn)
	res.Duration = time.Since(start)
	c.recorder.IncSiteOutcome(string(res.Outcome))

	attrs := []any{logfields.Outcome(string(res.Outcome)), logfields.DurationMS(float64(res.Duration.Milliseconds()))}
	switch {
	case err != nil:
		c.logger.Error("Site check failed", append(attrs, logfields.Error(err))...)
	case res.Outcome == OutcomeSkipped:
		c.logger.Info("Site check skipped: opt-in not given", attrs...)
	default:
		c.logger.Info("Site check passed", append(attrs, logfields.Path(res.IndexPath), slog.String("title", res.IndexTitle))...)
	}
	return res, err
}

func (c *Checker) run(ctx context.Context, optIn bool) (Result, error) {
	if !optIn {
		return Result{Outcome: OutcomeSkipped}, nil
	}

	if err := c.stage(StagePrepare, func() error { return Prepare(c.opts.BuildDir) }); err != nil {
		return Result{Outcome: OutcomeFailed}, err
	}

	var out BuildOutput
	err := c.stage(StageBuild, func() error {
		var berr error
		out, berr = c.builder.Build(ctx, c.opts.SourceDir, c.opts.BuildDir)
		return berr
	})
	res := Result{Outcome: OutcomePassed, ExitCode: out.ExitCode}
	if err != nil {
		res.Outcome = OutcomeFailed
		return res, ferrors.WrapError(err, ferrors.CategorySiteBuild, "could not run site builder").
			WithContext("source", c.opts.SourceDir).Build()
	}

	if out.ExitCode != 0 {
		if err := c.stage(StageFilter, func() error { return c.filter(&res, out.Stderr) }); err != nil {
			res.Outcome = OutcomeFailed
			return res, err
		}
		if len(res.Kept) > 0 {
			res.Outcome = OutcomeFailed
			return res, ferrors.SiteBuildError("site build failed with warnings:\n"+strings.Join(res.Kept, "\n")).
				WithContext("remaining", len(res.Kept)).
				WithContext("exit_code", out.ExitCode).
				Build()
		}
		res.Outcome = OutcomeRecovered
	}

	if err := c.stage(StageVerify, func() error { return c.verify(&res) }); err != nil {
		res.Outcome = OutcomeFailed
		return res, err
	}
	return res, nil
}

func (c *Checker) stage(name string, fn func() error) error {
	t0 := time.Now()
	err := fn()
	d := time.Since(t0)
	c.recorder.ObserveStageDuration(name, d)
	c.logger.Debug("Site check stage complete", logfields.Stage(name), logfields.DurationMS(float64(d.Milliseconds())))
	return err
}

func (c *Checker) filter(res *Result, stderr string) error {
	res.RawLines = SplitLines(stderr)
	if err := writeLines(c.opts.StderrFile, res.RawLines); err != nil {
		return err
	}
	res.Kept, res.Dropped = FilterLines(res.RawLines, c.opts.Rules)
	c.recorder.AddFilteredLines(len(res.Kept), res.Dropped)
	c.logger.Info("Filtered site builder diagnostics",
		slog.Int("exit_code", res.ExitCode), logfields.Kept(len(res.Kept)), logfields.Dropped(res.Dropped))
	return writeLines(c.opts.FilteredFile, res.Kept)
}

func (c *Checker) verify(res *Result) error {
	res.IndexPath = filepath.Join(c.opts.BuildDir, c.opts.IndexFile)
	if _, err := os.Stat(res.IndexPath); err != nil {
		return ferrors.ArtifactError(fmt.Sprintf("build failed: %s not found", c.opts.IndexFile)).
			WithContext("path", res.IndexPath).Build()
	}
	res.IndexTitle = indexTitle(res.IndexPath)
	return nil
}

// Prepare removes dir if present and recreates it with its parents. Removal
// errors are ignored; only a failure to create the directory is returned.
func Prepare(dir string) error {
	_ = os.RemoveAll(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ferrors.FileSystemError(err, "cannot create build directory").
			WithContext("path", dir).Build()
	}
	return nil
}

// writeLines persists lines joined by "\n"; an empty path disables writing.
func writeLines(path string, lines []string) error {
	if path == "" {
		return nil
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644); err != nil { //nolint:gosec // debug output meant to be read by humans
		return ferrors.FileSystemError(err, "cannot write builder diagnostics").
			WithContext("path", path).Build()
	}
	return nil
}
