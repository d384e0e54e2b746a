package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/doccheck/internal/config"
	"git.home.luguber.info/inful/doccheck/internal/logfields"
	"git.home.luguber.info/inful/doccheck/internal/sitecheck"
)

// SiteCmd implements the 'site' command.
type SiteCmd struct {
	TestDocsBuild bool `name:"test-docs-build" help:"Run the site build check (also enabled by DOCCHECK_SITE_BUILD=1)"`
	Watch         bool `short:"w" help:"Re-run the check whenever the documentation sources change"`
}

func (s *SiteCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	opts, err := sitecheck.OptionsFromConfig(cfg.Site)
	if err != nil {
		return err
	}
	builder := g.builder
	if builder == nil {
		builder = sitecheck.NewExecBuilder(cfg.Site.Builder, cfg.Site.Format)
	}
	checker := sitecheck.NewChecker(opts, builder).
		WithRecorder(g.Recorder).
		WithLogger(g.Logger.With(logfields.Builder(cfg.Site.Builder)))

	optIn := config.SiteOptIn(s.TestDocsBuild)
	if !optIn || !s.Watch {
		res, err := checker.Run(ctx, optIn)
		printSiteResult(g.Out, res, err)
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g.Logger.Info("Watching documentation sources", logfields.Path(cfg.Site.SourceDir))
	return sitecheck.Watch(ctx, cfg.Site.SourceDir, watchIgnores(cfg.Site), func(ctx context.Context) {
		res, err := checker.Run(ctx, true)
		printSiteResult(g.Out, res, err)
	})
}

// watchIgnores lists the paths every check run writes to; changes there must
// not trigger another run.
func watchIgnores(site config.SiteConfig) []string {
	return []string{site.BuildDir, site.StderrFile, site.FilteredFile}
}
