package doctest

import (
	"flag"
	"time"

	"git.home.luguber.info/inful/doccheck/internal/config"
	"git.home.luguber.info/inful/doccheck/internal/examples"
	"git.home.luguber.info/inful/doccheck/internal/sitecheck"
)

var siteFlag = flag.Bool("doccheck.site", false, "run the documentation site build check")

// Options select the packages whose examples are run.
type Options struct {
	// Root is the module root. Defaults to the nearest directory above the
	// working directory that holds a go.mod.
	Root string
	// ModulePath overrides the module directive of Root/go.mod.
	ModulePath string
	// Packages is an explicit package registry; Root is scanned when empty.
	Packages []string
	// Exclude lists import paths that are never run. Nil means the default pair
	// <module>/utils and <module>/components/utils.
	Exclude []string
	// Optional packages are skipped rather than failed when they cannot be built.
	Optional []string
	GoBinary string
	Parallel int
	Timeout  time.Duration

	executor examples.Executor
}

// IgnoreRule marks a benign builder diagnostic: a line matching Pattern and the
// Skip lines after it.
type IgnoreRule struct {
	Pattern string
	Skip    int
}

// SiteOptions configure the site build check. Zero values take the defaults of
// `doccheck init`.
type SiteOptions struct {
	Builder      string
	Format       string
	SourceDir    string
	BuildDir     string
	IndexFile    string
	StderrFile   string
	FilteredFile string
	// IgnoreWarnings replaces the default ignore-list when non-nil.
	IgnoreWarnings []IgnoreRule

	builder sitecheck.Builder
}

// LoadOptions reads a doccheck.yaml file (missing means defaults) into options
// for RunExamples and CheckSite.
func LoadOptions(path string) (Options, SiteOptions, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return Options{}, SiteOptions{}, err
	}
	ex := cfg.Examples
	opts := Options{
		Root:       ex.Root,
		ModulePath: ex.ModulePath,
		Packages:   ex.Packages,
		Exclude:    ex.Exclude,
		Optional:   ex.Optional,
		GoBinary:   ex.GoBinary,
		Parallel:   ex.Parallel,
		Timeout:    ex.TimeoutDuration(),
	}
	s := cfg.Site
	site := SiteOptions{
		Builder:      s.Builder,
		Format:       s.Format,
		SourceDir:    s.SourceDir,
		BuildDir:     s.BuildDir,
		IndexFile:    s.IndexFile,
		StderrFile:   s.StderrFile,
		FilteredFile: s.FilteredFile,
	}
	for _, r := range s.IgnoreWarnings {
		site.IgnoreWarnings = append(site.IgnoreWarnings, IgnoreRule{Pattern: r.Pattern, Skip: r.Skip})
	}
	return opts, site, nil
}

func (o Options) examplesConfig(root string) config.ExamplesConfig {
	return config.ExamplesConfig{
		Root:       root,
		ModulePath: o.ModulePath,
		Packages:   o.Packages,
		Exclude:    o.Exclude,
		Optional:   o.Optional,
		GoBinary:   o.GoBinary,
		Parallel:   o.Parallel,
	}
}

func (o SiteOptions) siteConfig() config.SiteConfig {
	cfg := config.SiteConfig{
		Builder:      orDefault(o.Builder, config.DefaultBuilder),
		Format:       orDefault(o.Format, config.DefaultFormat),
		SourceDir:    orDefault(o.SourceDir, config.DefaultSourceDir),
		IndexFile:    orDefault(o.IndexFile, config.DefaultIndexFile),
		StderrFile:   orDefault(o.StderrFile, config.DefaultStderrFile),
		FilteredFile: orDefault(o.FilteredFile, config.DefaultFilteredFile),
	}
	cfg.BuildDir = orDefault(o.BuildDir, cfg.SourceDir+"/_build")
	if o.IgnoreWarnings == nil {
		cfg.IgnoreWarnings = config.DefaultWarningRules()
	} else {
		cfg.IgnoreWarnings = make([]config.WarningRuleConfig, 0, len(o.IgnoreWarnings))
		for _, r := range o.IgnoreWarnings {
			cfg.IgnoreWarnings = append(cfg.IgnoreWarnings, config.WarningRuleConfig{Pattern: r.Pattern, Skip: r.Skip})
		}
	}
	return cfg
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
