package config

import (
	"os"
	"strings"
)

// Default values for the site build check.
const (
	DefaultBuilder      = "sphinx-build"
	DefaultFormat       = "html"
	DefaultSourceDir    = "doc"
	DefaultIndexFile    = "index.html"
	DefaultStderrFile   = "sphinx_build_stderr.txt"
	DefaultFilteredFile = "sphinx_build_stderr_filtered.txt"
	DefaultGoBinary     = "go"
)

// DefaultWarningRules returns the ignore-list of benign builder diagnostics.
// Order matters: the first matching rule wins.
func DefaultWarningRules() []WarningRuleConfig {
	return []WarningRuleConfig{
		{Pattern: `WARNING: cannot cache unpickable`, Skip: 0},
		{Pattern: `DeprecationWarning: Jupyter is migrating its paths`, Skip: 5},
		{Pattern: `RemovedInSphinx90Warning`, Skip: 1},
		{Pattern: `DeprecationWarning: nodes.reprunicode`, Skip: 1},
		{Pattern: "DeprecationWarning: The `docutils.utils.error_reporting` module is", Skip: 2},
		{Pattern: `UserWarning: resource_tracker`, Skip: 1},
		{Pattern: `WARNING: The the file [^ ]+ couldn't be copied\. Error:`, Skip: 1},
	}
}

// DefaultExcludes returns the two packages that are never example-checked.
func DefaultExcludes(modulePath string) []string {
	modulePath = strings.TrimSuffix(modulePath, "/")
	return []string{modulePath + "/utils", modulePath + "/components/utils"}
}

func applyDefaults(cfg *Config) {
	ex := &cfg.Examples
	if ex.Root == "" {
		ex.Root = "."
	}
	if ex.GoBinary == "" {
		ex.GoBinary = DefaultGoBinary
	}
	if ex.Parallel == 0 {
		ex.Parallel = 1
	}

	site := &cfg.Site
	if site.Builder == "" {
		site.Builder = DefaultBuilder
	}
	if site.Format == "" {
		site.Format = DefaultFormat
	}
	if site.SourceDir == "" {
		site.SourceDir = DefaultSourceDir
	}
	if site.BuildDir == "" {
		site.BuildDir = site.SourceDir + "/_build"
	}
	if site.IndexFile == "" {
		site.IndexFile = DefaultIndexFile
	}
	if site.StderrFile == "" {
		site.StderrFile = DefaultStderrFile
	}
	if site.FilteredFile == "" {
		site.FilteredFile = DefaultFilteredFile
	}
	if site.IgnoreWarnings == nil {
		site.IgnoreWarnings = DefaultWarningRules()
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl := os.Getenv("DOCCHECK_LOG_LEVEL"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if bin := os.Getenv("DOCCHECK_SITE_BUILDER"); bin != "" {
		cfg.Site.Builder = bin
	}
}
