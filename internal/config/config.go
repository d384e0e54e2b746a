package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "doccheck.yaml"

// SiteOptInEnv opts into the site build check without the command-line flag.
const SiteOptInEnv = "DOCCHECK_SITE_BUILD"

// Config represents the doccheck configuration.
type Config struct {
	Examples ExamplesConfig `yaml:"examples"`
	Site     SiteConfig     `yaml:"site"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Metrics  MetricsConfig  `yaml:"metrics,omitempty"`
}

// ExamplesConfig controls package discovery and example execution.
type ExamplesConfig struct {
	Root       string `yaml:"root"`
	ModulePath string `yaml:"module_path,omitempty"` // read from go.mod when empty
	// Packages is an explicit registry of import paths; scanning is skipped when set.
	Packages []string `yaml:"packages,omitempty"`
	// Exclude lists import paths never handed to the executor. Nil means the defaults.
	Exclude []string `yaml:"exclude,omitempty"`
	// Optional packages report "skipped" instead of failing when they cannot be built.
	Optional []string `yaml:"optional,omitempty"`
	GoBinary string   `yaml:"go_binary,omitempty"`
	Parallel int      `yaml:"parallel,omitempty"`
	Timeout  string   `yaml:"timeout,omitempty"` // per package, empty = none
}

// SiteConfig controls the documentation site build check.
type SiteConfig struct {
	Builder        string              `yaml:"builder"`
	Format         string              `yaml:"format"`
	SourceDir      string              `yaml:"source_dir"`
	BuildDir       string              `yaml:"build_dir"`
	IndexFile      string              `yaml:"index_file"`
	StderrFile     string              `yaml:"stderr_file"`
	FilteredFile   string              `yaml:"filtered_file"`
	IgnoreWarnings []WarningRuleConfig `yaml:"ignore_warnings,omitempty"` // nil = defaults
}

// WarningRuleConfig is one benign diagnostic block: the matching line plus Skip following lines.
type WarningRuleConfig struct {
	Pattern string `yaml:"pattern"`
	Skip    int    `yaml:"skip"`
}

// LoggingConfig configures the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // text|json
}

// MetricsConfig configures the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load reads configuration from configPath. A missing file yields the defaults so the
// tool works out of the box in any Go module.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		// Expand environment variables in the YAML content
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").
				WithContext("path", configPath).Fatal().Build()
		}
	case os.IsNotExist(err):
		slog.Debug("Configuration file not found, using defaults", "path", configPath)
	default:
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Fatal().Build()
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExcludeList returns the configured exclusions or the two default import paths
// relative to modulePath.
func (e ExamplesConfig) ExcludeList(modulePath string) []string {
	if e.Exclude != nil {
		return e.Exclude
	}
	return DefaultExcludes(modulePath)
}

// TimeoutDuration parses Timeout; zero means no timeout.
func (e ExamplesConfig) TimeoutDuration() time.Duration {
	if strings.TrimSpace(e.Timeout) == "" {
		return 0
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// SiteOptIn reports whether the site check should run: an explicit flag or
// DOCCHECK_SITE_BUILD=1.
func SiteOptIn(flag bool) bool {
	if flag {
		return true
	}
	v := strings.TrimSpace(os.Getenv(SiteOptInEnv))
	return v == "1" || strings.EqualFold(v, "true")
}

// Init writes a default configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	// Exclude stays unset so the <module>/utils defaults follow the module path.
	example := &Config{}
	applyDefaults(example)

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.InternalError(err, "failed to marshal example config").Build()
	}
	header := "# doccheck configuration\n# Run `doccheck examples` and `doccheck site --test-docs-build`.\n" +
		"# examples.exclude defaults to <module>/utils and <module>/components/utils.\n"
	if err := os.WriteFile(configPath, append([]byte(header), data...), 0o600); err != nil {
		return ferrors.FileSystemError(err, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
