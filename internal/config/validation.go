package config

import (
	"fmt"
	"regexp"

	"git.home.luguber.info/inful/doccheck/internal/foundation"
)

// KnownFormats are the builder output formats accepted by the site check.
var KnownFormats = []string{"html", "dirhtml", "singlehtml"}

var logFormats = foundation.NewNormalizer(map[string]string{"text": "text", "json": "json"}, "")

var logLevels = foundation.NewNormalizer(map[string]string{
	"debug": "debug", "info": "info", "warn": "warn", "warning": "warn", "error": "error",
}, "")

// Validate checks the configuration after defaults were applied.
func Validate(cfg *Config) error {
	res := validateExamples(cfg.Examples).Prefixed("examples.")
	res = res.Combine(validateSite(cfg.Site).Prefixed("site."))
	res = res.Combine(validateLogging(cfg.Logging).Prefixed("logging."))
	return res.ToError()
}

func validateExamples(ex ExamplesConfig) foundation.ValidationResult {
	res := foundation.IntAtLeast("parallel", 1)(ex.Parallel)
	res = res.Combine(foundation.StringNotEmpty("go_binary")(ex.GoBinary))
	if ex.Timeout != "" && ex.TimeoutDuration() <= 0 {
		res = res.Combine(foundation.Invalid(foundation.NewValidationError(
			"timeout", "duration", fmt.Sprintf("invalid positive duration %q", ex.Timeout))))
	}
	return res
}

func validateSite(site SiteConfig) foundation.ValidationResult {
	res := foundation.NewValidatorChain(foundation.StringNotEmpty("builder")).Validate(site.Builder)
	res = res.Combine(foundation.OneOf("format", KnownFormats)(site.Format))
	res = res.Combine(foundation.StringNotEmpty("build_dir")(site.BuildDir))
	for i, rule := range site.IgnoreWarnings {
		field := fmt.Sprintf("ignore_warnings[%d]", i)
		res = res.Combine(foundation.IntAtLeast(field+".skip", 0)(rule.Skip))
		if rule.Pattern == "" {
			res = res.Combine(foundation.StringNotEmpty(field + ".pattern")(rule.Pattern))
			continue
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			res = res.Combine(foundation.Invalid(foundation.NewValidationError(
				field+".pattern", "regexp", err.Error())))
		}
	}
	return res
}

func validateLogging(l LoggingConfig) foundation.ValidationResult {
	res := foundation.Valid()
	if _, err := logFormats.NormalizeWithError(l.Format); err != nil {
		res = res.Combine(foundation.Invalid(foundation.NewValidationError("format", "one_of", err.Error())))
	}
	if _, err := logLevels.NormalizeWithError(l.Level); err != nil {
		res = res.Combine(foundation.Invalid(foundation.NewValidationError("level", "one_of", err.Error())))
	}
	return res
}

// LogLevel returns the normalized log level name.
func (l LoggingConfig) LogLevel() string {
	return logLevels.Normalize(l.Level)
}

// LogFormat returns the normalized handler format name.
func (l LoggingConfig) LogFormat() string {
	return logFormats.Normalize(l.Format)
}
