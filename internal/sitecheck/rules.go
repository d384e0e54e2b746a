package sitecheck

import (
	"fmt"
	"regexp"

	"git.home.luguber.info/inful/doccheck/internal/config"
	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

// WarningRule describes one benign diagnostic block: a line matching Pattern
// followed by Skip lines that belong to it.
type WarningRule struct {
	Pattern *regexp.Regexp
	Skip    int
}

// String renders the rule for logs.
func (r WarningRule) String() string {
	return fmt.Sprintf("%s (+%d)", r.Pattern, r.Skip)
}

// CompileRules turns configured rules into WarningRules, preserving order.
func CompileRules(cfgs []config.WarningRuleConfig) ([]WarningRule, error) {
	rules := make([]WarningRule, 0, len(cfgs))
	for i, c := range cfgs {
		if c.Skip < 0 {
			return nil, ferrors.ValidationError(fmt.Sprintf("warning rule %d: skip must not be negative", i)).Build()
		}
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryValidation, fmt.Sprintf("warning rule %d: invalid pattern", i)).Build()
		}
		rules = append(rules, WarningRule{Pattern: re, Skip: c.Skip})
	}
	return rules, nil
}

// DefaultRules returns the compiled default ignore-list.
func DefaultRules() []WarningRule {
	rules, err := CompileRules(config.DefaultWarningRules())
	if err != nil {
		panic(err) // defaults are constant
	}
	return rules
}
