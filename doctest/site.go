package doctest

import (
	"testing"

	"git.home.luguber.info/inful/doccheck/internal/config"
	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
	"git.home.luguber.info/inful/doccheck/internal/sitecheck"
)

// SkipMessage is the reason CheckSite gives when the site check was not requested.
const SkipMessage = "need -doccheck.site option to run"

// CheckSite builds the documentation site with warnings as errors and fails the
// test when diagnostics outside the ignore-list remain or no index page was
// produced. It is skipped unless -doccheck.site or DOCCHECK_SITE_BUILD=1 is given.
func CheckSite(t *testing.T, opts SiteOptions) {
	t.Helper()
	if !config.SiteOptIn(*siteFlag) {
		t.Skip(SkipMessage)
	}

	site := opts.siteConfig()
	checkOpts, err := sitecheck.OptionsFromConfig(site)
	if err != nil {
		t.Fatalf("doccheck: %v", err)
	}
	builder := opts.builder
	if builder == nil {
		builder = sitecheck.NewExecBuilder(site.Builder, site.Format)
	}

	res, err := sitecheck.NewChecker(checkOpts, builder).Run(t.Context(), true)
	reportSite(t, res, err)
}

func reportSite(tb testing.TB, res sitecheck.Result, err error) {
	tb.Helper()
	if err == nil {
		if res.Outcome == sitecheck.OutcomeRecovered {
			tb.Logf("site built after ignoring %d benign diagnostic line(s)", res.Dropped)
		}
		return
	}
	msg := err.Error()
	if ce, ok := ferrors.AsClassified(err); ok {
		msg = ce.Message()
	}
	switch {
	case ferrors.HasCategory(err, ferrors.CategoryArtifact):
		tb.Fatalf("site build produced no index page: %s", msg)
	case ferrors.HasCategory(err, ferrors.CategorySiteBuild) && len(res.Kept) > 0:
		tb.Fatalf("%s", msg)
	default:
		tb.Fatalf("site build could not run: %v", err)
	}
}
