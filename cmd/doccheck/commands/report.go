package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/doccheck/internal/examples"
	"git.home.luguber.info/inful/doccheck/internal/sitecheck"
)

var (
	passLabel = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	skipLabel = color.New(color.FgYellow).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
)

func statusLabel(ok, skipped bool) string {
	switch {
	case skipped:
		return skipLabel("SKIP")
	case ok:
		return passLabel("PASS")
	default:
		return failLabel("FAIL")
	}
}

func printExampleResult(w io.Writer, res examples.Result) {
	label := statusLabel(res.OK(), res.Outcome == examples.OutcomeSkipped)
	switch res.Outcome {
	case examples.OutcomePassed:
		_, _ = fmt.Fprintf(w, "%s %s %s\n", label, res.Ref.ImportPath, dim(fmt.Sprintf("(%d examples, %s)", res.Passed, round(res.Duration))))
	default:
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", label, res.Ref.ImportPath, res.Message)
		for _, name := range res.FailedExamples {
			_, _ = fmt.Fprintf(w, "    --- %s\n", name)
		}
	}
}

func printExamplesSummary(w io.Writer, report examples.Report, excluded int) {
	_, _ = fmt.Fprintf(w, "%d passed, %d failed, %d skipped, %d excluded %s\n",
		report.Count(examples.OutcomePassed),
		len(report.Failed()),
		report.Count(examples.OutcomeSkipped),
		excluded,
		dim("in "+round(report.Duration).String()))
}

func printSiteResult(w io.Writer, res sitecheck.Result, err error) {
	switch {
	case res.Outcome == sitecheck.OutcomeSkipped:
		_, _ = fmt.Fprintf(w, "%s site build check (use --test-docs-build or DOCCHECK_SITE_BUILD=1)\n", skipLabel("SKIP"))
	case err != nil:
		_, _ = fmt.Fprintf(w, "%s site build\n", failLabel("FAIL"))
		for _, line := range res.Kept {
			_, _ = fmt.Fprintf(w, "    %s\n", line)
		}
	default:
		detail := res.IndexPath
		if res.IndexTitle != "" {
			detail = fmt.Sprintf("%s %q", res.IndexPath, res.IndexTitle)
		}
		if res.Outcome == sitecheck.OutcomeRecovered {
			detail += fmt.Sprintf(", %d benign diagnostic line(s) ignored", res.Dropped)
		}
		_, _ = fmt.Fprintf(w, "%s site build %s\n", passLabel("PASS"), dim("("+detail+")"))
	}
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
