package examples

import (
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/doccheck/internal/discovery"
	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
	"git.home.luguber.info/inful/doccheck/internal/metrics"
)

// Outcome of checking one package.
type Outcome string

const (
	OutcomePassed          Outcome = metrics.OutcomePassed
	OutcomeFailed          Outcome = metrics.OutcomeFailed
	OutcomeCollectionError Outcome = metrics.OutcomeCollectionError
	OutcomeSkipped         Outcome = metrics.OutcomeSkipped
	OutcomeError           Outcome = metrics.OutcomeError
)

// Result is the outcome for a single package.
type Result struct {
	Ref            discovery.ModuleRef
	Outcome        Outcome
	Passed         int
	Failures       int
	FailedExamples []string
	Message        string
	Output         string
	Duration       time.Duration
}

// OK reports whether the result does not fail the run.
func (r Result) OK() bool {
	return r.Outcome == OutcomePassed || r.Outcome == OutcomeSkipped
}

// Err returns a classified error for failing results and nil otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return ferrors.ExamplesError(r.Message).
		WithContext("package", r.Ref.ImportPath).
		WithContext("outcome", string(r.Outcome)).
		Build()
}

func classify(ref discovery.ModuleRef, out Output, execErr error) Result {
	res := Result{Ref: ref, Output: out.Text}
	if execErr != nil {
		res.Outcome = OutcomeError
		res.Message = fmt.Sprintf("could not run examples for package %s: %v", ref.ImportPath, execErr)
		return res
	}

	tally := ParseOutput(out.Text)
	res.Passed = tally.Passed
	res.Failures = tally.Failed
	res.FailedExamples = tally.FailedNames

	switch {
	case tally.Failed > 0:
		res.Outcome = OutcomeFailed
		res.Message = fmt.Sprintf("%d example(s) failed in package %s", tally.Failed, ref.ImportPath)
	case tally.BuildFailed || out.ExitCode != 0:
		reason := tally.Diagnostic
		if reason == "" && ref.ParseErr != nil {
			reason = ref.ParseErr.Error()
		}
		if reason == "" {
			reason = fmt.Sprintf("exit status %d", out.ExitCode)
		}
		if ref.Optional {
			res.Outcome = OutcomeSkipped
			res.Message = fmt.Sprintf("optional package %s skipped: %s", ref.ImportPath, reason)
		} else {
			res.Outcome = OutcomeCollectionError
			res.Message = fmt.Sprintf("package %s could not be built: %s", ref.ImportPath, reason)
		}
	default:
		res.Outcome = OutcomePassed
	}
	return res
}

// Report collects the results of one run in package order.
type Report struct {
	Results  []Result
	Duration time.Duration
}

// Count returns the number of results with the given outcome.
func (r Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Failed returns the results that fail the run.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Err summarises failing packages as one classified error, or nil.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(failed))
	for _, res := range failed {
		msgs = append(msgs, res.Message)
	}
	return ferrors.ExamplesError(fmt.Sprintf("%d of %d package(s) failed example checks:\n%s",
		len(failed), len(r.Results), strings.Join(msgs, "\n"))).
		WithContext("failed", len(failed)).
		Build()
}
