package doctest

import (
	"os"
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/doccheck/internal/discovery"
	"git.home.luguber.info/inful/doccheck/internal/examples"
)

// RunExamples runs the documentation examples of every package selected by
// opts, one subtest per package named after its import path. Excluded packages
// produce no subtest.
func RunExamples(t *testing.T, opts Options) {
	t.Helper()

	root := opts.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("doccheck: %v", err)
		}
		found, ok := findModuleRoot(wd)
		if !ok {
			t.Fatalf("doccheck: no go.mod found above %s", wd)
		}
		root = found
	}

	_, refs, err := discovery.Resolve(opts.examplesConfig(root))
	if err != nil {
		t.Fatalf("doccheck: %v", err)
	}

	exec := opts.executor
	if exec == nil {
		ge := examples.NewGoTestExecutor(opts.GoBinary, root)
		ge.Timeout = opts.Timeout
		exec = ge
	}
	report := examples.NewRunner(exec).WithParallel(opts.Parallel).Run(t.Context(), refs)
	if len(report.Results) == 0 {
		t.Log("doccheck: no packages to check")
	}

	for _, res := range report.Results {
		t.Run(res.Ref.ImportPath, func(t *testing.T) {
			reportExamples(t, res)
		})
	}
}

// reportExamples turns one package result into test status.
func reportExamples(tb testing.TB, res examples.Result) {
	tb.Helper()
	switch res.Outcome {
	case examples.OutcomePassed:
		tb.Logf("%d example(s) passed", res.Passed)
	case examples.OutcomeSkipped:
		tb.Skip(res.Message)
	default:
		if len(res.FailedExamples) > 0 {
			tb.Errorf("%s: %v\n%s", res.Message, res.FailedExamples, res.Output)
			return
		}
		tb.Errorf("%s\n%s", res.Message, res.Output)
	}
}

// findModuleRoot walks up from dir to the first directory containing go.mod.
func findModuleRoot(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
