package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/doccheck/internal/discovery"
	"git.home.luguber.info/inful/doccheck/internal/examples"
	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

// ExamplesCmd implements the 'examples' command.
type ExamplesCmd struct {
	Parallel int      `short:"p" help:"Packages checked concurrently (overrides examples.parallel)"`
	Package  []string `short:"P" name:"package" help:"Only check these import paths (repeatable)"`
}

func (e *ExamplesCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if e.Parallel > 0 {
		cfg.Examples.Parallel = e.Parallel
	}

	_, refs, err := discovery.Resolve(cfg.Examples)
	if err != nil {
		return err
	}
	if len(e.Package) > 0 {
		if refs, err = selectPackages(refs, e.Package); err != nil {
			return err
		}
	}
	excluded := len(refs) - len(discovery.Checkable(refs))

	exec := g.executor
	if exec == nil {
		ge := examples.NewGoTestExecutor(cfg.Examples.GoBinary, cfg.Examples.Root)
		ge.Timeout = cfg.Examples.TimeoutDuration()
		exec = ge
	}
	report := examples.NewRunner(exec).
		WithParallel(cfg.Examples.Parallel).
		WithRecorder(g.Recorder).
		WithLogger(g.Logger).
		Run(ctx, refs)

	for _, res := range report.Results {
		printExampleResult(g.Out, res)
	}
	printExamplesSummary(g.Out, report, excluded)
	return report.Err()
}

// selectPackages narrows refs to the requested import paths, keeping their
// order along with exclusion and optional tags.
func selectPackages(refs []discovery.ModuleRef, want []string) ([]discovery.ModuleRef, error) {
	known := make(map[string]struct{}, len(refs))
	for _, r := range refs {
		known[r.ImportPath] = struct{}{}
	}
	wanted := make(map[string]struct{}, len(want))
	for _, p := range want {
		if _, ok := known[p]; !ok {
			return nil, ferrors.ValidationError(fmt.Sprintf("package %s is not part of the module", p)).Build()
		}
		wanted[p] = struct{}{}
	}
	out := make([]discovery.ModuleRef, 0, len(wanted))
	for _, r := range refs {
		if _, ok := wanted[r.ImportPath]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}
