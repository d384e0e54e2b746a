package examples

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"git.home.luguber.info/inful/doccheck/internal/discovery"
)

// Output is what running one package's examples produced.
type Output struct {
	Text     string
	ExitCode int
}

// Executor runs the documentation examples of a single package.
type Executor interface {
	Run(ctx context.Context, ref discovery.ModuleRef) (Output, error)
}

// GoTestExecutor runs `go test -run ^Example` for a package. Only Example
// functions match the pattern, so regular tests are never executed.
type GoTestExecutor struct {
	GoBinary string
	Dir      string        // module root the go command runs in
	Timeout  time.Duration // per package; zero disables
}

// NewGoTestExecutor creates an executor using the given go binary and module root.
func NewGoTestExecutor(goBinary, dir string) *GoTestExecutor {
	if goBinary == "" {
		goBinary = "go"
	}
	return &GoTestExecutor{GoBinary: goBinary, Dir: dir}
}

// Args returns the go command arguments used for ref.
func (e *GoTestExecutor) Args(ref discovery.ModuleRef) []string {
	return []string{"test", "-count=1", "-v", "-run", "^Example", ref.ImportPath}
}

// Run executes the examples. A non-zero exit is reported through Output.ExitCode;
// the error is only set when the go command could not be run at all.
func (e *GoTestExecutor) Run(ctx context.Context, ref discovery.ModuleRef) (Output, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.GoBinary, e.Args(ref)...) //nolint:gosec // binary comes from local configuration
	cmd.Dir = e.Dir
	out, err := cmd.CombinedOutput()
	res := Output{Text: string(out)}
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	return res, err
}
