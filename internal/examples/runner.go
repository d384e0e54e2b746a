package examples

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/doccheck/internal/discovery"
	"git.home.luguber.info/inful/doccheck/internal/logfields"
	"git.home.luguber.info/inful/doccheck/internal/metrics"
)

// Runner executes the examples of every checkable package exactly once.
type Runner struct {
	exec     Executor
	parallel int
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewRunner creates a sequential runner with metrics disabled.
func NewRunner(exec Executor) *Runner {
	return &Runner{
		exec:     exec,
		parallel: 1,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithParallel bounds the number of packages checked concurrently.
func (r *Runner) WithParallel(n int) *Runner {
	if n < 1 {
		n = 1
	}
	r.parallel = n
	return r
}

// WithRecorder sets the metrics recorder.
func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

// WithLogger sets the logger.
func (r *Runner) WithLogger(l *slog.Logger) *Runner {
	if l != nil {
		r.logger = l
	}
	return r
}

// Run checks refs and returns results in ref order. Excluded refs are dropped
// before anything is executed; one package failing never stops the others.
func (r *Runner) Run(ctx context.Context, refs []discovery.ModuleRef) Report {
	start := time.Now()
	checkable := discovery.Checkable(refs)
	results := make([]Result, len(checkable))

	var g errgroup.Group
	g.SetLimit(r.parallel)
	for i, ref := range checkable {
		g.Go(func() error {
			results[i] = r.checkOne(ctx, ref)
			return nil
		})
	}
	_ = g.Wait()

	return Report{Results: results, Duration: time.Since(start)}
}

func (r *Runner) checkOne(ctx context.Context, ref discovery.ModuleRef) Result {
	r.logger.Debug("Running examples", logfields.Package(ref.ImportPath))
	t0 := time.Now()
	out, err := r.exec.Run(ctx, ref)
	res := classify(ref, out, err)
	res.Duration = time.Since(t0)

	r.recorder.ObserveExamplesDuration(ref.ImportPath, res.Duration)
	r.recorder.IncExampleOutcome(ref.ImportPath, string(res.Outcome))

	attrs := []any{
		logfields.Package(ref.ImportPath),
		logfields.Outcome(string(res.Outcome)),
		logfields.DurationMS(float64(res.Duration.Milliseconds())),
	}
	switch res.Outcome {
	case OutcomePassed:
		r.logger.Info("Examples passed", append(attrs, slog.Int("examples", res.Passed))...)
	case OutcomeSkipped:
		r.logger.Warn(res.Message, attrs...)
	default:
		r.logger.Error(res.Message, append(attrs, logfields.Failures(res.Failures))...)
	}
	return res
}
