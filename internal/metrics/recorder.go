package metrics

import "time"

// Outcome labels shared by example and site checks.
const (
	OutcomePassed          = "passed"
	OutcomeFailed          = "failed"
	OutcomeRecovered       = "recovered"
	OutcomeSkipped         = "skipped"
	OutcomeCollectionError = "collection_error"
	OutcomeError           = "error"
)

// Recorder defines observability hooks for example and site checks. All methods
// must be safe for concurrent use; the example runner may call them from several
// goroutines.
type Recorder interface {
	IncExampleOutcome(pkg string, outcome string)
	ObserveExamplesDuration(pkg string, d time.Duration)
	ObserveStageDuration(stage string, d time.Duration)
	IncSiteOutcome(outcome string)
	AddFilteredLines(kept, dropped int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncExampleOutcome(string, string)             {}
func (NoopRecorder) ObserveExamplesDuration(string, time.Duration) {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration)    {}
func (NoopRecorder) IncSiteOutcome(string)                         {}
func (NoopRecorder) AddFilteredLines(int, int)                     {}
