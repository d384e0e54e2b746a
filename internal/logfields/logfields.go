package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyPackage    = "package"
	KeyOutcome    = "outcome"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyBuilder    = "builder"
	KeyFailures   = "failures"
	KeyKept       = "kept_lines"
	KeyDropped    = "dropped_lines"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Package(p string) slog.Attr      { return slog.String(KeyPackage, p) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Builder(b string) slog.Attr      { return slog.String(KeyBuilder, b) }
func Failures(n int) slog.Attr        { return slog.Int(KeyFailures, n) }
func Kept(n int) slog.Attr            { return slog.Int(KeyKept, n) }
func Dropped(n int) slog.Attr         { return slog.Int(KeyDropped, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
