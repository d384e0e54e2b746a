package examples

import (
	"strings"
)

// Tally summarises `go test -v` output for Example functions.
type Tally struct {
	Passed      int
	Failed      int
	FailedNames []string
	// BuildFailed is set when the package (or its test binary) could not be built.
	BuildFailed bool
	// Diagnostic is the first meaningful line of a build failure.
	Diagnostic string
}

var buildFailureMarkers = []string{
	"[setup failed]",
	"[build failed]",
	"cannot find package",
	"no required module provides package",
	"is not in std",
}

// ParseOutput counts passing and failing examples in verbose go test output.
func ParseOutput(text string) Tally {
	var t Tally
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "--- PASS: Example"):
			t.Passed++
		case strings.HasPrefix(line, "--- FAIL: Example"):
			t.Failed++
			if fields := strings.Fields(line); len(fields) >= 3 {
				t.FailedNames = append(t.FailedNames, fields[2])
			}
		default:
			for _, m := range buildFailureMarkers {
				if strings.Contains(line, m) {
					t.BuildFailed = true
					break
				}
			}
		}
	}
	t.Diagnostic = firstDiagnostic(text)
	return t
}

// firstDiagnostic returns the first non-empty line that is not a "# pkg" header.
func firstDiagnostic(text string) string {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "=== RUN") {
			continue
		}
		return line
	}
	return ""
}
