// Package metrics provides optional observability for doccheck runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	runner := examples.NewRunner(exec) // uses NoopRecorder
//	runner = runner.WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// The CLI activates the Prometheus implementation when --metrics-file is set
// and writes the registry in the node-exporter textfile format after the run
// (see WriteTextfile), which suits CI hosts that only scrape files.
package metrics
