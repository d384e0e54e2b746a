// Package doctest wires doccheck into `go test`.
//
// A repository adds one test file that calls RunExamples (and optionally
// CheckSite):
//
//	func TestDocExamples(t *testing.T) {
//		doctest.RunExamples(t, doctest.Options{Root: ".."})
//	}
//
//	func TestDocSite(t *testing.T) {
//		doctest.CheckSite(t, doctest.SiteOptions{SourceDir: "../doc"})
//	}
//
// RunExamples reports one subtest per package. CheckSite is skipped unless the
// test binary is run with -doccheck.site or DOCCHECK_SITE_BUILD=1 is set.
package doctest
