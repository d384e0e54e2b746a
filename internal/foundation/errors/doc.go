// Package errors provides the classified error primitives used across doccheck.
//
// A ClassifiedError carries a category (what kind of check or subsystem failed),
// a severity and free-form context. The CLI adapter turns categories into
// stable exit codes so CI pipelines can tell an example failure from a site
// build failure without parsing output.
//
// Example usage:
//
//	err := errors.SiteBuildError("site build failed with warnings").
//		WithContext("remaining", len(kept)).
//		Build()
package errors
