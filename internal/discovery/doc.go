// Package discovery enumerates the packages of a Go module whose documentation
// examples should be executed.
//
// Go has no runtime package introspection, so the set of packages is an explicit
// registry: either scanned from the module directory tree (Scan) or supplied as a
// list (Static), typically generated at build time. Plan then applies the fixed
// exclusion set and the optional-package tagging before anything is executed.
package discovery
