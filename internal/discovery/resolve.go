package discovery

import (
	"log/slog"

	"git.home.luguber.info/inful/doccheck/internal/config"
	"git.home.luguber.info/inful/doccheck/internal/logfields"
)

// Resolve produces the planned package list for an examples configuration:
// the module path is read from go.mod unless configured, packages come from the
// explicit registry when one is set and from a scan of the root otherwise.
func Resolve(ex config.ExamplesConfig) (string, []ModuleRef, error) {
	root := ex.Root
	if root == "" {
		root = "."
	}
	modulePath := ex.ModulePath
	if modulePath == "" {
		mp, err := ModulePath(root)
		if err != nil {
			return "", nil, err
		}
		modulePath = mp
	}

	var refs []ModuleRef
	if len(ex.Packages) > 0 {
		refs = Static(ex.Packages)
	} else {
		scanned, err := Scan(root, modulePath)
		if err != nil {
			return modulePath, nil, err
		}
		refs = scanned
	}

	planned := Plan(refs, ex.ExcludeList(modulePath), ex.Optional)
	slog.Debug("Resolved packages",
		slog.String("module", modulePath),
		slog.Int("packages", len(planned)),
		slog.Int("checkable", len(Checkable(planned))),
		logfields.Path(root))
	return modulePath, planned, nil
}
