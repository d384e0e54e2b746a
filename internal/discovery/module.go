package discovery

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

// UnknownExamples marks a ModuleRef whose example count was not determined
// (registry entries that were never parsed).
const UnknownExamples = -1

// ModuleRef identifies one package whose examples are checked.
type ModuleRef struct {
	ImportPath string
	Dir        string // empty for registry entries
	Examples   int    // number of Example functions, or UnknownExamples
	Excluded   bool
	Optional   bool
	ParseErr   error // set when a test file could not be parsed
}

// ModulePath reads the module directive from root/go.mod.
func ModulePath(root string) (string, error) {
	gomod := filepath.Join(root, "go.mod")
	data, err := os.ReadFile(gomod)
	if err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryDiscovery, "cannot read go.mod").
			WithContext("path", gomod).Build()
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		rest, ok := strings.CutPrefix(line, "module")
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}
		rest = strings.TrimSpace(rest)
		if i := strings.Index(rest, "//"); i >= 0 {
			rest = strings.TrimSpace(rest[:i])
		}
		if unq, err := strconv.Unquote(rest); err == nil {
			rest = unq
		}
		if rest != "" {
			return rest, nil
		}
	}
	return "", ferrors.DiscoveryError("go.mod has no module directive").WithContext("path", gomod).Build()
}
