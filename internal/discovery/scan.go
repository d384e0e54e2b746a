package discovery

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
	"git.home.luguber.info/inful/doccheck/internal/logfields"
)

// Scan walks root and returns one ModuleRef per directory containing Go files.
// Directories the go tool ignores (testdata, vendor, names starting with "." or
// "_") and nested modules are skipped. A test file that fails to parse does not
// abort the scan; the error is recorded on the package's ModuleRef.
func Scan(root, modulePath string) ([]ModuleRef, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDiscovery, "cannot read module root").
			WithContext("path", root).Build()
	}
	if !info.IsDir() {
		return nil, ferrors.DiscoveryError("module root is not a directory").WithContext("path", root).Build()
	}

	byDir := map[string]*ModuleRef{}
	fset := token.NewFileSet()

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			slog.Warn("Skipping unreadable path", logfields.Path(path), logfields.Error(walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skipDir(path, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") || strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_") {
			return nil
		}

		dir := filepath.Dir(path)
		ref, ok := byDir[dir]
		if !ok {
			ref = &ModuleRef{ImportPath: importPath(root, dir, modulePath), Dir: dir}
			byDir[dir] = ref
		}
		if !strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		n, perr := countExamples(fset, path)
		if perr != nil && ref.ParseErr == nil {
			ref.ParseErr = perr
		}
		ref.Examples += n
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDiscovery, "package scan failed").
			WithContext("path", root).Build()
	}

	refs := make([]ModuleRef, 0, len(byDir))
	for _, ref := range byDir {
		refs = append(refs, *ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ImportPath < refs[j].ImportPath })
	return refs, nil
}

func skipDir(path, name string) bool {
	if name == "testdata" || name == "vendor" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	// nested module
	if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
		return true
	}
	return false
}

func importPath(root, dir, modulePath string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return modulePath
	}
	return modulePath + "/" + filepath.ToSlash(rel)
}

// countExamples returns the number of top-level Example functions in a test file.
func countExamples(fset *token.FileSet, path string) (int, error) {
	file, err := parser.ParseFile(fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !isExampleName(fn.Name.Name) {
			continue
		}
		if fn.Type.Params.NumFields() != 0 || fn.Type.Results.NumFields() != 0 {
			continue
		}
		n++
	}
	return n, nil
}

// isExampleName mirrors the go tool's rule: "Example" optionally followed by an
// identifier that does not start with a lower-case letter, or an "_suffix".
func isExampleName(name string) bool {
	rest, ok := strings.CutPrefix(name, "Example")
	if !ok {
		return false
	}
	if rest == "" || rest[0] == '_' {
		return true
	}
	return !(rest[0] >= 'a' && rest[0] <= 'z')
}
