package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccheck/internal/config"
	ferrors "git.home.luguber.info/inful/doccheck/internal/foundation/errors"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func fixtureModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/m // main module\n\ngo 1.24\n")
	writeFile(t, root, "m.go", "package m\n")
	writeFile(t, root, "example_test.go", `package m_test

import "fmt"

func Example() { fmt.Println("hi") }
func ExampleGreeter_Greet() {}
func Example_suffix() {}
func Examplelower() {}
func ExampleWithArg(x int) {}
func helper() {}
`)
	writeFile(t, root, "utils/utils.go", "package utils\n")
	writeFile(t, root, "components/utils/u.go", "package utils\n")
	writeFile(t, root, "components/network/n.go", "package network\n")
	writeFile(t, root, "components/network/n_test.go", "package network\n\nfunc ExampleNetwork() {}\n")
	writeFile(t, root, "broken/b.go", "package broken\n")
	writeFile(t, root, "broken/b_test.go", "package broken\n\nfunc ExampleBroken( {\n")
	writeFile(t, root, "testdata/skip.go", "package skip\n")
	writeFile(t, root, "_hidden/h.go", "package hidden\n")
	writeFile(t, root, ".git/x.go", "package git\n")
	writeFile(t, root, "nested/go.mod", "module example.com/nested\n")
	writeFile(t, root, "nested/n.go", "package nested\n")
	writeFile(t, root, "docs/readme.md", "# not go\n")
	return root
}

func importPaths(refs []ModuleRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.ImportPath)
	}
	return out
}

func TestModulePath(t *testing.T) {
	root := fixtureModule(t)
	mod, err := ModulePath(root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/m", mod)

	quoted := t.TempDir()
	writeFile(t, quoted, "go.mod", "module \"example.com/quoted\"\n")
	mod, err = ModulePath(quoted)
	require.NoError(t, err)
	assert.Equal(t, "example.com/quoted", mod)

	_, err = ModulePath(t.TempDir())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryDiscovery))
}

func TestScan(t *testing.T) {
	root := fixtureModule(t)
	refs, err := Scan(root, "example.com/m")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"example.com/m",
		"example.com/m/broken",
		"example.com/m/components/network",
		"example.com/m/components/utils",
		"example.com/m/utils",
	}, importPaths(refs))

	byPath := map[string]ModuleRef{}
	for _, r := range refs {
		byPath[r.ImportPath] = r
	}
	assert.Equal(t, 3, byPath["example.com/m"].Examples, "Example, ExampleGreeter_Greet and Example_suffix")
	assert.Equal(t, 1, byPath["example.com/m/components/network"].Examples)
	assert.Equal(t, 0, byPath["example.com/m/utils"].Examples)
	assert.Error(t, byPath["example.com/m/broken"].ParseErr, "parse errors are recorded, not fatal")
	assert.NoError(t, byPath["example.com/m"].ParseErr)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), "example.com/m")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryDiscovery))
}

func TestPlanAndCheckable(t *testing.T) {
	refs := []ModuleRef{
		{ImportPath: "example.com/m/utils"},
		{ImportPath: "example.com/m"},
		{ImportPath: "example.com/m/components/utils"},
		{ImportPath: "example.com/m/plot"},
		{ImportPath: "example.com/m"},
	}
	planned := Plan(refs, []string{"example.com/m/utils", "example.com/m/components/utils"}, []string{"example.com/m/plot"})

	require.Len(t, planned, 4)
	assert.Equal(t, []string{
		"example.com/m",
		"example.com/m/components/utils",
		"example.com/m/plot",
		"example.com/m/utils",
	}, importPaths(planned))
	assert.True(t, planned[1].Excluded)
	assert.True(t, planned[2].Optional)
	assert.True(t, planned[3].Excluded)

	assert.Equal(t, []string{"example.com/m", "example.com/m/plot"}, importPaths(Checkable(planned)))
}

func TestStatic(t *testing.T) {
	refs := Static([]string{"example.com/m/a", " ", "example.com/m/b "})
	require.Len(t, refs, 2)
	assert.Equal(t, "example.com/m/b", refs[1].ImportPath)
	assert.Equal(t, UnknownExamples, refs[0].Examples)
}

func TestIsExampleName(t *testing.T) {
	for name, want := range map[string]bool{
		"Example":          true,
		"ExampleFoo":       true,
		"ExampleFoo_bar":   true,
		"Example_suffix":   true,
		"Examplefoo":       false,
		"TestExampleThing": false,
	} {
		assert.Equal(t, want, isExampleName(name), name)
	}
}

func TestResolve(t *testing.T) {
	root := fixtureModule(t)

	t.Run("scan with default exclusions", func(t *testing.T) {
		mod, refs, err := Resolve(config.ExamplesConfig{Root: root, Optional: []string{"example.com/m/broken"}})
		require.NoError(t, err)
		assert.Equal(t, "example.com/m", mod)
		assert.Equal(t, []string{
			"example.com/m",
			"example.com/m/broken",
			"example.com/m/components/network",
		}, importPaths(Checkable(refs)))
		assert.Len(t, refs, 5)
		for _, r := range refs {
			if r.ImportPath == "example.com/m/broken" {
				assert.True(t, r.Optional)
			}
		}
	})

	t.Run("explicit registry", func(t *testing.T) {
		mod, refs, err := Resolve(config.ExamplesConfig{
			Root:       t.TempDir(),
			ModulePath: "example.com/reg",
			Packages:   []string{"example.com/reg/b", "example.com/reg/a", "example.com/reg/utils"},
		})
		require.NoError(t, err)
		assert.Equal(t, "example.com/reg", mod)
		assert.Equal(t, []string{"example.com/reg/a", "example.com/reg/b"}, importPaths(Checkable(refs)))
	})

	t.Run("empty exclusion list checks everything", func(t *testing.T) {
		_, refs, err := Resolve(config.ExamplesConfig{Root: root, Exclude: []string{}})
		require.NoError(t, err)
		assert.Len(t, Checkable(refs), 5)
	})

	t.Run("missing go.mod", func(t *testing.T) {
		_, _, err := Resolve(config.ExamplesConfig{Root: t.TempDir()})
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryDiscovery))
	})
}
