package discovery

import (
	"sort"
	"strings"
)

// Static builds refs from an explicit registry of import paths.
func Static(paths []string) []ModuleRef {
	refs := make([]ModuleRef, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		refs = append(refs, ModuleRef{ImportPath: p, Examples: UnknownExamples})
	}
	return refs
}

// Plan tags excluded and optional refs, then sorts by import path and drops
// duplicates (the first occurrence wins).
func Plan(refs []ModuleRef, exclude, optional []string) []ModuleRef {
	excluded := toSet(exclude)
	opt := toSet(optional)

	seen := make(map[string]struct{}, len(refs))
	out := make([]ModuleRef, 0, len(refs))
	for _, ref := range refs {
		if _, dup := seen[ref.ImportPath]; dup {
			continue
		}
		seen[ref.ImportPath] = struct{}{}
		_, ref.Excluded = excluded[ref.ImportPath]
		_, ref.Optional = opt[ref.ImportPath]
		out = append(out, ref)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ImportPath < out[j].ImportPath })
	return out
}

// Checkable returns the refs that are not excluded.
func Checkable(refs []ModuleRef) []ModuleRef {
	out := make([]ModuleRef, 0, len(refs))
	for _, ref := range refs {
		if !ref.Excluded {
			out = append(out, ref)
		}
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[strings.TrimSpace(it)] = struct{}{}
	}
	return set
}
