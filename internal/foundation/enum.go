package foundation

import (
	"fmt"
	"slices"
	"strings"
)

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalizer maps loosely written config strings (any case, surrounding
// whitespace, aliases) onto canonical values.
type Normalizer[T comparable] struct {
	valid    map[string]T
	fallback T
}

// NewNormalizer creates a normalizer from alias->value pairs. Unknown input
// normalizes to fallback.
func NewNormalizer[T comparable](values map[string]T, fallback T) *Normalizer[T] {
	valid := make(map[string]T, len(values))
	for k, v := range values {
		valid[normalizeKey(k)] = v
	}
	return &Normalizer[T]{valid: valid, fallback: fallback}
}

// Normalize returns the value for raw, or the fallback when raw is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.valid[normalizeKey(raw)]; ok {
		return v
	}
	return n.fallback
}

// NormalizeWithError returns the value for raw or an error listing the
// accepted spellings.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if v, ok := n.valid[normalizeKey(raw)]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q (accepted: %s)", raw, strings.Join(n.Accepted(), ", "))
}

// Accepted returns the recognised spellings in sorted order.
func (n *Normalizer[T]) Accepted() []string {
	keys := make([]string, 0, len(n.valid))
	for k := range n.valid {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
