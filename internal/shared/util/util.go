package util

import (
	"path"
	"sort"
	"strings"
)

// NormalizeSlashes rewrites backslash separators to forward slashes.
func NormalizeSlashes(s string) string {
	return strings.ReplaceAll(s, "\\", "/")
}

// NormalizePatternPath cleans and normalizes paths for matcher/pattern usage.
func NormalizePatternPath(s string) string {
	trimmed := strings.TrimSpace(NormalizeSlashes(s))
	clean := path.Clean(trimmed)
	if clean == "." {
		return ""
	}
	return strings.TrimPrefix(clean, "./")
}

// HasPathPrefix returns true when path equals prefix or is contained within prefix.
func HasPathPrefix(path, prefix string) bool {
	path = NormalizePatternPath(path)
	prefix = NormalizePatternPath(prefix)
	if path == "" || prefix == "" {
		return path == prefix
	}
	if path == prefix {
		return true
	}
	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}
	return strings.HasPrefix(path, prefix+"/")
}

// TrimPathPrefix removes prefix from path and returns the remainder with a
// leading slash, or "" when path equals prefix.
func TrimPathPrefix(path, prefix string) string {
	path = NormalizePatternPath(path)
	prefix = NormalizePatternPath(prefix)
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" {
		return ""
	}
	if !strings.HasPrefix(rest, "/") {
		rest = "/" + rest
	}
	return rest
}

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
