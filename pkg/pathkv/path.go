// Package pathkv is the higher-level key-value adapter spec.md names as an
// external collaborator: it splits a "/"-delimited path into the segments
// the core engine's Find/mkdir operations expect, and normalizes away
// leading/trailing/duplicate slashes.
package pathkv

import "strings"

// Split normalizes key and splits it into non-empty path segments. "/a/b/c",
// "a/b/c", and "/a//b/c/" all split to ["a", "b", "c"]. An empty or
// all-slash key splits to an empty slice.
func Split(key string) []string {
	parts := strings.Split(key, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Join reassembles segments into a canonical "/"-prefixed path.
func Join(segments []string) string {
	return "/" + strings.Join(segments, "/")
}
