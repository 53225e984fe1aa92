package router

import "strings"

// NormalizePath collapses adjacent slashes and ensures a leading slash, per
// the route entry path-normalization rule. A trailing slash is preserved
// when present (other than for the bare root path) since it is significant
// for wildcard matching.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	var b strings.Builder
	prevSlash := false
	for _, r := range path {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if !strings.HasPrefix(out, "/") {
		out = "/" + out
	}
	return out
}

// splitSegments splits a normalized path into its '/'-delimited segments.
// The root path "/" yields no segments at all, so a route registered at "/"
// lives on the tree's root node rather than a child.
func splitSegments(path string) []string {
	if path == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}
