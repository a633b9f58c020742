package service

import (
	"strings"

	"github.com/google/uuid"
)

// slugify lowercases a name and keeps only [a-z0-9-], collapsing runs of
// other characters into single hyphens: "Building Fund 2026" ->
// "building-fund-2026".
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// uniqueSlug appends a short random suffix when the base slug is taken.
// exists reports whether a candidate is already in use.
func uniqueSlug(base string, exists func(slug string) bool) string {
	if base == "" {
		base = "group"
	}
	if !exists(base) {
		return base
	}
	return base + "-" + uuid.NewString()[:8]
}
