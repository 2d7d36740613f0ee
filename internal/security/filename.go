// Package security sanitizes record-derived values before they are
// embedded in filesystem paths. Run IDs normally come from the engine's
// UUID generator, but imported or re-analyzed records can carry
// arbitrary identifiers.
package security

import "strings"

// SanitizeFilename makes a safe filename fragment from an arbitrary
// string. Characters other than ASCII letters, digits, dot, underscore
// and dash are replaced with a single underscore, and the result is
// trimmed to a reasonable length.
func SanitizeFilename(s string) string {
	if s == "" {
		return "unknown"
	}
	const maxLen = 128
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
