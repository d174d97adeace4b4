package rules

import "strings"

// Explode splits s around sep, dropping empty segments. Consecutive separators
// collapse and trailing text without a final separator is still returned.
func Explode(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != sep {
			continue
		}
		if i > start {
			out = append(out, s[start:i])
		}
		start = i + 1
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

// joinFields is the inverse of Explode for fields that are never empty.
func joinFields(sep byte, fields ...string) string {
	return strings.Join(fields, string(sep))
}
