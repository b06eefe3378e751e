package dataset

import "strings"

// FilterOut returns the columns that match none of the patterns, in order.
// A '*' in a pattern matches any run of characters, so patterns may be:
//   - "prefix*" matches columns starting with "prefix"
//   - "*suffix" matches columns ending with "suffix"
//   - "*contains*" matches columns containing "contains"
//   - "Notes*2024" matches columns starting with "Notes" and ending with "2024"
//   - "exact" matches columns exactly
func FilterOut(columns []string, patterns []string) []string {
	result := make([]string, 0, len(columns))

	for _, column := range columns {
		if !MatchAny(column, patterns) {
			result = append(result, column)
		}
	}

	return result
}

// MatchAny reports whether column matches at least one pattern.
func MatchAny(column string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(column, pattern) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a column matches a wildcard pattern. Literal
// segments between wildcards must appear in order without overlapping.
func matchesPattern(column, pattern string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return column == pattern
	}

	first, last := parts[0], parts[len(parts)-1]
	if !strings.HasPrefix(column, first) {
		return false
	}
	rest := column[len(first):]

	for _, mid := range parts[1 : len(parts)-1] {
		i := strings.Index(rest, mid)
		if i < 0 {
			return false
		}
		rest = rest[i+len(mid):]
	}

	return strings.HasSuffix(rest, last)
}
