package flashcard

import "strings"

// ParseTags splits a comma-separated tag string and normalizes the result.
func ParseTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims every tag, drops empty ones and collapses duplicates,
// keeping the first occurrence. Comparison is case-sensitive. The result is
// never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
