package content

import (
	"regexp"
	"strings"
)

var (
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugDisallowed = regexp.MustCompile(`[^\w-]+`)
)

// Slugify derives a URL-safe identifier from a title: lowercased, whitespace
// runs collapsed to single hyphens, everything else outside [a-z0-9_-] stripped.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugDisallowed.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}

// SplitDetails turns a newline-delimited textarea value into an ordered list of
// bullet strings, dropping blank lines.
func SplitDetails(raw string) []string {
	lines := strings.Split(raw, "\n")
	details := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			details = append(details, trimmed)
		}
	}
	return details
}
