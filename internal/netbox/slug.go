package netbox

import (
	"regexp"
	"strings"
)

// slugRegexp matches characters that are not alphanumeric or hyphens.
var slugRegexp = regexp.MustCompile(`[^a-z0-9-]+`)

// SlugFromName converts a human-readable name to a NetBox-compatible slug.
// Lowercases, replaces spaces/special chars with hyphens, and trims edges.
func SlugFromName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = slugRegexp.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	if s == "" {
		return "unknown"
	}
	return s
}
