package tenant

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// slugRegex matches 3-64 lowercase alphanumeric characters or hyphens,
// starting and ending alphanumeric.
var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}[a-z0-9]$`)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// stripMarks removes combining marks after NFD decomposition, turning
// "Inmobiliaria Potosí" into "Inmobiliaria Potosi".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL slug from a company name: lower-cased, diacritics
// stripped, runs of non-alphanumerics collapsed to single hyphens, leading
// and trailing hyphens trimmed.
func Slugify(name string) string {
	s, _, err := transform.String(stripMarks, name)
	if err != nil {
		s = name
	}
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidateSlug reports whether s is acceptable as a tenant slug.
func ValidateSlug(s string) error {
	if !slugRegex.MatchString(s) {
		return fmt.Errorf("invalid slug %q: must be 3-64 lowercase alphanumeric characters or hyphens", s)
	}
	return nil
}

// SchemaFor returns the schema name for a slug. The mapping is deterministic
// and applied exactly once, at provisioning time; the result is stored in the
// registry and read back from there ever after.
func SchemaFor(slug string) string {
	return "tenant_" + strings.ReplaceAll(slug, "-", "_")
}
