// Package category maps painter task descriptions onto cost-category
// columns. Matching is template-first: a fixed rule table tries the
// caller-supplied template categories, and anything that doesn't fit
// gets a new column synthesized from the task's scope fragment so no
// dollar amount is ever dropped.
package category

import (
	"regexp"
	"strings"
)

var (
	edgePunctRe  = regexp.MustCompile(`^\W+|\W+$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Canonical converts a category name to its canonical form for
// equality comparisons: uppercase, punctuation trimmed from the ends,
// whitespace collapsed.
func Canonical(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToUpper(strings.TrimSpace(s))
	result = edgePunctRe.ReplaceAllString(result, "")
	result = whitespaceRe.ReplaceAllString(result, " ")
	return result
}
