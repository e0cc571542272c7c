package signal

import (
	"regexp"
	"strings"
)

var (
	isoDatePrefixRe = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}\s*`)
	usDatePrefixRe  = regexp.MustCompile(`^\d{2}[-/]\d{2}[-/]\d{4}\s*`)
	paintingRe      = regexp.MustCompile(`(?i)^PAINTING\s*[-–—]?\s*`)
	bracketCodeRe   = regexp.MustCompile(`\[[\w\s\-]+\]`)
	jobCodeRe       = regexp.MustCompile(`\(\d{5,}\)`)
	intMarkerRe     = regexp.MustCompile(`(?i)\(INT\)`)
	extMarkerRe     = regexp.MustCompile(`(?i)\(EXT\)`)
	trailingDashRe  = regexp.MustCompile(`\s*[-–—]\s*$`)
)

// ScopeFragment strips boilerplate from a task string, leaving the
// human-meaningful remainder: no leading date or PAINTING prefix, no
// bracket codes, job codes, or (INT)/(EXT) markers. The result feeds
// auto-created category names and the generic-scope checks, and may be
// empty when the task was boilerplate only.
func ScopeFragment(task string) string {
	if task == "" {
		return ""
	}

	text := strings.TrimSpace(task)

	text = isoDatePrefixRe.ReplaceAllString(text, "")
	text = usDatePrefixRe.ReplaceAllString(text, "")
	text = paintingRe.ReplaceAllString(text, "")
	text = bracketCodeRe.ReplaceAllString(text, "")
	text = jobCodeRe.ReplaceAllString(text, "")
	text = intMarkerRe.ReplaceAllString(text, "")
	text = extMarkerRe.ReplaceAllString(text, "")
	text = trailingDashRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
