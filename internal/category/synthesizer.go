package category

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rcwtools/paintsum/internal/signal"
)

// maxHeaderLen caps synthesized category names so spreadsheet headers
// stay readable.
const maxHeaderLen = 35

var uaWordRe = regexp.MustCompile(`\bUA\b`)

// BaseCategoryName computes the category name a task would synthesize,
// without the uniqueness suffix. The mapper uses it to detect that a
// differently-worded task collapses onto an already-created column.
func BaseCategoryName(task string, s signal.TaskSignals) string {
	fragment := signal.ScopeFragment(task)
	if fragment == "" {
		fragment = "MISC"
	}

	name := strings.ToUpper(fragment)
	name = whitespaceRe.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	hasExt := strings.HasPrefix(name, "EXT") || strings.Contains(name, "EXTERIOR")
	hasInt := strings.HasPrefix(name, "INT") || strings.Contains(name, "INTERIOR")

	if s.IsExterior && !hasExt && !hasInt {
		name = "EXT " + name
	} else if s.IsInterior && !hasInt && !hasExt {
		name = "INT " + name
	}

	// Truncate before appending UA so the suffix is never the casualty.
	limit := maxHeaderLen
	if s.IsUA && !uaWordRe.MatchString(name) {
		limit = maxHeaderLen - len(" UA")
	}
	name = truncateAtWord(name, limit)

	// The UA word can also sit beyond the cut; re-check on the truncated
	// name and make room for the suffix if truncation removed it.
	if s.IsUA && !uaWordRe.MatchString(name) {
		name = truncateAtWord(name, maxHeaderLen-len(" UA"))
		name += " UA"
	}

	return name
}

// truncateAtWord cuts name to at most limit runes, backing up to the
// previous word boundary and trimming dangling separators.
func truncateAtWord(name string, limit int) string {
	runes := []rune(name)
	if len(runes) <= limit {
		return name
	}

	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " /-&")
}

// newCategoryName synthesizes a unique category name for a task,
// appending a numeric counter on canonical collision with any existing
// name. The result is always non-empty and unique against the supplied
// set at call time.
func newCategoryName(task string, s signal.TaskSignals, existingCanonicals map[string]struct{}) string {
	name := BaseCategoryName(task, s)

	base := name
	counter := 1
	for {
		if _, taken := existingCanonicals[Canonical(name)]; !taken {
			return name
		}
		counter++
		name = fmt.Sprintf("%s %d", base, counter)
	}
}
