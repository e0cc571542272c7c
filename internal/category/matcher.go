package category

import (
	"regexp"
	"strings"

	"github.com/rcwtools/paintsum/internal/signal"
)

var (
	parentheticalRe = regexp.MustCompile(`\([^)]*\)`)
	exteriorWordRe  = regexp.MustCompile(`\bEXTERIOR\b`)
	extWordRe       = regexp.MustCompile(`\bEXT\b`)
	interiorWordRe  = regexp.MustCompile(`\bINTERIOR\b`)
	intWordRe       = regexp.MustCompile(`\bINT\b`)
)

// matchTemplate attempts to map a task onto one of the template
// categories. Rules are evaluated in fixed order; the first satisfied
// rule wins, and a rule is only satisfied when the template actually
// carries the category it names. Returns ("", reason) when no template
// entry matched; auto-creation recovers those.
func matchTemplate(task string, s signal.TaskSignals, canonToDisplay map[string]string, cfg signal.Config) (string, string) {
	lookup := func(canon string) string {
		return canonToDisplay[canon]
	}

	// 1) BASE SHOE. A missing UA variant never falls through to the
	// non-UA entry; the UA distinction has to survive into its own column.
	if s.KeywordBaseShoe {
		if s.IsUA {
			if display := lookup("BASE SHOE UA"); display != "" {
				return display, "matched_baseshoe_ua"
			}
			return "", "unmapped_baseshoe_ua"
		}
		if display := lookup("BASE SHOE"); display != "" {
			return display, "matched_baseshoe"
		}
	}

	// 2) UNDERCOAT
	if s.KeywordUndercoat {
		if s.IsUA {
			if display := lookup("UNDERCOAT UA"); display != "" {
				return display, "matched_undercoat_ua"
			}
			return "", "unmapped_undercoat_ua"
		}
		if display := lookup("UNDERCOAT"); display != "" {
			return display, "matched_undercoat"
		}
	}

	// 3) TOUCH UP
	if s.KeywordTouchup {
		if s.IsUA {
			if display := lookup("TOUCH UP UA"); display != "" {
				return display, "matched_touchup_ua"
			}
			return "", "unmapped_touchup_ua"
		}
		if display := lookup("TOUCH UP"); display != "" {
			return display, "matched_touchup"
		}
	}

	// 4) ROLL WALLS FINAL
	if s.KeywordRollWalls {
		if s.IsUA {
			if display := lookup("ROLL WALLS FINAL UA"); display != "" {
				return display, "matched_rollwalls_ua"
			}
			return "", "unmapped_rollwalls_ua"
		}
		if display := lookup("ROLL WALLS FINAL"); display != "" {
			return display, "matched_rollwalls"
		}
	}

	// 5) EXT PRIME
	if s.IsExterior && s.KeywordPrime {
		if s.IsUA {
			if display := lookup("EXT PRIME UA"); display != "" {
				return display, "matched_ext_prime_ua"
			}
			return "", "unmapped_ext_prime_ua"
		}
		if display := lookup("EXT PRIME"); display != "" {
			return display, "matched_ext_prime"
		}
	}

	// Rules 6-8 compare against the scope fragment: only tasks whose
	// scope is itself a generic location phrase collapse into the generic
	// EXTERIOR/INTERIOR columns. Distinctive scopes ("Spray Overhang")
	// fall through to auto-creation.
	scope := signal.ScopeFragment(task)
	scopeCore := strings.ToUpper(strings.TrimSpace(parentheticalRe.ReplaceAllString(scope, "")))

	// 6) EXTERIOR UA
	if s.IsExterior && s.IsUA && scopeMentions(scopeCore, cfg.GenericExteriorScopes, exteriorWordRe, extWordRe) {
		if display := lookup("EXTERIOR UA"); display != "" {
			return display, "matched_exterior_ua"
		}
	}

	// 7) EXTERIOR
	if s.IsExterior && !s.IsUA && scopeMentions(scopeCore, cfg.GenericExteriorScopes, exteriorWordRe, extWordRe) {
		if display := lookup("EXTERIOR"); display != "" {
			return display, "matched_exterior"
		}
	}

	// 8a) INTERIOR UA
	if s.IsInterior && s.IsUA && scopeMentions(scopeCore, cfg.GenericInteriorScopes, interiorWordRe, intWordRe) {
		if display := lookup("INTERIOR UA"); display != "" {
			return display, "matched_interior_ua"
		}
		return "", "unmapped_interior_ua"
	}

	// 8b) INTERIOR
	if s.IsInterior && !s.IsUA && scopeMentions(scopeCore, cfg.GenericInteriorScopes, interiorWordRe, intWordRe) {
		if display := lookup("INTERIOR"); display != "" {
			return display, "matched_interior"
		}
	}

	return "", "unmapped_template"
}

// scopeMentions reports whether a scope core is generic for a location:
// either a member of the configured generic phrase set or containing
// the location word itself.
func scopeMentions(scopeCore string, generics []string, wordRes ...*regexp.Regexp) bool {
	for _, g := range generics {
		if scopeCore == g {
			return true
		}
	}
	for _, re := range wordRes {
		if re.MatchString(scopeCore) {
			return true
		}
	}
	return false
}
