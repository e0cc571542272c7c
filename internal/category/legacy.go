package category

import "github.com/rcwtools/paintsum/internal/signal"

// Legacy fixed-bucket categories, for callers still consuming the
// pre-template report shape.
const (
	LegacyExtPrime       = "EXT PRIME"
	LegacyExterior       = "EXTERIOR"
	LegacyExteriorUA     = "EXTERIOR UA"
	LegacyTouchUp        = "TOUCH UP"
	LegacyRollWallsFinal = "ROLL WALLS FINAL"
	LegacyInterior       = "INTERIOR"
	LegacyUnmapped       = "UNMAPPED"
)

// LegacyClassifier buckets tasks into the fixed category set without
// template lookups or auto-creation. It exists as a compatibility shim;
// new callers should use Mapper.
type LegacyClassifier struct {
	extractor *signal.Extractor
}

// NewLegacyClassifier creates a fixed-bucket classifier.
func NewLegacyClassifier(cfg signal.Config) *LegacyClassifier {
	return &LegacyClassifier{extractor: signal.NewExtractor(cfg)}
}

// Classify returns the fixed bucket and the rule that fired. Rules run
// in fixed order, first match wins; tasks with no firing rule land in
// UNMAPPED.
func (c *LegacyClassifier) Classify(task string) (string, string) {
	if task == "" {
		return LegacyUnmapped, "no_task_text"
	}

	s := c.extractor.Extract(task)

	switch {
	case s.IsExterior && s.KeywordPrime:
		return LegacyExtPrime, "rule_ext_prime"
	case s.IsExterior && s.IsUA:
		return LegacyExteriorUA, "rule_exterior_ua"
	case s.IsExterior:
		return LegacyExterior, "rule_exterior"
	case s.KeywordTouchup:
		return LegacyTouchUp, "rule_touch_up"
	case (s.IsInterior || !s.IsExterior) && s.KeywordRollWalls:
		return LegacyRollWallsFinal, "rule_roll_walls_final"
	case s.IsInterior:
		return LegacyInterior, "rule_interior"
	}

	if !s.IsExterior && !s.IsInterior {
		return LegacyUnmapped, "no_location_marker"
	}
	return LegacyUnmapped, "no_matching_rule"
}
