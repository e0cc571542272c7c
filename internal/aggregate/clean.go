package aggregate

import "strings"

// CleanLotNumber normalizes a lot identifier: trailing slashes and
// spaces removed, leading zeros stripped but at least one digit kept.
// "0044/" becomes "44"; "0000" becomes "0".
func CleanLotNumber(lot string) string {
	if lot == "" {
		return ""
	}

	lot = strings.TrimRight(lot, "/ ")
	trimmed := strings.TrimLeft(lot, "0")
	if trimmed == "" && lot != "" {
		return "0"
	}
	return trimmed
}

// CombinePlanElevation merges plan and elevation into one label,
// appending the elevation unless the plan already ends with it (so
// plan "2B" with elevation "B" stays "2B").
func CombinePlanElevation(plan, elevation string) string {
	plan = strings.TrimSpace(plan)
	elevation = strings.TrimSpace(elevation)

	if elevation != "" && !strings.HasSuffix(plan, elevation) {
		plan += elevation
	}
	return plan
}
