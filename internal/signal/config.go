package signal

// Config holds the keyword alias tables used for signal extraction and
// the generic-scope phrase sets used by the category matcher. It is
// immutable configuration: build it once and share it freely.
type Config struct {
	// Keyword classes, each an ordered list of phrase aliases. The first
	// alias found in a task wins and is recorded in MatchedKeywords.
	UndercoatKeywords []string
	PrimeKeywords     []string
	TouchupKeywords   []string
	BaseShoeKeywords  []string

	// Scope fragments considered "generic" location phrases. A task whose
	// scope is one of these (or mentions the location word) may collapse
	// into the generic EXTERIOR/INTERIOR template columns; anything more
	// distinctive gets its own column.
	GenericExteriorScopes []string
	GenericInteriorScopes []string
}

// DefaultConfig returns the standard painting-trade keyword tables.
func DefaultConfig() Config {
	return Config{
		UndercoatKeywords: []string{"UNDERCOAT", "FIRST COAT"},
		PrimeKeywords: []string{
			"PRIME", "PRIMER", "PRIMING", "SEAL", "SEALER",
			"SAND", "BLOCK", "BLOCKOUT", "PREP", "CAULK", "PATCH", "FASCIA",
		},
		TouchupKeywords: []string{
			"TOUCH UP", "TOUCHUP", "TOUCH-UP", "PUNCH", "AFTER CARPET",
		},
		BaseShoeKeywords: []string{
			"BASE SHOE", "BASEBOARD", "SHOE MOLD", "SHOE MOULD",
		},
		GenericExteriorScopes: []string{"", "EXTERIOR", "EXT", "EXTERIOR PAINTING"},
		GenericInteriorScopes: []string{"", "INTERIOR", "INT", "INTERIOR PAINTING"},
	}
}
