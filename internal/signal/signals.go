// Package signal extracts stable classification signals from free-text
// painter task descriptions. Painters describe the same work in wildly
// different formats; the signals here (location markers, designation
// tags, keyword classes) are the stable parts the rest of the pipeline
// keys on.
package signal

import (
	"fmt"
	"regexp"
	"strings"
)

// TaskSignals holds the signals extracted from one task string.
// Both location booleans may be true when the source text carries
// conflicting markers; that ambiguity is preserved for downstream
// rule order to resolve.
type TaskSignals struct {
	MatchedKeywords []string

	IsExterior bool
	IsInterior bool

	IsUA bool
	IsOP bool
	IsLS bool

	KeywordUndercoat bool
	KeywordPrime     bool
	KeywordTouchup   bool
	KeywordRollWalls bool
	KeywordBaseShoe  bool
}

var (
	separatorRe  = regexp.MustCompile(`[-/_—–]`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	extTokenRe = regexp.MustCompile(`\bEXT\b`)
	intTokenRe = regexp.MustCompile(`\bINT\b`)
	uaTokenRe  = regexp.MustCompile(`\bUA\b`)

	// ROLL followed within ~10 words by WALL(S) or CEILING.
	rollWallsRe = regexp.MustCompile(`ROLL\w*\s+(?:\w+\s+){0,10}(?:WALL|WALLS|CEILING)`)
)

// Normalize prepares task text for signal extraction: uppercase,
// separators to spaces (& preserved), whitespace collapsed. Parentheses
// and brackets survive because they carry marker semantics.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	result := strings.ToUpper(text)
	result = separatorRe.ReplaceAllString(result, " ")
	result = whitespaceRe.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// Extractor derives TaskSignals from raw task text using a fixed
// keyword configuration. Word-boundary patterns for the prime keyword
// class are compiled once at construction.
type Extractor struct {
	primeRes []*regexp.Regexp
	cfg      Config
}

// NewExtractor creates an extractor for the given configuration.
func NewExtractor(cfg Config) *Extractor {
	e := &Extractor{cfg: cfg}
	for _, kw := range cfg.PrimeKeywords {
		e.primeRes = append(e.primeRes,
			regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToUpper(kw))+`\b`))
	}
	return e
}

// Extract parses signals from a raw task string. Empty or missing text
// yields all-false signals; no input is an error.
func (e *Extractor) Extract(task string) TaskSignals {
	var s TaskSignals

	normalized := Normalize(task)
	if normalized == "" {
		return s
	}

	// Location markers. Parenthesized markers are most reliable, then a
	// standalone token, then the full word.
	switch {
	case strings.Contains(normalized, "(EXT)"):
		s.IsExterior = true
		s.MatchedKeywords = append(s.MatchedKeywords, "(EXT)")
	case extTokenRe.MatchString(normalized) && !strings.Contains(normalized, "EXTERIOR"):
		s.IsExterior = true
		s.MatchedKeywords = append(s.MatchedKeywords, "EXT token")
	case strings.Contains(normalized, "EXTERIOR"):
		s.IsExterior = true
		s.MatchedKeywords = append(s.MatchedKeywords, "EXTERIOR")
	}

	switch {
	case strings.Contains(normalized, "(INT)"):
		s.IsInterior = true
		s.MatchedKeywords = append(s.MatchedKeywords, "(INT)")
	case intTokenRe.MatchString(normalized) && !strings.Contains(normalized, "INTERIOR"):
		s.IsInterior = true
		s.MatchedKeywords = append(s.MatchedKeywords, "INT token")
	case strings.Contains(normalized, "INTERIOR"):
		s.IsInterior = true
		s.MatchedKeywords = append(s.MatchedKeywords, "INTERIOR")
	}

	// Designation markers.
	if strings.Contains(normalized, "[UA]") || uaTokenRe.MatchString(normalized) {
		s.IsUA = true
		s.MatchedKeywords = append(s.MatchedKeywords, "UA")
	}
	if strings.Contains(normalized, "[OP]") {
		s.IsOP = true
		s.MatchedKeywords = append(s.MatchedKeywords, "[OP]")
	}
	if strings.Contains(normalized, "[LS]") {
		s.IsLS = true
		s.MatchedKeywords = append(s.MatchedKeywords, "[LS]")
	}

	for _, kw := range e.cfg.UndercoatKeywords {
		if strings.Contains(normalized, strings.ToUpper(kw)) {
			s.KeywordUndercoat = true
			s.MatchedKeywords = append(s.MatchedKeywords, fmt.Sprintf("undercoat:%s", kw))
			break
		}
	}

	for i, re := range e.primeRes {
		if re.MatchString(normalized) {
			s.KeywordPrime = true
			s.MatchedKeywords = append(s.MatchedKeywords, fmt.Sprintf("prime:%s", e.cfg.PrimeKeywords[i]))
			break
		}
	}

	for _, kw := range e.cfg.TouchupKeywords {
		upper := strings.ToUpper(kw)
		if strings.Contains(normalized, strings.ReplaceAll(upper, "-", " ")) ||
			strings.Contains(normalized, upper) {
			s.KeywordTouchup = true
			s.MatchedKeywords = append(s.MatchedKeywords, fmt.Sprintf("touchup:%s", kw))
			break
		}
	}

	if rollWallsRe.MatchString(normalized) {
		s.KeywordRollWalls = true
		s.MatchedKeywords = append(s.MatchedKeywords, "rollwalls:ROLL near WALL/CEILING")
	} else if strings.Contains(normalized, "ROLL WALL") || strings.Contains(normalized, "ROLLED WALL") {
		s.KeywordRollWalls = true
		s.MatchedKeywords = append(s.MatchedKeywords, "rollwalls:ROLL WALL")
	}

	for _, kw := range e.cfg.BaseShoeKeywords {
		if strings.Contains(normalized, strings.ToUpper(kw)) {
			s.KeywordBaseShoe = true
			s.MatchedKeywords = append(s.MatchedKeywords, fmt.Sprintf("baseshoe:%s", kw))
			break
		}
	}

	return s
}
