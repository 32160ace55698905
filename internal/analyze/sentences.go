// Package analyze implements the deterministic text analyzers: sentence
// splitting, verb extraction, n-gram mining, pattern classification, hedging
// detection, information-density profiling, domain-shift detection, and
// adaptive keyword extraction. Every function is a pure computation over its
// input; given the same text, outputs are byte-for-byte reproducible.
package analyze

import (
	"regexp"
	"strings"
)

// abbreviations is the closed list of dotted forms that never end a sentence.
// Each is swapped for a placeholder before boundary scanning and restored
// afterwards.
var abbreviations = []struct {
	literal     string
	placeholder string
}{
	{"e.g.", "EG_PLACEHOLDER"},
	{"i.e.", "IE_PLACEHOLDER"},
	{"et al.", "ETAL_PLACEHOLDER"},
	{"Fig.", "FIG_PLACEHOLDER"},
	{"Ext.", "EXT_PLACEHOLDER"},
}

var (
	decimalRe        = regexp.MustCompile(`(\d)\.(\d)`)
	decimalRestoreRe = regexp.MustCompile(`(\d)DECIMAL_PLACEHOLDER(\d)`)
	boundaryRe       = regexp.MustCompile(`[.!?]\s+[A-Z]`)
)

// SplitSentences splits abstract text into trimmed sentences. Periods inside
// the fixed abbreviation list and inside decimal numbers never split. A
// trailing sentence without terminal punctuation is still returned; empty
// input yields nil.
func SplitSentences(text string) []string {
	t := text
	for _, a := range abbreviations {
		t = strings.ReplaceAll(t, a.literal, a.placeholder)
	}
	t = decimalRe.ReplaceAllString(t, "${1}DECIMAL_PLACEHOLDER${2}")

	var out []string
	for _, s := range splitBoundaries(t) {
		for _, a := range abbreviations {
			s = strings.ReplaceAll(s, a.placeholder, a.literal)
		}
		s = decimalRestoreRe.ReplaceAllString(s, "${1}.${2}")
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// splitBoundaries cuts the text after sentence-ending punctuation that is
// followed by whitespace and an uppercase letter. The whitespace is dropped;
// the uppercase letter starts the next piece.
func splitBoundaries(t string) []string {
	locs := boundaryRe.FindAllStringIndex(t, -1)
	if len(locs) == 0 {
		return []string{t}
	}
	pieces := make([]string, 0, len(locs)+1)
	start := 0
	for _, loc := range locs {
		pieces = append(pieces, t[start:loc[0]+1])
		start = loc[1] - 1
	}
	return append(pieces, t[start:])
}
