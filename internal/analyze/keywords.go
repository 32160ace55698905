package analyze

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ndrozd/exordium/internal/util"
)

// keywordStops filters keyword candidates. Covers English function words,
// academic and table headers, markdown noise, and domain terms too common to
// discriminate between manuscripts. Matched case-insensitively.
var keywordStops = map[string]bool{
	// English function words and auxiliaries
	"the": true, "for": true, "with": true, "from": true, "this": true,
	"and": true, "not": true, "while": true, "here": true, "what": true,
	"how": true, "but": true, "also": true, "only": true, "most": true,
	"each": true, "both": true, "all": true, "can": true, "may": true,
	"will": true, "should": true, "must": true, "has": true, "had": true,
	"was": true, "were": true, "are": true, "been": true, "being": true,
	"more": true, "less": true, "than": true, "does": true, "into": true,
	"over": true, "between": true, "through": true, "about": true,
	"under": true, "after": true, "before": true, "where": true,
	// Academic section and table headers, markdown template words
	"abstract": true, "introduction": true, "results": true,
	"discussion": true, "methods": true, "references": true, "figure": true,
	"table": true, "source": true, "context": true, "metric": true,
	"value": true, "priority": true, "claim": true, "section": true,
	"supporting": true, "strength": true, "gap": true, "key": true,
	"result": true, "impact": true, "novelty": true, "mechanism": true,
	"one": true, "fact": true, "base": true, "logic": true, "graph": true,
	"narrative": true, "inventory": true, "sentence": true,
	"coverage": true, "check": true, "paragraph": true,
	// Common scientific verbs and adjectives, not domain-specific
	"covers": true, "converts": true, "produces": true, "enables": true,
	"first": true, "novel": true, "using": true, "based": true,
	"compared": true, "across": true, "applied": true, "measured": true,
	"demonstrated": true, "achieved": true, "show": true, "shows": true,
	"shown": true, "report": true, "strong": true, "moderate": true,
	"weak": true, "direct": true, "indirect": true, "overall": true,
	"high": true, "low": true, "new": true, "large": true, "small": true,
	"per": true, "non": true, "pre": true, "sub": true,
	// Markdown noise and generic scientific nouns
	"auto": true, "epi": true, "fig": true, "ref": true, "see": true,
	"note": true, "data": true, "ext": true, "experimental": true,
	"commercial": true, "standard": true, "single": true, "no": true,
	"off": true, "on": true, "focus": true, "side": true,
	"optimization": true, "resolution": true, "sample": true,
	"imaging": true, "detection": true, "analysis": true,
	"technique": true, "approach": true, "system": true, "mode": true,
	"band": true, "range": true, "type": true, "step": true,
	"level": true, "rate": true, "field": true, "point": true,
	"time": true, "speed": true, "limit": true,
	// Ultra-common domain terms shared by all optics papers
	"raman": true, "spectral": true, "spectrum": true, "spectra": true,
	"clinical": true, "laser": true, "optical": true, "signal": true,
	"fluorescence": true, "microscopy": true, "microscope": true,
	"wavelength": true, "power": true, "pulse": true, "pulses": true,
	"measurement": true,
	// Common hyphenated modifier phrases
	"state-of-the-art": true, "high-quality": true, "high-speed": true,
	"high-fidelity": true, "high-performance": true,
	"high-throughput": true, "high-resolution": true,
	"high-sensitivity": true, "label-free": true, "real-time": true,
	"large-scale": true, "long-term": true, "low-cost": true,
}

var (
	rowMarkerRe   = regexp.MustCompile(`\b[FC]\d{1,2}\b`)
	tableNoiseRe  = regexp.MustCompile(`[|★#]`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
	acronymTermRe = regexp.MustCompile(`\b([A-Z][A-Z0-9]{2,5})\b`)
	properTermRe  = regexp.MustCompile(`\b([A-Z][a-z]{3,})\b`)
)

// ExtractKeywords pulls ranked manuscript keywords out of semantic-core
// markdown. The labeled Fact Base, Claims, and Logic Graph sections are
// scanned first; if they yield fewer than five distinct candidates the whole
// document is scanned too. Candidates are ranked by type weight times
// whole-document frequency and the top limit terms are returned. A
// non-positive limit returns every candidate.
func ExtractKeywords(content string, limit int) []string {
	candidates := util.NewCounter()

	if sec, ok := sectionSlice(content, "## 1. Fact Base", "## 2."); ok {
		extractTerms(sec, candidates)
	}
	if sec, ok := sectionSlice(content, "## 3. Claims"); ok {
		extractTerms(sec, candidates)
	}
	if sec, ok := sectionSlice(content, "## 2. Logic Graph", "## 3."); ok {
		extractTerms(sec, candidates)
	}

	if candidates.Len() < 5 {
		extractTerms(content, candidates)
	}

	type scoredTerm struct {
		term  string
		score float64
	}
	lowerContent := strings.ToLower(content)
	scored := make([]scoredTerm, 0, candidates.Len())
	for _, term := range candidates.Keys() {
		var docFreq int
		var weight float64
		switch {
		case isUpperTerm(term):
			// Acronyms count case-sensitively so SRS does not match "srs".
			docFreq = strings.Count(content, term)
			weight = 3.0
		case strings.Contains(term, "-"):
			docFreq = strings.Count(lowerContent, term)
			weight = 2.0
		default:
			docFreq = strings.Count(lowerContent, strings.ToLower(term))
			weight = 1.0
		}
		scored = append(scored, scoredTerm{
			term:  term,
			score: weight * float64(max(docFreq, candidates.Count(term))),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	keywords := make([]string, len(scored))
	for i, s := range scored {
		keywords[i] = s.term
	}
	return keywords
}

// sectionSlice returns the block of content starting at header and ending
// before the first later occurrence of any end marker, or at the end of
// content when no marker follows.
func sectionSlice(content, header string, ends ...string) (string, bool) {
	start := strings.Index(content, header)
	if start < 0 {
		return "", false
	}
	section := content[start:]
	body := section[len(header):]
	cut := len(section)
	for _, end := range ends {
		if i := strings.Index(body, end); i >= 0 && len(header)+i < cut {
			cut = len(header) + i
		}
	}
	return section[:cut], true
}

// extractTerms scans a block of markdown for ALL-CAPS acronyms, hyphenated
// compounds, and capitalized proper nouns, counting candidates that pass the
// stopword filter. Table row markers, pipes, star ratings, and header hashes
// are stripped first. Hyphenated terms are normalized to lowercase and
// rejected only when every hyphen-separated part is a stopword.
func extractTerms(text string, candidates *util.Counter) {
	clean := rowMarkerRe.ReplaceAllString(text, "")
	clean = tableNoiseRe.ReplaceAllString(clean, " ")
	clean = spaceRunRe.ReplaceAllString(clean, " ")

	for _, m := range acronymTermRe.FindAllString(clean, -1) {
		if !keywordStops[strings.ToLower(m)] {
			candidates.Add(m)
		}
	}

	for _, m := range hyphenatedRe.FindAllString(clean, -1) {
		if len(m) < 6 {
			continue
		}
		normalized := strings.ToLower(m)
		allStops := true
		for _, part := range strings.Split(normalized, "-") {
			if !keywordStops[part] {
				allStops = false
				break
			}
		}
		if allStops || keywordStops[normalized] {
			continue
		}
		candidates.Add(normalized)
	}

	for _, m := range properTermRe.FindAllString(clean, -1) {
		if !keywordStops[strings.ToLower(m)] {
			candidates.Add(m)
		}
	}
}

// isUpperTerm reports whether s contains at least one letter and no
// lowercase letters.
func isUpperTerm(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if unicode.IsLower(r) {
				return false
			}
			hasLetter = true
		}
	}
	return hasLetter
}
