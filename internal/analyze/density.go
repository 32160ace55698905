package analyze

import (
	"regexp"
	"strings"

	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/util"
)

// Information units are approximated without a POS tagger: acronyms, numbers
// with units, proper nouns, hyphenated compounds, and a closed list of
// adjective+noun domain phrases.
var (
	acronymRe    = regexp.MustCompile(`\b([A-Z][A-Z0-9]{1,5})\b`)
	numberUnitRe = regexp.MustCompile(`\d+(?:\.\d+)?\s*(?:[-×]fold|cm⁻¹|nm|MHz|ms|μs|%|samples?|biomarkers?)`)
	comparatorRe = regexp.MustCompile(`(?i)(?:more than|greater than|>)\s*\d+`)
	properNounRe = regexp.MustCompile(`^[A-Z][a-z]{3,}$`)
	hyphenatedRe = regexp.MustCompile(`\b([a-zA-Z]+-[a-zA-Z]+(?:-[a-zA-Z]+)*)\b`)
	nounPhraseRe = regexp.MustCompile(`(?i)\b(spectral|temporal|spatial|optical|molecular|vibrational|clinical|biological|quantum)` +
		`\s+(resolution|fidelity|bandwidth|sensitivity|interference|fingerprint\w*|analysis|imaging|detection|scattering|tissue|sample\w*)\b`)
)

// CountInformationUnits counts the distinct information units in a sentence.
// Units are tagged by source (ACRO, NUM, PROP, HYPH, NP), deduplicated, and
// returned in the order they were first seen.
func CountInformationUnits(sentence string) (int, []string) {
	seen := make(map[string]bool)
	var units []string
	add := func(unit string) {
		if !seen[unit] {
			seen[unit] = true
			units = append(units, unit)
		}
	}

	for _, m := range acronymRe.FindAllString(sentence, -1) {
		if m == "A" || m == "I" || m == "We" {
			continue
		}
		add("ACRO:" + m)
	}

	for _, m := range numberUnitRe.FindAllString(sentence, -1) {
		add("NUM:" + strings.TrimSpace(m))
	}
	for _, m := range comparatorRe.FindAllString(sentence, -1) {
		add("NUM:" + strings.TrimSpace(m))
	}

	// Proper nouns only past the first word, so sentence-initial capitals do
	// not count.
	for i, w := range strings.Fields(sentence) {
		if i > 0 && properNounRe.MatchString(w) {
			add("PROP:" + w)
		}
	}

	for _, m := range hyphenatedRe.FindAllString(sentence, -1) {
		if len(m) >= 6 {
			add("HYPH:" + strings.ToLower(m))
		}
	}

	for _, m := range nounPhraseRe.FindAllStringSubmatch(sentence, -1) {
		add("NP:" + strings.ToLower(m[1]+" "+m[2]))
	}

	return len(units), units
}

// InfoDensityProfile computes per-sentence information-unit counts for text
// and classifies the shape of the resulting curve.
func InfoDensityProfile(text string) model.DensityProfile {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return model.DensityProfile{Counts: []int{}, Shape: model.ShapeEmpty}
	}

	counts := make([]int, 0, len(sentences))
	detail := make([]model.SentenceDensity, 0, len(sentences))
	for _, s := range sentences {
		n, units := CountInformationUnits(s)
		counts = append(counts, n)
		detail = append(detail, model.SentenceDensity{
			Sentence: util.TruncateRunes(s, 80),
			IUCount:  n,
			IUItems:  units,
		})
	}

	return model.DensityProfile{
		Counts: counts,
		Shape:  classifyShape(counts),
		Detail: detail,
	}
}

func classifyShape(counts []int) model.DensityShape {
	n := len(counts)
	if n < 3 {
		return model.ShapeShort
	}

	peakIdx := 0
	maxIU := counts[0]
	for i, c := range counts {
		if c > maxIU {
			maxIU = c
			peakIdx = i
		}
	}

	switch {
	case maxIU > 6:
		// Any single sentence packing more than 6 units dominates the shape.
		return model.ShapeSpiky
	case float64(peakIdx) <= float64(n)*0.3:
		return model.ShapeFrontLoaded
	case float64(peakIdx) >= float64(n)*0.7:
		return model.ShapeBackLoaded
	}

	mid := counts[n/3 : 2*n/3]
	midSum := 0
	for _, c := range mid {
		midSum += c
	}
	edgeSum := 0
	for _, c := range counts[:n/3] {
		edgeSum += c
	}
	for _, c := range counts[2*n/3:] {
		edgeSum += c
	}
	midAvg := float64(midSum) / float64(max(len(mid), 1))
	edgeAvg := float64(edgeSum) / float64(max(n-len(mid), 1))
	if midAvg > edgeAvg*1.2 {
		return model.ShapeBell
	}
	return model.ShapeFlat
}
