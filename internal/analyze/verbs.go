package analyze

import (
	"regexp"
	"strings"
)

// verbPatterns capture the main-clause verb of an academic abstract. Patterns
// run in order and each emits its matches before the next pattern runs, so a
// clause caught by two patterns contributes twice; the corpus rankings depend
// on that emission order.
var verbPatterns = []*regexp.Regexp{
	// "Here we demonstrate/show/report..."
	regexp.MustCompile(`[Hh]ere\s+we\s+(\w+)`),
	// "We demonstrate/show/achieve..." (pivot hits are excluded separately)
	regexp.MustCompile(`\bWe\s+(\w+)`),
	// "Our approach/method/results + verb"
	regexp.MustCompile(`(?:Our|This|The)\s+(?:approach|method|results?|work|study|findings?|strategy)\s+(\w+)`),
	// gerund in impact clauses: "...thereby enabling/establishing..."
	regexp.MustCompile(`(?:thereby|thus|,)\s+(enabling|establishing|opening|revealing|overcoming|introducing|unlocking|harnessing|achieving)\b`),
}

// hereWindowRe recognizes a "Here " / "here " prefix in the five bytes before
// a bare-We match, which means the clause already belongs to the pivot
// pattern and must not be counted again.
var hereWindowRe = regexp.MustCompile(`^[Hh]ere\s$`)

// hereWeRe is the pivot pattern on its own, for the "Here we" statistics.
var hereWeRe = regexp.MustCompile(`[Hh]ere\s+we\s+(\w+)`)

// verbNormalize maps inflected forms to their base verb.
var verbNormalize = map[string]string{
	"demonstrates": "demonstrate", "demonstrated": "demonstrate",
	"shows": "show", "showed": "show", "shown": "show",
	"achieves": "achieve", "achieved": "achieve",
	"enables": "enable", "enabled": "enable", "enabling": "enable",
	"reveals": "reveal", "revealed": "reveal", "revealing": "reveal",
	"overcomes": "overcome", "overcame": "overcome", "overcoming": "overcome",
	"introduces": "introduce", "introduced": "introduce", "introducing": "introduce",
	"establishes": "establish", "established": "establish", "establishing": "establish",
	"presents": "present", "presented": "present", "presenting": "present",
	"reports": "report", "reported": "report", "reporting": "report",
	"develops": "develop", "developed": "develop", "developing": "develop",
	"provides": "provide", "provided": "provide", "providing": "provide",
	"opens": "open", "opened": "open", "opening": "open",
	"unlocks": "unlock", "unlocked": "unlock", "unlocking": "unlock",
	"harnesses": "harness", "harnessed": "harness", "harnessing": "harness",
	"uses": "use", "used": "use", "using": "use",
	"designs": "design", "designed": "design", "designing": "design",
	"proves": "prove", "proved": "prove", "proving": "prove",
}

// stopVerbs are too generic to rank, plus non-main-clause words the patterns
// can catch.
var stopVerbs = map[string]bool{
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true,
	"have": true, "has": true, "had": true, "having": true,
	"do": true, "does": true, "did": true,
	"can": true, "could": true, "will": true, "would": true,
	"shall": true, "should": true, "may": true, "might": true,
	"also": true, "further": true, "not": true, "here": true,
	"substantially": true, "recently": true, "simultaneously": true,
	"previously": true, "including": true, "posing": true, "making": true,
	"focusing": true, "arising": true, "offering": true, "requiring": true,
	"leading": true, "limiting": true, "resulting": true,
}

// ExtractVerbs returns the normalized main-clause verbs of an abstract in
// pattern emission order. Stop verbs and verbs of two characters or fewer
// are dropped after normalization.
func ExtractVerbs(text string) []string {
	var verbs []string
	for i, re := range verbPatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if i == 1 && blockedByHere(text, m[0]) {
				continue
			}
			verb := normalizeVerb(text[m[2]:m[3]])
			if stopVerbs[verb] || len(verb) <= 2 {
				continue
			}
			verbs = append(verbs, verb)
		}
	}
	return verbs
}

// HereWeVerbs returns the verbs following a "Here we" pivot, normalized but
// not stop-filtered.
func HereWeVerbs(text string) []string {
	var verbs []string
	for _, m := range hereWeRe.FindAllStringSubmatch(text, -1) {
		verbs = append(verbs, normalizeVerb(m[1]))
	}
	return verbs
}

func normalizeVerb(raw string) string {
	verb := strings.ToLower(raw)
	if base, ok := verbNormalize[verb]; ok {
		return base
	}
	return verb
}

func blockedByHere(text string, pos int) bool {
	return pos >= 5 && hereWindowRe.MatchString(text[pos-5:pos])
}
