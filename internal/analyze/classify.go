package analyze

import (
	"regexp"
	"strings"

	"github.com/ndrozd/exordium/internal/model"
)

type openingRule struct {
	re    *regexp.Regexp
	label model.OpeningLabel
}

// openingRules run in order against the lowercased, trimmed first sentence;
// the first anchored match wins.
var openingRules = []openingRule{
	{regexp.MustCompile(`^(despite|although|the\s+(challenge|problem|limitation|lack|difficulty))`), model.OpeningProblemFirst},
	{regexp.MustCompile(`^(the\s+ability|achieving|controlling|harnessing)`), model.OpeningBoldClaim},
	{regexp.MustCompile(`^\w[\w\s,-]+\s+(offer|provide|enable|allow|permit)`), model.OpeningFunctionFirst},
}

// ClassifyOpening labels how an abstract's first sentence is framed. The
// default, when no rule matches, is object-first: the sentence names the
// object or field under study.
func ClassifyOpening(sentence string) model.OpeningLabel {
	s := strings.TrimSpace(strings.ToLower(sentence))
	for _, r := range openingRules {
		if r.re.MatchString(s) {
			return r.label
		}
	}
	return model.OpeningObjectFirst
}

type closingRule struct {
	re    *regexp.Regexp
	label model.ClosingLabel
}

// closingRules run in order against the lowercased, trimmed last sentence;
// unlike opening rules they match anywhere in the sentence.
var closingRules = []closingRule{
	{regexp.MustCompile(`open[s]?\s+(a\s+)?pathway|pave[s]?\s+the\s+way|open[s]?\s+.*(route|prospect|door|possibilit)`), model.ClosingPathway},
	{regexp.MustCompile(`promis|potential|exciting|great promise`), model.ClosingPromise},
	{regexp.MustCompile(`establish|paradigm|new\s+platform|framework|make[s]?\s+this`), model.ClosingParadigm},
	{regexp.MustCompile(`application|sensing|imaging|device|technolog|commerc|future\s+direction`), model.ClosingApplication},
	{regexp.MustCompile(`\d+-fold|\d+\s*%|factor\s+of`), model.ClosingQuantitativeRecap},
	{regexp.MustCompile(`avenue|enable|novel.*science|suitable.*platform|expand.*scope`), model.ClosingOutlook},
}

// ClassifyClosing labels how an abstract's last sentence lands.
func ClassifyClosing(sentence string) model.ClosingLabel {
	s := strings.TrimSpace(strings.ToLower(sentence))
	for _, r := range closingRules {
		if r.re.MatchString(s) {
			return r.label
		}
	}
	return model.ClosingOther
}

type framingRule struct {
	re    *regexp.Regexp
	label model.FramingLabel
}

// framingRules classify editor-written TOC snippets, which are usually third
// person, so the patterns are broader than the first-person opening rules.
// All rules are anchored except passive-demonstrated, which may sit anywhere
// in the clause.
var framingRules = []framingRule{
	{regexp.MustCompile(`(?i)^(The inability|A major challenge|Despite|Although|However|The lack|Limitations|The difficulty|Current|Existing|Challenges|While)`), model.FramingProblemFirst},
	{regexp.MustCompile(`(?i)^(We demonstrate|We show|We report|We present|We develop|We achieve)`), model.FramingResultFirst},
	{regexp.MustCompile(`(?i)(is|are|was|were)\s+(demonstrated|reported|shown|achieved|realized|presented|enabled|obtained)`), model.FramingPassiveDemonstrated},
	{regexp.MustCompile(`(?i)^(By |Using |Through |Via |Combining )`), model.FramingMethodFirst},
	{regexp.MustCompile(`(?i)^(\w+\s+(promises|offers|allows|paves|opens))`), model.FramingVisionFirst},
}

// ClassifyFraming labels the framing of a TOC snippet from its first
// period-delimited clause. An empty snippet yields FramingNone.
func ClassifyFraming(snippet string) model.FramingLabel {
	if snippet == "" {
		return model.FramingNone
	}
	first := snippet
	if strings.Contains(snippet, ".") {
		first = strings.TrimSpace(snippet[:strings.Index(snippet, ".")])
	}
	for _, r := range framingRules {
		if r.re.MatchString(first) {
			return r.label
		}
	}
	return model.FramingObjectFirst
}
