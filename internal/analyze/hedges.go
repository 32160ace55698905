package analyze

import (
	"regexp"
	"strings"

	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/util"
)

// hedgeCategory pairs a category tag with its compiled lexicon patterns.
type hedgeCategory struct {
	name     model.HedgeCategory
	patterns []*regexp.Regexp
}

// hedgeLexicon lists the hedge categories in report order. Matching runs
// against lowercased text, so the patterns are written lowercase.
var hedgeLexicon = []hedgeCategory{
	{model.HedgeAbility, compileAll(
		`\bable to\b`, `\bcapable of\b`,
		`\bcan\b`, // no word boundary splits "cannot", so it is never counted
	)},
	{model.HedgePermission, compileAll(
		`\bpermitting\b`, `\ballowing\b`, `\benabling\b`,
	)},
	{model.HedgePromise, compileAll(
		`\bpromising\b`, `\bpromise\b`, `\bpaving the way\b`,
		`\bopening.*?(?:avenues?|doors?|possibilit)\b`,
	)},
	{model.HedgeEpistemic, compileAll(
		`\bmay\b`, `\bmight\b`, `\bsuggest(?:s|ing)?\b`,
		`\bindicat(?:es?|ing)\b`, `\bpotentially\b`,
		`\bpossibly\b`, `\blikely\b`,
	)},
	{model.HedgeApproximation, compileAll(
		`\bapproximately\b`, `\babout\b`, `~`, `\bnearly\b`,
		`\broughly\b`,
	)},
	{model.HedgeTentative, compileAll(
		`\bto our knowledge\b`, `\bbelieve\b`,
		`\bconsistent with\b`, `\bcompatible with\b`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(expr)
	}
	return compiled
}

// FindHedges returns every hedge-lexicon hit in text. Matches are grouped by
// category in lexicon order and, within a category, by pattern order and then
// position. Match text and offsets refer to the lowercased input.
func FindHedges(text string) []model.HedgeMatch {
	lower := strings.ToLower(text)

	var hits []model.HedgeMatch
	for _, cat := range hedgeLexicon {
		for _, re := range cat.patterns {
			for _, loc := range re.FindAllStringIndex(lower, -1) {
				hits = append(hits, model.HedgeMatch{
					Category: cat.name,
					Text:     lower[loc[0]:loc[1]],
					Offset:   loc[0],
				})
			}
		}
	}
	return hits
}

// DetectHedges tallies hedge matches per category, keeping up to three
// example matches for each. Density is hedges per sentence, rounded to two
// decimals.
func DetectHedges(text string, nSentences int) model.HedgeProfile {
	var profile model.HedgeProfile
	for _, m := range FindHedges(text) {
		tally := categoryTally(&profile, m.Category)
		tally.Count++
		if len(tally.Examples) < 3 {
			tally.Examples = append(tally.Examples, m.Text)
		}
		profile.Total++
	}
	profile.Density = util.Round2(float64(profile.Total) / float64(max(nSentences, 1)))
	return profile
}

func categoryTally(p *model.HedgeProfile, c model.HedgeCategory) *model.HedgeTally {
	switch c {
	case model.HedgeAbility:
		return &p.Ability
	case model.HedgePermission:
		return &p.Permission
	case model.HedgePromise:
		return &p.Promise
	case model.HedgeEpistemic:
		return &p.Epistemic
	case model.HedgeApproximation:
		return &p.Approximation
	default:
		return &p.Tentative
	}
}
