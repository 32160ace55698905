package analyze

import (
	"regexp"
	"strings"
)

// tokenRe keeps alphabetic runs of three or more characters, with hyphens
// allowed inside compound terms.
var tokenRe = regexp.MustCompile(`[a-z][a-z\-]+[a-z]`)

// ngramStopwords exclude a window entirely when any of its tokens matches.
var ngramStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "from": true, "are": true, "was": true, "were": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"its": true, "our": true, "their": true, "which": true, "these": true,
	"those": true, "but": true, "not": true, "can": true, "also": true,
	"such": true, "than": true, "into": true, "over": true, "between": true,
	"through": true, "using": true, "via": true, "here": true, "both": true,
	"well": true, "each": true, "more": true, "most": true, "however": true,
	"yet": true, "although": true, "while": true, "when": true, "where": true,
	"how": true, "what": true,
}

// Tokenize lowercases the text and returns its word tokens.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// NGrams returns the space-joined n-grams of the text, skipping any window
// that contains a stopword or a token shorter than three characters.
func NGrams(text string, n int) []string {
	tokens := Tokenize(text)
	var grams []string
	for i := 0; i+n <= len(tokens); i++ {
		ok := true
		for _, t := range tokens[i : i+n] {
			if ngramStopwords[t] || len(t) < 3 {
				ok = false
				break
			}
		}
		if ok {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}
