package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/util"
)

// Scorer computes topic alignment between a manuscript keyword set and an
// abstract corpus.
type Scorer struct{}

// NewScorer creates a new scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Alignment scores keyword overlap on a 0-100 scale with a TF-IDF-like
// heuristic and returns per-keyword detail in input order. Document frequency
// is case-insensitive substring containment; idf = ln(N/(1+df)). The score
// is normalized against N*ln(N) as a theoretical ceiling, so it is monotonic
// in keyword salience but not a calibrated probability and can dip below
// zero when every document matches every keyword. A zero-document corpus
// scores 0.0 with no detail. Duplicate keywords are scored once.
func (s *Scorer) Alignment(keywords []string, texts []string) (float64, []model.KeywordScore) {
	nDocs := len(texts)
	if nDocs == 0 {
		return 0.0, nil
	}

	lowered := make([]string, len(texts))
	for i, t := range texts {
		lowered[i] = strings.ToLower(t)
	}

	var detail []model.KeywordScore
	seen := make(map[string]bool)
	totalTFIDF := 0.0
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true

		kwLower := strings.ToLower(kw)
		docFreq := 0
		totalFreq := 0
		for _, t := range lowered {
			if strings.Contains(t, kwLower) {
				docFreq++
			}
			totalFreq += strings.Count(t, kwLower)
		}

		// The rounded value is what sums into the total, keeping the overall
		// percentage consistent with the per-keyword detail.
		tfidf := 0.0
		if docFreq > 0 {
			idf := math.Log(float64(nDocs) / float64(1+docFreq))
			tfidf = util.Round2(float64(totalFreq) * idf)
		}
		totalTFIDF += tfidf

		detail = append(detail, model.KeywordScore{
			Keyword:       kw,
			DocFrequency:  docFreq,
			TotalMentions: totalFreq,
			TFIDF:         tfidf,
			Coverage:      fmt.Sprintf("%d/%d abstracts", docFreq, nDocs),
		})
	}

	maxPossible := float64(nDocs) * math.Log(float64(nDocs))
	pct := math.Min(100, totalTFIDF/math.Max(maxPossible, 1)*100)
	return util.Round1(pct), detail
}
