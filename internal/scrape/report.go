package scrape

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/util"
)

// TrendReportData bundles everything the trend report renders.
type TrendReportData struct {
	Journal      string
	Months       int
	Articles     []model.Article
	Editorials   []model.Editorial
	Analysis     TrendAnalysis
	UserKeywords []string
	SeedNetworks []SeedNetwork
	CrossJournal []SearchHit
	// Now stamps the report header; zero means the current time.
	Now time.Time
}

// WriteTrendReport renders the markdown trend report to path and returns the
// rendered text.
func WriteTrendReport(path string, data TrendReportData) (string, error) {
	text := buildTrendReport(data)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write trend report: %w", err)
	}
	return text, nil
}

// futureSignalRe matches forward-looking language in News & Views snippets.
var futureSignalRe = regexp.MustCompile(`(?i)(future|potential|promise|paving|toward|prospect|outlook|could\s+lead|will\s+allow)`)

var sentenceBreakRe = regexp.MustCompile(`[.!]`)

func buildTrendReport(data TrendReportData) string {
	now := data.Now
	if now.IsZero() {
		now = time.Now()
	}
	journalName := data.Journal
	if name, ok := journalNames[data.Journal]; ok {
		journalName = name
	}

	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add(fmt.Sprintf("# %s Trend Report", journalName))
	add(fmt.Sprintf("## Period: last %d months (generated %s)", data.Months, now.Format("2006-01-02")))
	add(fmt.Sprintf("## Total articles scraped: %d", len(data.Articles)))
	add("")
	add("---")
	add("")

	// 1. Editorial signals
	var editorialArticles []model.Article
	for _, a := range data.Articles {
		if IsEditorialType(a.ArticleType) {
			editorialArticles = append(editorialArticles, a)
		}
	}
	if len(editorialArticles) > 0 || len(data.Editorials) > 0 {
		add("## 1. Editorial Signals")
		add("")
		add("| Date | Title | Type |")
		add("|:--|:--|:--|")
		for _, ea := range editorialArticles {
			add(fmt.Sprintf("| %s | %s | %s |",
				orDefault(ea.Date, "N/A"), orDefault(ea.Title, "N/A"), orDefault(ea.ArticleType, "Editorial")))
		}
		add("")

		if len(data.Editorials) > 0 {
			add("### Editorial Full-Text Excerpts")
			add("")
			for _, ed := range data.Editorials {
				add(fmt.Sprintf("**%s**", ed.DisplayTitle()))
				add("> " + truncateWords(ed.Text(), 300))
				add("")
			}
		}
	}

	// 2. Hot keywords
	add("## 2. Hot Keywords (Top 20)")
	add("")
	add("| Keyword | Count | Trend | Your Manuscript |")
	add("|:--|:--|:--|:--|")

	top := append([]KeywordTrend(nil), data.Analysis.Trending...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Total > top[j].Total })
	if len(top) > 20 {
		top = top[:20]
	}
	userSet := make(map[string]bool, len(data.UserKeywords))
	for _, kw := range data.UserKeywords {
		userSet[strings.ToLower(strings.TrimSpace(kw))] = true
	}
	for _, kt := range top {
		inManuscript := ""
		if userSet[kt.Keyword] {
			inManuscript = "✅"
		}
		add(fmt.Sprintf("| %s | %d | %s | %s |", kt.Keyword, kt.Total, kt.Trend, inManuscript))
	}
	add("")

	if len(data.Analysis.UserKeywords) > 0 {
		add("### Your Keywords vs Trend")
		add("")
		for _, s := range data.Analysis.UserKeywords {
			status := "❌ absent"
			if s.Present {
				status = "✅ present"
			}
			add(fmt.Sprintf("- **%s**: %s", s.Keyword, status))
		}
		add("")
	}

	// 3. Framing patterns
	add("## 3. Abstract Framing Patterns")
	add("")
	framingTotal := 0
	for _, p := range data.Analysis.FramingCounts {
		framingTotal += p.Count
	}
	if framingTotal == 0 {
		framingTotal = 1
	}
	for _, p := range data.Analysis.FramingCounts {
		add(fmt.Sprintf("- **%s**: %d (%d%%)", p.Key, p.Count, 100*p.Count/framingTotal))
	}
	add("")

	// 4. Article type distribution
	add("## 4. Article Type Distribution")
	add("")
	for _, p := range data.Analysis.TypeCounts {
		add(fmt.Sprintf("- %s: %d", p.Key, p.Count))
	}
	add("")

	// 5. Editorials that still need a manual download
	var needDownload []model.Article
	for _, ea := range editorialArticles {
		matched := false
		for _, ed := range data.Editorials {
			if ed.Title == ea.Title {
				matched = true
				break
			}
		}
		if !matched {
			needDownload = append(needDownload, ea)
		}
	}
	if len(needDownload) > 0 {
		add("## 5. Editorials — Manual Download Needed")
		add("")
		add("These editorials could not be fully scraped. Download them locally")
		add("and save to `editorials/` folder, then re-run with `--read-local editorials/`.")
		add("")
		add("| Title | DOI | URL |")
		add("|:--|:--|:--|")
		for _, ea := range needDownload {
			add(fmt.Sprintf("| %s | %s | [link](%s) |",
				orDefault(ea.Title, "N/A"), orDefault(ea.DOI, "N/A"), orDefault(ea.URL, "N/A")))
		}
		add("")
	}

	// 6. News & Views
	var nv []model.Article
	for _, a := range data.Articles {
		if strings.Contains(strings.ToLower(a.ArticleType), "news & views") {
			nv = append(nv, a)
		}
	}
	if len(nv) > 0 {
		add("## 6. News & Views Analysis")
		add("")
		add("> N&V pieces are editor-commissioned — they signal what the editorial")
		add("> team considers the most impactful work in each issue.")
		add("")
		add("| N&V Title | Snippet | Date |")
		add("|:--|:--|:--|")
		for _, a := range nv {
			snippet := a.AbstractSnippet
			if utf8.RuneCountInString(snippet) > 120 {
				snippet = util.TruncateRunes(snippet, 117) + "..."
			}
			add(fmt.Sprintf("| %s | %s | %s |", orDefault(a.Title, "N/A"), snippet, a.Date))
		}
		add("")

		type futureSignal struct{ title, sentence string }
		var signals []futureSignal
		for _, a := range nv {
			for _, sent := range sentenceBreakRe.Split(a.AbstractSnippet, -1) {
				sent = strings.TrimSpace(sent)
				if len(sent) > 20 && futureSignalRe.MatchString(sent) {
					signals = append(signals, futureSignal{a.Title, sent})
				}
			}
		}
		if len(signals) > 0 {
			add("### N&V Future Directions")
			add("")
			for _, s := range signals {
				add(fmt.Sprintf("- **%s**: %q", s.title, s.sentence))
			}
			add("")
		}
	}

	// 7. Most relevant articles
	var relevant []model.Article
	for _, a := range data.Articles {
		if a.RelevanceScore > 0 {
			relevant = append(relevant, a)
		}
	}
	if len(relevant) > 0 {
		sort.SliceStable(relevant, func(i, j int) bool {
			return relevant[i].RelevanceScore > relevant[j].RelevanceScore
		})
		if len(relevant) > 15 {
			relevant = relevant[:15]
		}
		add("## 7. Most Relevant to Your Research")
		add("")
		add("> Ranked by keyword overlap with your `--keywords`.")
		add("> Articles marked ★ have full abstracts fetched below.")
		add("")
		add("| Score | Title | Type | Date |")
		add("|:--|:--|:--|:--|")
		for _, a := range relevant {
			star := ""
			if a.FullAbstract != "" {
				star = "★"
			}
			add(fmt.Sprintf("| %d %s | %s | %s | %s |",
				a.RelevanceScore, star, orDefault(a.Title, "N/A"), orDefault(a.ArticleType, "N/A"), orDefault(a.Date, "N/A")))
		}
		add("")

		var withAbstract []model.Article
		for _, a := range relevant {
			if a.FullAbstract != "" {
				withAbstract = append(withAbstract, a)
			}
		}
		if len(withAbstract) > 0 {
			add("### Full Abstracts (Top Relevant)")
			add("")
			for _, a := range withAbstract {
				add(fmt.Sprintf("**%s** (%s)", orDefault(a.Title, "N/A"), a.Date))
				add("> " + a.FullAbstract)
				add("")
			}
		}
	}

	// 8. Citation context
	var cited []model.Article
	for _, a := range data.Articles {
		if a.CitationCount != nil {
			cited = append(cited, a)
		}
	}
	if len(cited) > 0 {
		sort.SliceStable(cited, func(i, j int) bool {
			return *cited[i].CitationCount > *cited[j].CitationCount
		})
		if len(cited) > 10 {
			cited = cited[:10]
		}
		add("## 8. Citation Context (Semantic Scholar)")
		add("")
		add("| Title | Citations | Key References |")
		add("|:--|:--|:--|")
		for _, a := range cited {
			refs := a.TopReferences
			if len(refs) > 3 {
				refs = refs[:3]
			}
			refStr := "—"
			if len(refs) > 0 {
				refStr = strings.Join(refs, "; ")
			}
			add(fmt.Sprintf("| %s | %d | %s |", orDefault(a.Title, "N/A"), *a.CitationCount, refStr))
		}
		add("")
	}

	// 9. Niche keywords: trending terms that share articles with the user's
	// keywords.
	if len(data.UserKeywords) > 0 {
		var userLower []string
		for _, kw := range data.UserKeywords {
			if k := strings.ToLower(strings.TrimSpace(kw)); k != "" {
				userLower = append(userLower, k)
			}
		}
		type nicheKeyword struct {
			KeywordTrend
			Cooccur int
		}
		var niche []nicheKeyword
		for _, kt := range data.Analysis.Trending {
			cooccur := 0
			for _, a := range data.Articles {
				text := strings.ToLower(a.Title + " " + a.AbstractSnippet)
				if !strings.Contains(text, kt.Keyword) {
					continue
				}
				for _, uk := range userLower {
					if strings.Contains(text, uk) {
						cooccur++
						break
					}
				}
			}
			if cooccur > 0 {
				niche = append(niche, nicheKeyword{kt, cooccur})
			}
		}
		if len(niche) > 0 {
			sort.SliceStable(niche, func(i, j int) bool { return niche[i].Cooccur > niche[j].Cooccur })
			if len(niche) > 15 {
				niche = niche[:15]
			}
			add("## 9. Niche-Relevant Keywords")
			add("")
			add("> Keywords that co-occur with your manuscript keywords in the same article.")
			add("")
			add("| Keyword | Total | Trend | Co-occurrence |")
			add("|:--|:--|:--|:--|")
			for _, n := range niche {
				add(fmt.Sprintf("| %s | %d | %s | %d |", n.Keyword, n.Total, n.Trend, n.Cooccur))
			}
			add("")
		}
	}

	// 11. Seed citation network (section 10 was retired; numbering is kept
	// stable for downstream consumers that key on headings).
	if len(data.SeedNetworks) > 0 {
		add("## 11. Benchmark Citation Network")
		add("")
		add("> Citation landscape of your seed (benchmark) papers via Semantic Scholar.")
		add("")
		for _, seed := range data.SeedNetworks {
			add(fmt.Sprintf("### %s (%s)", seed.Title, yearStr(seed.Year, "?")))
			add(fmt.Sprintf("**Venue**: %s | **Citations**: %d", seed.Venue, seed.CitationCount))
			add("")
			if len(seed.TopCiting) > 0 {
				add("**Top Citing Papers** (who builds on this work):")
				add("")
				add("| Title | Year | Venue |")
				add("|:--|:--|:--|")
				for _, c := range seed.TopCiting {
					add(fmt.Sprintf("| %s | %s | %s |", c.Title, yearStr(c.Year, ""), c.Venue))
				}
				add("")
			}
			if len(seed.KeyReferences) > 0 {
				add("**Key References** (what this work builds on):")
				add("")
				add("| Title | Year | Venue |")
				add("|:--|:--|:--|")
				for _, r := range seed.KeyReferences {
					add(fmt.Sprintf("| %s | %s | %s |", r.Title, yearStr(r.Year, ""), r.Venue))
				}
				add("")
			}
		}
	}

	// 12. Cross-journal matches
	if len(data.CrossJournal) > 0 {
		add("## 12. Cross-Journal Keyword Matches")
		add("")
		add("> Recent articles matching your keywords in other journals.")
		add("")
		add("| Title | Journal | Date |")
		add("|:--|:--|:--|")
		for _, hit := range data.CrossJournal {
			add(fmt.Sprintf("| %s | %s | %s |",
				orDefault(hit.Title, "N/A"), orDefault(hit.Journal, "N/A"), hit.Date))
		}
		add("")
	}

	// 13. Full article list
	add("## 13. Full Article List")
	add("")
	add("| # | Title | Type | Date |")
	add("|:--|:--|:--|:--|")
	for i, a := range data.Articles {
		add(fmt.Sprintf("| %d | %s | %s | %s |",
			i+1, orDefault(a.Title, "N/A"), orDefault(a.ArticleType, "N/A"), orDefault(a.Date, "N/A")))
	}
	add("")

	return strings.Join(lines, "\n")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yearStr(year int, fallback string) string {
	if year == 0 {
		return fallback
	}
	return strconv.Itoa(year)
}

// truncateWords caps text at limit whitespace-separated words, marking the
// cut with a bracketed ellipsis.
func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ") + " [...]"
}
