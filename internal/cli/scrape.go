package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ndrozd/exordium/internal/cache"
	"github.com/ndrozd/exordium/internal/corpus"
	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/scrape"
	"github.com/ndrozd/exordium/internal/util"
	"github.com/ndrozd/exordium/internal/worker"
)

var (
	scrapeJournal          string
	scrapeMonths           int
	scrapeOutput           string
	scrapeKeywords         string
	scrapeReadLocal        string
	scrapeEditorials       bool
	scrapeExclude          string
	scrapeNoDefaultExclude bool
	scrapeFetchAbstracts   int
	scrapeCitations        bool
	scrapeSeedDOIs         string
	scrapeSeedDOIsFile     string
	scrapeCrossJournal     string
	scrapeTimeout          time.Duration
	scrapeNoCache          bool
	scrapeNoRobots         bool
	httpProxy              string
	httpsProxy             string
	noProxy                string
)

// crossJournalMaxResults caps the cross-journal search per run.
const crossJournalMaxResults = 20

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape journal issues and build a trend report",
	Long: `Scrape walks the recent monthly issues of a nature.com journal:
- Collect article metadata from issue tables of contents
- Optionally pull editorial texts and full abstracts
- Score articles against your manuscript keywords
- Enrich with Semantic Scholar citation context and seed networks
- Write articles_raw.yaml, editorials.yaml and a markdown trend report

Example:
  exordium scrape --journal nphoton --months 6
  exordium scrape --keywords "quantum dot,single photon" --fetch-abstracts 10
  exordium scrape --scrape-editorials --read-local ./editorials
  exordium scrape --seed-dois 10.1038/s41566-023-01234-5 --citation-context
  exordium scrape --keywords "perovskite laser" --cross-journal nnano,nmat`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&scrapeJournal, "journal", "nphoton", "journal key: nphoton, ncomms, nature, lsa")
	scrapeCmd.Flags().IntVar(&scrapeMonths, "months", 6, "number of months to look back")
	scrapeCmd.Flags().StringVar(&scrapeOutput, "output", "./trend_data/", "output directory for YAML and report files")
	scrapeCmd.Flags().StringVar(&scrapeKeywords, "keywords", "", "comma-separated manuscript keywords for gap analysis")
	scrapeCmd.Flags().StringVar(&scrapeReadLocal, "read-local", "", "directory with locally saved editorial files (.txt/.md/.html)")
	scrapeCmd.Flags().BoolVar(&scrapeEditorials, "scrape-editorials", false, "scrape editorial article pages for full text")
	scrapeCmd.Flags().StringVar(&scrapeExclude, "exclude", "", "comma-separated keywords to exclude from trend analysis")
	scrapeCmd.Flags().BoolVar(&scrapeNoDefaultExclude, "no-default-exclude", false, "disable the built-in structural noise filter")
	scrapeCmd.Flags().IntVar(&scrapeFetchAbstracts, "fetch-abstracts", 0, "fetch full abstracts for top N relevant articles (0 = off)")
	scrapeCmd.Flags().BoolVar(&scrapeCitations, "citation-context", false, "query Semantic Scholar for citation counts and references")
	scrapeCmd.Flags().StringVar(&scrapeSeedDOIs, "seed-dois", "", "comma-separated DOIs of benchmark papers to map citation networks")
	scrapeCmd.Flags().StringVar(&scrapeSeedDOIsFile, "seed-dois-file", "", "file with benchmark DOIs, one per line")
	scrapeCmd.Flags().StringVar(&scrapeCrossJournal, "cross-journal", "", "comma-separated journal codes for cross-journal keyword search")
	scrapeCmd.Flags().DurationVar(&scrapeTimeout, "timeout", 30*time.Minute, "overall scrape timeout")
	scrapeCmd.Flags().BoolVar(&scrapeNoCache, "no-cache", false, "disable the page cache (force fresh fetches)")
	scrapeCmd.Flags().BoolVar(&scrapeNoRobots, "no-robots", false, "skip robots.txt checks")
	scrapeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	scrapeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	scrapeCmd.Flags().StringVar(&noProxy, "no-proxy", "", "comma-separated hosts to bypass the proxy for")
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	userKeywords := splitCommaList(scrapeKeywords)

	noise := map[string]bool{}
	if !scrapeNoDefaultExclude {
		noise = scrape.DefaultStructuralNoise()
	}
	for _, kw := range splitCommaList(scrapeExclude) {
		noise[strings.ToLower(kw)] = true
	}

	seedDOIs := splitCommaList(scrapeSeedDOIs)
	if scrapeSeedDOIsFile != "" {
		fromFile, err := worker.ReadListFile(scrapeSeedDOIsFile)
		if err != nil {
			return fmt.Errorf("read seed DOI file: %w", err)
		}
		seedDOIs = append(seedDOIs, fromFile...)
	}

	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("  Exordium Journal Scraper\n")
	fmt.Printf("═══════════════════════════════════════════════════════════\n")
	fmt.Printf("\n")
	fmt.Printf("  Journal:    %s\n", scrapeJournal)
	fmt.Printf("  Months:     %d\n", scrapeMonths)
	fmt.Printf("  Output:     %s\n", scrapeOutput)
	if len(userKeywords) > 0 {
		shown := userKeywords
		if len(shown) > 5 {
			shown = shown[:5]
		}
		fmt.Printf("  Keywords:   %s\n", strings.Join(shown, ", "))
	}
	if scrapeFetchAbstracts > 0 {
		fmt.Printf("  Abstracts:  top %d\n", scrapeFetchAbstracts)
	}
	if scrapeCitations {
		fmt.Printf("  Citations:  Semantic Scholar\n")
	}
	if len(seedDOIs) > 0 {
		fmt.Printf("  Seed DOIs:  %d\n", len(seedDOIs))
	}
	if scrapeCrossJournal != "" {
		fmt.Printf("  Cross-J:    %s\n", scrapeCrossJournal)
	}
	fmt.Printf("\n")

	cfg := model.DefaultConfig()
	cfg.Scrape.Journal = scrapeJournal
	cfg.Scrape.Months = scrapeMonths
	cfg.Scrape.RespectRobots = !scrapeNoRobots
	cfg.Cache.Enabled = !scrapeNoCache
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.NoProxy = noProxy
	cfg.Output.Verbose = verbose

	fetcher := scrape.NewFetcher(cfg, cache.ForConfig(cfg.Cache))

	issues := scrape.IssueURLs(scrapeJournal, scrapeMonths, time.Now())
	fmt.Printf("📋 Will scrape %d issues:\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("   Vol %d Issue %d (%d-%02d)\n", issue.Volume, issue.Issue, issue.Year, issue.Month)
	}
	fmt.Println()

	var articles []model.Article
	for i, issue := range issues {
		fmt.Printf("🔍 [%d/%d] Scraping Vol %d Issue %d...\n", i+1, len(issues), issue.Volume, issue.Issue)
		page, err := fetcher.FetchWithRetry(ctx, issue.URL)
		if err != nil {
			fmt.Println("   ✗ Failed to load page")
			continue
		}
		found, err := scrape.ParseTOC(page, issue)
		if err != nil {
			fmt.Println("   ✗ Failed to parse page")
			continue
		}
		articles = append(articles, found...)
		fmt.Printf("   ✓ Found %d articles\n", len(found))
	}

	fmt.Printf("\n📊 Total articles scraped: %d\n", len(articles))

	articlesPath := filepath.Join(scrapeOutput, "articles_raw.yaml")
	if err := corpus.SaveArticles(articlesPath, articles); err != nil {
		return fmt.Errorf("save articles: %w", err)
	}
	fmt.Printf("✓ Raw data saved: %s\n", articlesPath)

	var editorials []model.Editorial
	if scrapeEditorials {
		var targets []model.Article
		for _, a := range articles {
			if scrape.IsEditorialType(a.ArticleType) {
				targets = append(targets, a)
			}
		}
		fmt.Printf("\n📝 Attempting to scrape %d editorial(s)...\n", len(targets))
		for _, ea := range targets {
			fmt.Printf("   Fetching: %s\n", ea.Title)
			page, err := fetcher.FetchWithRetry(ctx, ea.URL)
			if err != nil {
				fmt.Fprintf(os.Stderr, "   ⚠ Failed to fetch %s: %v\n", ea.URL, err)
				continue
			}
			ed := scrape.ExtractEditorial(page)
			ed.DOI = ea.DOI
			editorials = append(editorials, ed)
			fmt.Printf("   ✓ Access: %s\n", ed.Access)
		}
	}

	if scrapeReadLocal != "" {
		fmt.Printf("\n📂 Reading local editorials from: %s\n", scrapeReadLocal)
		local, err := scrape.ReadLocalEditorials(scrapeReadLocal)
		if err != nil {
			return fmt.Errorf("read local editorials: %w", err)
		}
		if len(local) == 0 {
			fmt.Println("   ℹ No editorial files found, skipping local read")
		}
		for _, ed := range local {
			fmt.Printf("   ✓ Read local editorial: %s\n", ed.Filename)
		}
		editorials = append(editorials, local...)
	}

	if len(editorials) > 0 {
		edPath := filepath.Join(scrapeOutput, "editorials.yaml")
		if err := corpus.SaveEditorials(edPath, editorials); err != nil {
			return fmt.Errorf("save editorials: %w", err)
		}
		fmt.Printf("✓ Editorial data saved: %s\n", edPath)
	}

	if len(userKeywords) > 0 {
		fmt.Println("\n🎯 Computing relevance scores...")
		relevant := 0
		for i := range articles {
			articles[i].RelevanceScore = scrape.RelevanceScore(articles[i], userKeywords)
			if articles[i].RelevanceScore > 0 {
				relevant++
			}
		}
		fmt.Printf("   ✓ %d articles have relevance > 0\n", relevant)
	}

	if scrapeFetchAbstracts > 0 && len(userKeywords) > 0 {
		ranked := rankedByRelevance(articles)
		if len(ranked) > scrapeFetchAbstracts {
			ranked = ranked[:scrapeFetchAbstracts]
		}
		fmt.Printf("\n📖 Fetching full abstracts for top %d relevant articles...\n", len(ranked))
		for n, i := range ranked {
			a := &articles[i]
			fmt.Printf("   [%d/%d] %s...\n", n+1, len(ranked), util.TruncateRunes(a.Title, 60))
			page, err := fetcher.FetchWithRetry(ctx, a.URL)
			if err != nil {
				fmt.Fprintf(os.Stderr, "   ⚠ Abstract fetch failed for %s: %v\n", a.URL, err)
				fmt.Println("   ✗ Could not fetch")
				continue
			}
			if abstract, ok := scrape.ExtractAbstract(page); ok {
				a.FullAbstract = abstract
				fmt.Printf("   ✓ %d chars\n", utf8.RuneCountInString(abstract))
			} else {
				fmt.Println("   ✗ Could not fetch")
			}
		}
	}

	var citations *scrape.CitationClient
	if scrapeCitations {
		idxs := rankedByRelevance(articles)
		if len(idxs) > 15 {
			idxs = idxs[:15]
		}
		if len(idxs) == 0 {
			for i := 0; i < len(articles) && i < 10; i++ {
				idxs = append(idxs, i)
			}
		}
		fmt.Printf("\n🔗 Querying Semantic Scholar for %d articles...\n", len(idxs))
		citations = scrape.NewCitationClient(cfg)
		for n, i := range idxs {
			a := &articles[i]
			if a.DOI == "" {
				continue
			}
			fmt.Printf("   [%d/%d] %s...\n", n+1, len(idxs), util.TruncateRunes(a.Title, 50))
			info, err := citations.Lookup(ctx, a.DOI)
			if errors.Is(err, scrape.ErrRateLimited) {
				fmt.Fprintln(os.Stderr, "   ⚠ Semantic Scholar rate limit hit. Pausing 30s...")
				time.Sleep(scrape.RateLimitPause)
				continue
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "   ⚠ Semantic Scholar query failed for %s: %v\n", a.DOI, err)
				continue
			}
			count := info.CitationCount
			a.CitationCount = &count
			a.TopReferences = info.TopReferences
			fmt.Printf("   ✓ %d citations, %d refs\n", info.CitationCount, len(info.TopReferences))
		}
	}

	var seedNetworks []scrape.SeedNetwork
	if len(seedDOIs) > 0 {
		if citations == nil {
			citations = scrape.NewCitationClient(cfg)
		}
		fmt.Printf("\n📚 Querying Semantic Scholar for %d seed/benchmark DOIs...\n", len(seedDOIs))
		for n, doi := range seedDOIs {
			fmt.Printf("   [%d/%d] %s\n", n+1, len(seedDOIs), doi)
			network, err := citations.Network(ctx, doi)
			if err != nil {
				if errors.Is(err, scrape.ErrRateLimited) {
					fmt.Fprintln(os.Stderr, "   ⚠ Rate limit hit. Pausing 30s...")
					time.Sleep(scrape.RateLimitPause)
				} else {
					fmt.Fprintf(os.Stderr, "   ⚠ Seed DOI query failed for %s: %v\n", doi, err)
				}
				fmt.Println("   ✗ Not found")
				continue
			}
			seedNetworks = append(seedNetworks, *network)
			fmt.Printf("   ✓ %s... (%d citations)\n", util.TruncateRunes(network.Title, 50), network.CitationCount)
		}
	}

	var crossJournal []scrape.SearchHit
	if scrapeCrossJournal != "" && len(userKeywords) > 0 {
		cjJournals := splitCommaList(scrapeCrossJournal)
		fmt.Printf("\n🌐 Cross-journal search for your keywords in %v...\n", cjJournals)
		hits, err := scrape.SearchKeywords(ctx, fetcher, userKeywords, cjJournals, crossJournalMaxResults)
		if err != nil {
			fmt.Fprintf(os.Stderr, "   ⚠ Cross-journal search failed: %v\n", err)
		}
		crossJournal = hits
		fmt.Printf("   ✓ Found %d articles across journals\n", len(crossJournal))
	}

	fmt.Println("\n🔬 Analyzing trends...")
	analysis := scrape.AnalyzeTrends(articles, userKeywords, noise)

	reportPath := filepath.Join(scrapeOutput, "trend_report.md")
	reportText, err := scrape.WriteTrendReport(reportPath, scrape.TrendReportData{
		Journal:      scrapeJournal,
		Months:       scrapeMonths,
		Articles:     articles,
		Editorials:   editorials,
		Analysis:     analysis,
		UserKeywords: userKeywords,
		SeedNetworks: seedNetworks,
		CrossJournal: crossJournal,
	})
	if err != nil {
		return fmt.Errorf("write trend report: %w", err)
	}
	fmt.Printf("\n✓ Trend report saved: %s\n", reportPath)
	fmt.Printf("  Report size: ~%d words / ~%d tokens (est.)\n",
		len(strings.Fields(reportText)), utf8.RuneCountInString(reportText)/4)

	// Relevance scores, abstracts and citation context were added after the
	// first save, so write the enriched metadata back.
	if err := corpus.SaveArticles(articlesPath, articles); err != nil {
		return fmt.Errorf("save articles: %w", err)
	}
	fmt.Printf("✓ Updated data saved: %s\n", articlesPath)

	fmt.Printf("\n%s\n", strings.Repeat("=", 50))
	fmt.Printf("✅ Done! Files saved to: %s/\n", filepath.Clean(scrapeOutput))
	fmt.Printf("   📄 articles_raw.yaml   — raw metadata (%d articles)\n", len(articles))
	if len(editorials) > 0 {
		fmt.Printf("   📝 editorials.yaml     — editorial content (%d items)\n", len(editorials))
	}
	fmt.Printf("   📊 trend_report.md     — trend analysis report\n")

	var unscraped []model.Article
	for _, a := range articles {
		if !scrape.IsEditorialType(a.ArticleType) {
			continue
		}
		matched := false
		for _, e := range editorials {
			if e.Title == a.Title {
				matched = true
				break
			}
		}
		if !matched {
			unscraped = append(unscraped, a)
		}
	}
	if len(unscraped) > 0 {
		fmt.Printf("\n⚠  %d editorial(s) need manual download:\n", len(unscraped))
		for _, a := range unscraped {
			fmt.Printf("   → %s\n", a.Title)
			fmt.Printf("     DOI: %s\n", a.DOI)
			fmt.Printf("     URL: %s\n", a.URL)
		}
		fmt.Println("   Save them to a folder and re-run with: --read-local <folder>")
	}

	return nil
}

// rankedByRelevance returns the indexes of articles with a positive relevance
// score, highest first. Ties keep scrape order.
func rankedByRelevance(articles []model.Article) []int {
	var idxs []int
	for i := range articles {
		if articles[i].RelevanceScore > 0 {
			idxs = append(idxs, i)
		}
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return articles[idxs[a]].RelevanceScore > articles[idxs[b]].RelevanceScore
	})
	return idxs
}
