package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ndrozd/exordium/internal/model"
	"github.com/ndrozd/exordium/internal/worker"
)

// semanticScholarAPI is the paper endpoint of the Semantic Scholar graph API.
// The free tier needs no key and allows roughly 100 requests per 5 minutes.
const semanticScholarAPI = "https://api.semanticscholar.org/graph/v1/paper"

// RateLimitPause is how long callers should back off after ErrRateLimited.
const RateLimitPause = 30 * time.Second

// ErrRateLimited reports a 429 from the citation API. Callers should pause
// for RateLimitPause before the next request.
var ErrRateLimited = errors.New("citation API rate limit exceeded")

// CitationContext summarizes how one article sits in the literature: how
// often it is cited and which works it leans on.
type CitationContext struct {
	CitationCount int
	TopReferences []string
}

// CitedPaper is one row of a citation network listing.
type CitedPaper struct {
	Title string
	Year  int
	Venue string
}

// SeedNetwork maps the citation landscape around one benchmark paper: who
// builds on it and what it builds on.
type SeedNetwork struct {
	DOI           string
	Title         string
	Year          int
	Venue         string
	CitationCount int
	TopCiting     []CitedPaper
	KeyReferences []CitedPaper
}

// CitationClient queries the Semantic Scholar graph API. Requests are paced
// through a shared per-domain limiter so batch lookups stay inside the free
// tier.
type CitationClient struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *worker.Limiter
}

// NewCitationClient creates a client from the runtime configuration. The
// API host is pinned to one request per second regardless of the configured
// scrape rate; the citation quota is stricter than nature.com politeness.
func NewCitationClient(cfg *model.Config) *CitationClient {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	limiter := worker.NewLimiter(cfg.Scrape.RequestsPerSec, cfg.Scrape.Burst)
	limiter.SetDomainRate("api.semanticscholar.org", 1, 1)
	return &CitationClient{
		httpClient: &http.Client{Timeout: cfg.HTTP.Timeout},
		userAgent:  cfg.HTTP.UserAgent,
		baseURL:    semanticScholarAPI,
		limiter:    limiter,
	}
}

// Lookup fetches the citation context for one DOI: the citation count and up
// to five titles from the head of the reference list.
func (c *CitationClient) Lookup(ctx context.Context, doi string) (*CitationContext, error) {
	if doi == "" {
		return nil, errors.New("empty DOI")
	}

	url := fmt.Sprintf("%s/DOI:%s?fields=title,citationCount,references.title", c.baseURL, doi)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	out := &CitationContext{CitationCount: int(root.Get("citationCount").Int())}

	refs := root.Get("references").Array()
	if len(refs) > 5 {
		refs = refs[:5]
	}
	for _, ref := range refs {
		if title := ref.Get("title").String(); title != "" {
			out.TopReferences = append(out.TopReferences, title)
		}
	}
	return out, nil
}

// Network fetches the full citation network around a seed DOI: the paper
// itself, the ten most-cited papers citing it, and its first ten references.
func (c *CitationClient) Network(ctx context.Context, doi string) (*SeedNetwork, error) {
	if doi == "" {
		return nil, errors.New("empty DOI")
	}

	url := fmt.Sprintf("%s/DOI:%s?fields=title,citationCount,year,venue,"+
		"citations.title,citations.year,citations.venue,citations.citationCount,"+
		"references.title,references.year,references.venue", c.baseURL, doi)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	out := &SeedNetwork{
		DOI:           doi,
		Title:         root.Get("title").String(),
		Year:          int(root.Get("year").Int()),
		Venue:         root.Get("venue").String(),
		CitationCount: int(root.Get("citationCount").Int()),
	}

	// Citing papers ranked by their own citation count, most impactful
	// first. Ties keep API order.
	type rankedPaper struct {
		paper CitedPaper
		count int64
	}
	var citing []rankedPaper
	for _, cit := range root.Get("citations").Array() {
		title := cit.Get("title").String()
		if title == "" {
			continue
		}
		citing = append(citing, rankedPaper{
			paper: CitedPaper{
				Title: title,
				Year:  int(cit.Get("year").Int()),
				Venue: cit.Get("venue").String(),
			},
			count: cit.Get("citationCount").Int(),
		})
	}
	sort.SliceStable(citing, func(i, j int) bool { return citing[i].count > citing[j].count })
	if len(citing) > 10 {
		citing = citing[:10]
	}
	for _, rc := range citing {
		out.TopCiting = append(out.TopCiting, rc.paper)
	}

	refs := root.Get("references").Array()
	if len(refs) > 10 {
		refs = refs[:10]
	}
	for _, ref := range refs {
		title := ref.Get("title").String()
		if title == "" {
			continue
		}
		out.KeyReferences = append(out.KeyReferences, CitedPaper{
			Title: title,
			Year:  int(ref.Get("year").Int()),
			Venue: ref.Get("venue").String(),
		})
	}
	return out, nil
}

func (c *CitationClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("citation API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("citation API status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4_000_000))
	if err != nil {
		return nil, fmt.Errorf("read citation response: %w", err)
	}
	return body, nil
}
