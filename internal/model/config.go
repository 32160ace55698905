package model

import "time"

// Config holds all runtime configuration. Values are layered: built-in
// defaults, then the config file, then EXORDIUM_* environment variables,
// then CLI flags.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Cache   CacheConfig   `yaml:"cache"`
	Scrape  ScrapeConfig  `yaml:"scrape"`
	Analyze AnalyzeConfig `yaml:"analyze"`
	Output  OutputConfig  `yaml:"output"`
}

// HTTPConfig controls the outbound HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig controls the fetched-page cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"` // empty means ~/.exordium/cache
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ScrapeConfig controls journal scraping.
type ScrapeConfig struct {
	Journal        string  `yaml:"journal"`
	Months         int     `yaml:"months"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	Burst          int     `yaml:"burst"`
	RespectRobots  bool    `yaml:"respect_robots"`
}

// AnalyzeConfig controls the corpus analysis run.
type AnalyzeConfig struct {
	Workers     int `yaml:"workers"` // 1 means strictly sequential
	TopVerbs    int `yaml:"top_verbs"`
	TopBigrams  int `yaml:"top_bigrams"`
	TopTrigrams int `yaml:"top_trigrams"`
	TopKeywords int `yaml:"top_keywords"`
}

// OutputConfig controls operator-facing output.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults. The HTTP defaults mirror a
// desktop browser because nature.com serves reduced markup to unknown agents.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout: 20 * time.Second,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodyBytes: 10_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 1 * time.Hour,
			DiskTTL:   24 * time.Hour,
		},
		Scrape: ScrapeConfig{
			Journal:        "nphoton",
			Months:         6,
			RequestsPerSec: 0.5, // one request every two seconds
			Burst:          1,
			RespectRobots:  true,
		},
		Analyze: AnalyzeConfig{
			Workers:     4,
			TopVerbs:    20,
			TopBigrams:  20,
			TopTrigrams: 15,
			TopKeywords: 15,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
