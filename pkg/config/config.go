package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/scidigest/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Fetch      FetchConfig       `yaml:"fetch" json:"fetch" jsonschema:"description=Upstream fetch settings"`
	News       NewsConfig        `yaml:"news" json:"news" jsonschema:"description=News feeds configuration"`
	Papers     PapersConfig      `yaml:"papers" json:"papers" jsonschema:"description=Paper sources configuration"`
	Categories []domain.Category `yaml:"categories" json:"categories" jsonschema:"description=Scoring categories with keyword weights"`
	Journals   map[string]int    `yaml:"journals" json:"journals" jsonschema:"description=Journal name to venue bonus"`
}

// FetchConfig holds settings shared by all upstream requests
type FetchConfig struct {
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Timeout of a single upstream request"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for upstream requests"`
	MaxWorkers int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum concurrent fetches per category"`
	Attempts   int           `yaml:"attempts" json:"attempts" jsonschema:"default=1,minimum=1,description=Fetch attempts per source, 1 disables retries"`
}

// NewsConfig holds feed buckets and news tunables
type NewsConfig struct {
	LookbackDays      int             `yaml:"lookback_days" json:"lookback_days" jsonschema:"default=2,minimum=0,description=Lookback window for news in days"`
	MaxItemsPerSource int             `yaml:"max_items_per_source" json:"max_items_per_source" jsonschema:"default=5,minimum=1,description=Maximum items kept per feed"`
	MaxEntriesScanned int             `yaml:"max_entries_scanned" json:"max_entries_scanned" jsonschema:"default=15,minimum=1,description=Number of leading feed entries examined"`
	Buckets           []domain.Bucket `yaml:"buckets" json:"buckets" jsonschema:"description=Named groups of feed URLs"`
}

// PapersConfig holds paper sources and tunables
type PapersConfig struct {
	LookbackDays int           `yaml:"lookback_days" json:"lookback_days" jsonschema:"default=7,minimum=0,description=Lookback window for papers in days"`
	MaxResults   int           `yaml:"max_results" json:"max_results" jsonschema:"default=8,minimum=1,description=Maximum literature records per category query"`
	PubMed       PubMedConfig  `yaml:"pubmed" json:"pubmed" jsonschema:"description=Literature search source"`
	BioRxiv      BioRxivConfig `yaml:"biorxiv" json:"biorxiv" jsonschema:"description=Preprint repository source"`
}

// PubMedConfig configures the E-utilities literature source
type PubMedConfig struct {
	Disabled bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip literature search"`
	BaseURL  string `yaml:"base_url" json:"base_url" jsonschema:"default=https://eutils.ncbi.nlm.nih.gov/entrez/eutils/,description=E-utilities base URL"`
}

// BioRxivConfig configures the preprint source
type BioRxivConfig struct {
	Disabled    bool     `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip preprint repository"`
	BaseURL     string   `yaml:"base_url" json:"base_url" jsonschema:"default=https://api.biorxiv.org/details/biorxiv,description=Preprint details API base URL"`
	Collections []string `yaml:"collections" json:"collections" jsonschema:"description=Subject collections to scan"`
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

var defaultCollections = []string{"microbiology", "synthetic-biology", "systems-biology", "molecular-biology"}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// fetch defaults
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = defaultUserAgent
	}
	if c.Fetch.MaxWorkers == 0 {
		c.Fetch.MaxWorkers = 5
	}
	if c.Fetch.Attempts == 0 {
		c.Fetch.Attempts = 1
	}

	// news defaults, zero lookback is valid (today only) but can't be told apart from unset
	if c.News.LookbackDays == 0 {
		c.News.LookbackDays = 2
	}
	if c.News.MaxItemsPerSource == 0 {
		c.News.MaxItemsPerSource = 5
	}
	if c.News.MaxEntriesScanned == 0 {
		c.News.MaxEntriesScanned = 15
	}

	// paper defaults
	if c.Papers.LookbackDays == 0 {
		c.Papers.LookbackDays = 7
	}
	if c.Papers.MaxResults == 0 {
		c.Papers.MaxResults = 8
	}
	if c.Papers.PubMed.BaseURL == "" {
		c.Papers.PubMed.BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"
	}
	if c.Papers.BioRxiv.BaseURL == "" {
		c.Papers.BioRxiv.BaseURL = "https://api.biorxiv.org/details/biorxiv"
	}
	if len(c.Papers.BioRxiv.Collections) == 0 {
		c.Papers.BioRxiv.Collections = append([]string(nil), defaultCollections...)
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if len(cfg.Categories) == 0 && len(cfg.News.Buckets) == 0 {
		return fmt.Errorf("at least one category or news bucket is required")
	}

	seen := map[string]bool{}
	for i, cat := range cfg.Categories {
		if cat.Name == "" {
			return fmt.Errorf("categories[%d].name is required", i)
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %q has no keywords", cat.Name)
		}
		for kw, w := range cat.Keywords {
			if kw == "" {
				return fmt.Errorf("category %q has an empty keyword", cat.Name)
			}
			if w < 1 || w > 10 {
				return fmt.Errorf("category %q keyword %q weight must be between 1 and 10", cat.Name, kw)
			}
		}
	}

	for i, b := range cfg.News.Buckets {
		if b.Name == "" {
			return fmt.Errorf("news.buckets[%d].name is required", i)
		}
	}

	for j, w := range cfg.Journals {
		if w < 0 {
			return fmt.Errorf("journal %q weight must be non-negative", j)
		}
	}

	if cfg.News.LookbackDays < 0 || cfg.Papers.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must be non-negative")
	}
	if cfg.Fetch.MaxWorkers < 1 {
		return fmt.Errorf("fetch.max_workers must be at least 1")
	}
	if cfg.Fetch.Attempts < 1 {
		return fmt.Errorf("fetch.attempts must be at least 1")
	}
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}

	return nil
}

// JournalWeights returns venue table as a domain type
func (c *Config) JournalWeights() domain.JournalWeights {
	return domain.JournalWeights(c.Journals)
}

// FeedURLs returns all configured feed URLs in bucket order
func (c *Config) FeedURLs() []string {
	var res []string
	for _, b := range c.News.Buckets {
		res = append(res, b.Feeds...)
	}
	return res
}
