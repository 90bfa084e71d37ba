// Package biorxiv implements the preprint source on top of bioRxiv details API.
// Each subject collection is a separate fetch, items are kept when recent and matching category keywords.
// Fanning out over collections and skipping failed ones is left to the caller.
package biorxiv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/scidigest/pkg/content"
	"github.com/umputun/scidigest/pkg/domain"
	"github.com/umputun/scidigest/pkg/recency"
	"github.com/umputun/scidigest/pkg/upstream"
)

// SourceName is the origin and journal name set on every preprint
const SourceName = "bioRxiv"

// preprint is a single entry of the details API collection
type preprint struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Abstract string `json:"abstract"`
	Date     string `json:"date"`
	DOI      string `json:"doi"`
}

type detailsResponse struct {
	Collection []preprint `json:"collection"`
}

// Client reads preprint collections and filters them for a category
type Client struct {
	client       *http.Client
	baseURL      string
	userAgent    string
	collections  []string
	lookbackDays int
}

// Options for the preprint client
type Options struct {
	BaseURL      string   // details endpoint, i.e. https://api.biorxiv.org/details/biorxiv
	Collections  []string // subject collections to scan
	LookbackDays int
	Timeout      time.Duration
	UserAgent    string
}

// NewClient makes preprint client
func NewClient(opts Options) *Client {
	return &Client{
		client:       &http.Client{Timeout: opts.Timeout},
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		userAgent:    opts.UserAgent,
		collections:  opts.Collections,
		lookbackDays: opts.LookbackDays,
	}
}

// Collections returns configured subject collections
func (c *Client) Collections() []string { return c.collections }

// FetchCollection returns preprints of the collection published within lookback window before ref
// and mentioning at least one category keyword in title or abstract
func (c *Client) FetchCollection(ctx context.Context, collection string, cat domain.Category, ref time.Time) ([]domain.Paper, error) {
	u := fmt.Sprintf("%s/%s/0", c.baseURL, url.PathEscape(collection))
	req, err := upstream.NewRequest(ctx, u, c.userAgent, upstream.AcceptJSON)
	if err != nil {
		return nil, fmt.Errorf("biorxiv %s: %w", collection, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("biorxiv %s: %w: %w", collection, domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("biorxiv %s: %w: unexpected status code: %d", collection, domain.ErrSourceUnavailable, resp.StatusCode)
	}

	var details detailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("biorxiv %s: decode response: %w: %w", collection, domain.ErrSourceUnavailable, err)
	}

	keywords := make([]string, 0, len(cat.Keywords))
	for _, kw := range cat.Phrases() {
		keywords = append(keywords, strings.ToLower(kw))
	}

	papers := []domain.Paper{}
	for _, p := range details.Collection {
		published, err := recency.ParseDate(strings.TrimSpace(p.Date), ref)
		if err != nil {
			lgr.Printf("[DEBUG] biorxiv %s: skip %q: %v", collection, p.DOI, err)
			continue
		}
		if !recency.IsRecent(published, ref, c.lookbackDays) {
			continue
		}
		title, abstract := content.Plain(p.Title), content.Plain(p.Abstract)
		if !matchesAny(title+" "+abstract, keywords) {
			continue
		}
		papers = append(papers, p.toPaper(title, abstract, published))
	}
	return papers, nil
}

// matchesAny checks text for any of lower-cased keywords, case-insensitively
func matchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// toPaper makes paper from preprint, title and abstract are already flattened to plain text
func (p preprint) toPaper(title, abstract string, published time.Time) domain.Paper {
	if title == "" {
		title = domain.NoTitle
	}

	if abstract == "" {
		abstract = domain.NoAbstract
	}

	var names []string
	for _, n := range strings.Split(p.Authors, ";") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	authors, etAl := domain.TrimAuthors(names)

	paper := domain.Paper{
		Title:    title,
		Authors:  authors,
		EtAl:     etAl,
		Journal:  SourceName,
		Date:     published.Format(domain.DateLayout),
		Abstract: content.Truncate(abstract, content.MaxSummaryLen),
		Source:   SourceName,
	}
	if doi := strings.TrimSpace(p.DOI); doi != "" {
		paper.URL = "https://doi.org/" + doi
	}
	return paper.WithFullAbstract(abstract)
}
