package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/scidigest/pkg/domain"
	"github.com/umputun/scidigest/pkg/upstream"
)

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Parse fetches and parses a feed from the given URL.
// Transport and parsing failures are wrapped with domain.ErrSourceUnavailable.
func (p *Parser) Parse(ctx context.Context, url string) (*ParsedFeed, error) {
	// fetch feed content
	body, err := p.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w: %w", domain.ErrSourceUnavailable, err)
	}
	defer body.Close()

	// parse feed
	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w: %w", domain.ErrSourceUnavailable, err)
	}

	result := &ParsedFeed{
		Title: feed.Title,
		Items: make([]ParsedItem, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		parsedItem := ParsedItem{
			Title:   item.Title,
			Link:    item.Link,
			Summary: item.Description,
		}
		// atom entries may carry content only
		if parsedItem.Summary == "" {
			parsedItem.Summary = item.Content
		}

		// set published time
		if item.PublishedParsed != nil {
			parsedItem.Published = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			parsedItem.Published = item.UpdatedParsed
		}

		result.Items = append(result.Items, parsedItem)
	}

	return result, nil
}

// fetch retrieves content from a URL
func (p *Parser) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := upstream.NewRequest(ctx, url, p.userAgent, upstream.AcceptFeed)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
