package feed

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/umputun/scidigest/pkg/content"
	"github.com/umputun/scidigest/pkg/domain"
	"github.com/umputun/scidigest/pkg/recency"
)

// FeedParser retrieves and parses a single feed
type FeedParser interface {
	Parse(ctx context.Context, url string) (*ParsedFeed, error)
}

// Options holds news tunables used by the adapter
type Options struct {
	LookbackDays int // entries older than this are dropped
	MaxItems     int // maximum items returned per feed
	MaxEntries   int // number of leading feed entries examined
}

// Adapter converts syndication feeds into news items
type Adapter struct {
	parser FeedParser
	opts   Options
}

// NewAdapter creates a feed adapter
func NewAdapter(parser FeedParser, opts Options) *Adapter {
	return &Adapter{parser: parser, opts: opts}
}

// Fetch returns the most recent items of the feed, newest first.
// Entries without any timestamp are dated one day before ref.
func (a *Adapter) Fetch(ctx context.Context, feedURL string, ref time.Time) ([]domain.NewsItem, error) {
	parsed, err := a.parser.Parse(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", feedURL, err)
	}

	source := parsed.Title
	if source == "" {
		source = domain.UnknownSource
	}

	entries := parsed.Items
	if a.opts.MaxEntries > 0 && len(entries) > a.opts.MaxEntries {
		entries = entries[:a.opts.MaxEntries]
	}

	items := make([]domain.NewsItem, 0, len(entries))
	for _, entry := range entries {
		published := ref.AddDate(0, 0, -1)
		if entry.Published != nil {
			published = *entry.Published
		}
		if !recency.IsRecent(published, ref, a.opts.LookbackDays) {
			continue
		}

		title := content.Plain(entry.Title)
		if title == "" {
			title = domain.NoTitle
		}

		items = append(items, domain.NewsItem{
			Title:   title,
			Link:    entry.Link,
			Date:    published.In(ref.Location()).Format(domain.DateLayout),
			Summary: content.Summary(entry.Summary),
			Source:  source,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date > items[j].Date })
	if a.opts.MaxItems > 0 && len(items) > a.opts.MaxItems {
		items = items[:a.opts.MaxItems]
	}
	return items, nil
}
