// Package pipeline runs a single digest build. For every news bucket and paper category it
// fans out one task per source, collects results in source order and hands them to the ranker.
// Source failures never abort the run, a failed source contributes nothing.
//
// One reference timestamp is taken at the start of Run and threaded through
// adapters (recency filters, query date range) and the scorer (age bonus).
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/google/uuid"

	"github.com/umputun/scidigest/pkg/domain"
	"github.com/umputun/scidigest/pkg/ranker"
	"github.com/umputun/scidigest/pkg/scoring"
)

//go:generate moq -out mocks/news_source.go -pkg mocks -skip-ensure -fmt goimports . NewsSource
//go:generate moq -out mocks/literature_source.go -pkg mocks -skip-ensure -fmt goimports . LiteratureSource
//go:generate moq -out mocks/preprint_source.go -pkg mocks -skip-ensure -fmt goimports . PreprintSource

// NewsSource fetches recent items of a single feed
type NewsSource interface {
	Fetch(ctx context.Context, feedURL string, ref time.Time) ([]domain.NewsItem, error)
}

// LiteratureSource runs a category query against the literature database
type LiteratureSource interface {
	Fetch(ctx context.Context, cat domain.Category, ref time.Time) ([]domain.Paper, error)
}

// PreprintSource reads subject collections of the preprint repository
type PreprintSource interface {
	Collections() []string
	FetchCollection(ctx context.Context, collection string, cat domain.Category, ref time.Time) ([]domain.Paper, error)
}

// Config holds pipeline dependencies and settings. Nil sources are skipped.
type Config struct {
	News       NewsSource
	Literature LiteratureSource
	Preprints  PreprintSource

	Buckets    []domain.Bucket
	Categories []domain.Category
	Journals   domain.JournalWeights

	MaxWorkers int              // concurrent fetches per bucket or category
	Attempts   int              // fetch attempts per source, 1 means no retry
	Now        func() time.Time // reference clock, time.Now if nil
}

// Pipeline builds digests
type Pipeline struct {
	cfg       Config
	retryFunc func(ctx context.Context, operation func() error) error
}

// New makes pipeline with defaults applied for zero settings
func New(cfg Config) *Pipeline {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 5
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	p := &Pipeline{cfg: cfg}
	p.retryFunc = func(ctx context.Context, operation func() error) error {
		if cfg.Attempts == 1 {
			return operation()
		}
		return repeater.NewBackoff(cfg.Attempts, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second)).Do(ctx, operation)
	}
	return p
}

// Run fetches all sources and returns ranked digest. The only error is context cancellation.
func (p *Pipeline) Run(ctx context.Context) (domain.Digest, error) {
	ref := p.cfg.Now()
	d := domain.Digest{
		RunID:       uuid.NewString(),
		GeneratedAt: ref,
		NewsOrder:   make([]string, 0, len(p.cfg.Buckets)),
		News:        make(map[string][]domain.NewsItem, len(p.cfg.Buckets)),
		PaperOrder:  make([]string, 0, len(p.cfg.Categories)),
		Papers:      make(map[string][]domain.Paper, len(p.cfg.Categories)),
	}
	lgr.Printf("[INFO] digest run %s started, reference time %s", d.RunID, ref.Format(time.RFC3339))

	for _, b := range p.cfg.Buckets {
		items := p.bucketNews(ctx, b, ref)
		d.NewsOrder = append(d.NewsOrder, b.Name)
		d.News[b.Name] = items
		lgr.Printf("[INFO] news bucket %q: %d items from %d feeds", b.Name, len(items), len(b.Feeds))
		if err := ctx.Err(); err != nil {
			return d, fmt.Errorf("digest run interrupted: %w", err)
		}
	}

	scorer := scoring.New(p.cfg.Journals, ref)
	for _, cat := range p.cfg.Categories {
		papers := p.categoryPapers(ctx, cat, ref, scorer)
		d.PaperOrder = append(d.PaperOrder, cat.Name)
		d.Papers[cat.Name] = papers
		lgr.Printf("[INFO] category %q: %d papers", cat.Name, len(papers))
		if err := ctx.Err(); err != nil {
			return d, fmt.Errorf("digest run interrupted: %w", err)
		}
	}

	return d, nil
}

// bucketNews fetches every feed of the bucket and orders merged items by date
func (p *Pipeline) bucketNews(ctx context.Context, b domain.Bucket, ref time.Time) []domain.NewsItem {
	if p.cfg.News == nil {
		return []domain.NewsItem{}
	}

	tasks := make([]task[domain.NewsItem], 0, len(b.Feeds))
	for _, u := range b.Feeds {
		tasks = append(tasks, task[domain.NewsItem]{
			name:  "feed " + u,
			fetch: func(ctx context.Context) ([]domain.NewsItem, error) { return p.cfg.News.Fetch(ctx, u, ref) },
		})
	}

	var merged []domain.NewsItem
	for _, items := range collectTasks(ctx, tasks, p.cfg.MaxWorkers, p.retryFunc) {
		merged = append(merged, items...)
	}
	return ranker.SortNews(merged)
}

// categoryPapers runs literature query and one task per preprint collection,
// then ranks merged papers against the category
func (p *Pipeline) categoryPapers(ctx context.Context, cat domain.Category, ref time.Time, scorer ranker.Scorer) []domain.Paper {
	var tasks []task[domain.Paper]
	if p.cfg.Literature != nil {
		tasks = append(tasks, task[domain.Paper]{
			name:  "literature search " + cat.Name,
			fetch: func(ctx context.Context) ([]domain.Paper, error) { return p.cfg.Literature.Fetch(ctx, cat, ref) },
		})
	}
	if p.cfg.Preprints != nil {
		for _, coll := range p.cfg.Preprints.Collections() {
			tasks = append(tasks, task[domain.Paper]{
				name: "preprints " + coll,
				fetch: func(ctx context.Context) ([]domain.Paper, error) {
					return p.cfg.Preprints.FetchCollection(ctx, coll, cat, ref)
				},
			})
		}
	}

	merged := ranker.MergePapers(collectTasks(ctx, tasks, p.cfg.MaxWorkers, p.retryFunc)...)
	return ranker.RankPapers(merged, cat, scorer)
}
