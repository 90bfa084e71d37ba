// Package pubmed implements the literature source on top of NCBI E-utilities.
// Search and record fetch are two separate calls joined by a typed IDList,
// recency is enforced by the date clause of the query rather than by post-filtering.
package pubmed

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/scidigest/pkg/domain"
)

// Adapter runs category queries against PubMed
type Adapter struct {
	client       *Client
	lookbackDays int
	maxResults   int
}

// NewAdapter makes literature adapter with lookback window in days and search result cap
func NewAdapter(client *Client, lookbackDays, maxResults int) *Adapter {
	return &Adapter{client: client, lookbackDays: lookbackDays, maxResults: maxResults}
}

// Fetch returns papers matching category keywords published within lookback window before ref
func (a *Adapter) Fetch(ctx context.Context, cat domain.Category, ref time.Time) ([]domain.Paper, error) {
	query := BuildQuery(cat, ref.AddDate(0, 0, -a.lookbackDays), ref)

	ids, err := a.client.Search(ctx, query, a.maxResults)
	if err != nil {
		return nil, fmt.Errorf("pubmed %s: %w", cat.Name, err)
	}

	papers, err := a.client.FetchRecords(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("pubmed %s: %w", cat.Name, err)
	}
	return papers, nil
}
