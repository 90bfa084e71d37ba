// Package upstream builds GET requests to source endpoints with headers shared by all source clients
package upstream

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
)

// Accept is the content negotiation header value for a kind of source payload
type Accept string

// accepted payloads per source kind
const (
	AcceptFeed Accept = "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5"
	AcceptXML  Accept = "application/xml,text/xml;q=0.9,*/*;q=0.5"
	AcceptJSON Accept = "application/json,*/*;q=0.5"
)

// acceptLanguages contains common browser Accept-Language values
var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,es;q=0.8",
	"en-US,en;q=0.9,fr;q=0.8",
	"en-US,en;q=0.9,de;q=0.8",
}

// NewRequest makes GET request with user agent and browser-like headers,
// several publisher feeds reject requests without them
func NewRequest(ctx context.Context, url, userAgent string, accept Accept) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", string(accept))
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // non-cryptographic randomness is fine for header variation

	// feeds are often behind caches serving stale copies
	if accept == AcceptFeed {
		req.Header.Set("Cache-Control", "no-cache")
	}
	return req, nil
}
