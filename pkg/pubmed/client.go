package pubmed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/scidigest/pkg/domain"
	"github.com/umputun/scidigest/pkg/upstream"
)

// IDList is the result of the search phase, record identifiers in relevance order
type IDList []string

// Join returns identifiers comma-joined, as expected by the fetch phase
func (l IDList) Join() string { return strings.Join(l, ",") }

// Client talks to NCBI E-utilities with the two-phase search-then-fetch protocol
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewClient makes E-utilities client. baseURL is the eutils root, i.e. https://eutils.ncbi.nlm.nih.gov/entrez/eutils/
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		client:    &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/") + "/",
		userAgent: userAgent,
	}
}

// Search resolves query to at most maxResults record identifiers
func (c *Client) Search(ctx context.Context, query string, maxResults int) (IDList, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(maxResults))
	params.Set("retmode", "xml")

	body, err := c.get(ctx, c.baseURL+"esearch.fcgi?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search: %w: %w", domain.ErrSourceUnavailable, err)
	}
	defer body.Close()

	var res struct {
		IDs []string `xml:"IdList>Id"`
	}
	if err := xml.NewDecoder(body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode search result: %w: %w", domain.ErrSourceUnavailable, err)
	}

	ids := make(IDList, 0, len(res.IDs))
	for _, id := range res.IDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// FetchRecords retrieves full records for ids and converts them to papers.
// Records which can't be converted are skipped, the rest of the batch is kept.
func (c *Client) FetchRecords(ctx context.Context, ids IDList) ([]domain.Paper, error) {
	if len(ids) == 0 {
		return []domain.Paper{}, nil
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", ids.Join())
	params.Set("retmode", "xml")

	body, err := c.get(ctx, c.baseURL+"efetch.fcgi?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w: %w", domain.ErrSourceUnavailable, err)
	}
	defer body.Close()

	return decodeRecords(body), nil
}

// decodeRecords streams PubmedArticle elements, so a bad record doesn't spoil its siblings
func decodeRecords(r io.Reader) []domain.Paper {
	papers := []domain.Paper{}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return papers
		}
		if err != nil {
			lgr.Printf("[WARN] pubmed: stopped reading records after %d: %v", len(papers), err)
			return papers
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "PubmedArticle" {
			continue
		}

		var rec record
		if err := dec.DecodeElement(&rec, &start); err != nil {
			lgr.Printf("[WARN] pubmed: stopped reading records after %d: %v", len(papers), err)
			return papers
		}
		paper, err := rec.toPaper()
		if err != nil {
			lgr.Printf("[DEBUG] pubmed: skip record %s: %v", rec.pmid(), err)
			continue
		}
		papers = append(papers, paper)
	}
}

func (c *Client) get(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := upstream.NewRequest(ctx, u, c.userAgent, upstream.AcceptXML)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
