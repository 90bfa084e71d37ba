package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/umputun/scidigest/pkg/domain"
)

// Generator creates RSS and OPML documents from digest data
type Generator struct {
	baseURL string
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// GenerateRSS creates an RSS 2.0 feed from ranked papers of the digest.
// Empty category means all categories in digest order.
func (g *Generator) GenerateRSS(d domain.Digest, category string) (string, error) {
	categories := d.PaperOrder
	title := "Science Digest - All Categories"
	selfLink := g.baseURL + "/rss"
	if category != "" {
		if _, ok := d.Papers[category]; !ok {
			return "", fmt.Errorf("unknown category %q", category)
		}
		categories = []string{category}
		title = "Science Digest - " + category
		selfLink = fmt.Sprintf("%s/rss/%s", g.baseURL, category)
	}

	// convert papers to RSS items
	var rssItems []*RSSItem
	for _, cat := range categories {
		for _, p := range d.Papers[cat] {
			rssItems = append(rssItems, g.convertToRSSItem(p, cat))
		}
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Papers ranked by keyword relevance, generated %s", d.GeneratedAt.Format(domain.DateLayout)),
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: d.GeneratedAt.Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	// add XML declaration
	return xml.Header + string(output), nil
}

// convertToRSSItem converts a ranked paper to an RSS item
func (g *Generator) convertToRSSItem(p domain.Paper, category string) *RSSItem {
	desc := fmt.Sprintf("Score: %d - %s • %s", p.RelevanceScore, p.Journal, p.Date)
	if authors := p.AuthorLine(); authors != "" {
		desc += "\nAuthors: " + authors
	}
	if p.Abstract != "" {
		desc += "\n\n" + p.Abstract
	}

	guid := p.URL
	if guid == "" {
		guid = fmt.Sprintf("%s-%s", p.Source, p.Title)
	}

	item := &RSSItem{
		Title:       fmt.Sprintf("[%d] %s", p.RelevanceScore, p.Title),
		Link:        p.URL,
		GUID:        guid,
		Description: desc,
		Author:      p.AuthorLine(),
		Categories:  []string{category},
	}
	if pub, err := time.Parse(domain.DateLayout, p.Date); err == nil {
		item.PubDate = pub.Format(time.RFC1123Z)
	}
	return item
}

// GenerateOPML creates an OPML file with configured feed subscriptions, one outline per bucket
func (g *Generator) GenerateOPML(buckets []domain.Bucket, created time.Time) (string, error) {
	type outline struct {
		XMLName  xml.Name  `xml:"outline"`
		Text     string    `xml:"text,attr"`
		Title    string    `xml:"title,attr,omitempty"`
		Type     string    `xml:"type,attr,omitempty"`
		XMLUrl   string    `xml:"xmlUrl,attr,omitempty"`
		Outlines []outline `xml:"outline"`
	}

	type body struct {
		XMLName  xml.Name  `xml:"body"`
		Outlines []outline `xml:"outline"`
	}

	type head struct {
		XMLName     xml.Name `xml:"head"`
		Title       string   `xml:"title"`
		DateCreated string   `xml:"dateCreated"`
	}

	type opml struct {
		XMLName xml.Name `xml:"opml"`
		Version string   `xml:"version,attr"`
		Head    head     `xml:"head"`
		Body    body     `xml:"body"`
	}

	outlines := make([]outline, 0, len(buckets))
	for _, b := range buckets {
		group := outline{Text: b.Name, Title: b.Name}
		for _, u := range b.Feeds {
			group.Outlines = append(group.Outlines, outline{Text: u, Type: "rss", XMLUrl: u})
		}
		outlines = append(outlines, group)
	}

	doc := opml{
		Version: "2.0",
		Head: head{
			Title:       "Science Digest Feed Subscriptions",
			DateCreated: created.Format(time.RFC1123Z),
		},
		Body: body{
			Outlines: outlines,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}

	return xml.Header + string(output), nil
}
