package domain

import "strings"

// sentinel values used when a source omits a field
const (
	NoTitle       = "No title available"
	UnknownSource = "Unknown Source"
	NoAbstract    = "No abstract available"
	NoJournal     = "Journal not specified"
)

// DateLayout is the calendar date format shared by all items, lexicographic order is chronological
const DateLayout = "2006-01-02"

// SentinelDate is used when a source date can't be resolved at all
const SentinelDate = "2023-01-01"

// Item is the normalized shape of a news article or a research paper
type Item interface {
	GetTitle() string
	GetDate() string
	GetSource() string
	GetSummary() string
	GetURL() string
}

// NewsItem represents a single article from a syndication feed
type NewsItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Date    string `json:"date"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
}

// GetTitle returns item title
func (n NewsItem) GetTitle() string { return n.Title }

// GetDate returns publication date as YYYY-MM-DD
func (n NewsItem) GetDate() string { return n.Date }

// GetSource returns feed title
func (n NewsItem) GetSource() string { return n.Source }

// GetSummary returns cleaned summary
func (n NewsItem) GetSummary() string { return n.Summary }

// GetURL returns article link
func (n NewsItem) GetURL() string { return n.Link }

// Paper represents a research paper from the literature or preprint source.
// RelevanceScore is set by the ranker for the category the paper is ranked in.
type Paper struct {
	Title          string   `json:"title"`
	Authors        []string `json:"authors"`
	EtAl           bool     `json:"et_al,omitempty"`
	Journal        string   `json:"journal"`
	Date           string   `json:"date"`
	Abstract       string   `json:"abstract"`
	Source         string   `json:"source"`
	URL            string   `json:"url,omitempty"`
	RelevanceScore int      `json:"relevance_score"`

	fullAbstract string // untruncated plain abstract, Abstract may be cut for display
}

// WithFullAbstract returns a copy of the paper carrying the untruncated abstract for scoring
func (p Paper) WithFullAbstract(text string) Paper {
	p.fullAbstract = text
	return p
}

// ScoringText returns the abstract relevance is computed on, falls back to Abstract
func (p Paper) ScoringText() string {
	if p.fullAbstract != "" {
		return p.fullAbstract
	}
	return p.Abstract
}

// GetTitle returns paper title
func (p Paper) GetTitle() string { return p.Title }

// GetDate returns publication date as YYYY-MM-DD
func (p Paper) GetDate() string { return p.Date }

// GetSource returns origin name, i.e. PubMed or bioRxiv
func (p Paper) GetSource() string { return p.Source }

// GetSummary returns the abstract
func (p Paper) GetSummary() string { return p.Abstract }

// GetURL returns DOI or record link, empty if neither is known
func (p Paper) GetURL() string { return p.URL }

// AuthorLine renders authors as "A, B, C et al."
func (p Paper) AuthorLine() string {
	line := strings.Join(p.Authors, ", ")
	if p.EtAl {
		line += " et al."
	}
	return line
}

// maxAuthors is the number of names kept before "et al."
const maxAuthors = 3

// TrimAuthors keeps the first three names and reports whether more existed
func TrimAuthors(names []string) (authors []string, etAl bool) {
	if len(names) > maxAuthors {
		return names[:maxAuthors], true
	}
	return names, false
}
