package pubmed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/scidigest/pkg/content"
	"github.com/umputun/scidigest/pkg/domain"
)

// SourceName is the origin name set on every paper from this source
const SourceName = "PubMed"

// record is a single PubmedArticle element of efetch response
type record struct {
	MedlineCitation struct {
		PMID    string   `xml:"PMID"`
		Article *article `xml:"Article"`
	} `xml:"MedlineCitation"`
	ArticleIDs []articleID `xml:"PubmedData>ArticleIdList>ArticleId"`
}

type article struct {
	Title   *markup `xml:"ArticleTitle"`
	Journal struct {
		Title   string   `xml:"Title"`
		PubDate *pubDate `xml:"JournalIssue>PubDate"`
	} `xml:"Journal"`
	Abstract []abstractText `xml:"Abstract>AbstractText"`
	Authors  []author       `xml:"AuthorList>Author"`
}

// markup keeps inline tags like <i> or <sup> so they can be flattened to plain text
type markup struct {
	Inner string `xml:",innerxml"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Inner string `xml:",innerxml"`
}

type author struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
}

type articleID struct {
	IDType string `xml:"IdType,attr"`
	Value  string `xml:",chardata"`
}

// pubDate is possibly partial publication date, pointers tell absent elements from empty ones
type pubDate struct {
	Year        *string `xml:"Year"`
	Month       *string `xml:"Month"`
	Day         *string `xml:"Day"`
	MedlineDate string  `xml:"MedlineDate"`
}

var medlineDateRe = regexp.MustCompile(`^(\d{4})(?:\s+([A-Za-z]+|\d{1,2}))?`)

func (r record) pmid() string {
	if id := r.articleID("pubmed"); id != "" {
		return id
	}
	return strings.TrimSpace(r.MedlineCitation.PMID)
}

func (r record) articleID(idType string) string {
	for _, id := range r.ArticleIDs {
		if id.IDType == idType {
			return strings.TrimSpace(id.Value)
		}
	}
	return ""
}

// toPaper converts record to paper, records without Article element are malformed
func (r record) toPaper() (domain.Paper, error) {
	art := r.MedlineCitation.Article
	if art == nil {
		return domain.Paper{}, fmt.Errorf("%w: no article element", domain.ErrMalformedRecord)
	}

	title := ""
	if art.Title != nil {
		title = content.Plain(art.Title.Inner)
	}
	if title == "" {
		title = domain.NoTitle
	}

	journal := strings.TrimSpace(art.Journal.Title)
	if journal == "" {
		journal = domain.NoJournal
	}

	names := make([]string, 0, len(art.Authors))
	for _, a := range art.Authors {
		last, first := strings.TrimSpace(a.LastName), strings.TrimSpace(a.ForeName)
		if last == "" || first == "" {
			continue // collective names and initials-only entries
		}
		names = append(names, last+" "+first)
	}
	authors, etAl := domain.TrimAuthors(names)

	abstract := abstractOf(art.Abstract)
	paper := domain.Paper{
		Title:    title,
		Authors:  authors,
		EtAl:     etAl,
		Journal:  journal,
		Date:     parsePubDate(art.Journal.PubDate),
		Abstract: content.Truncate(abstract, content.MaxSummaryLen),
		Source:   SourceName,
		URL:      r.url(),
	}
	return paper.WithFullAbstract(abstract), nil
}

// url prefers DOI link, falls back to the record page
func (r record) url() string {
	if doi := r.articleID("doi"); doi != "" {
		return "https://doi.org/" + doi
	}
	if pmid := r.pmid(); pmid != "" {
		return "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/"
	}
	return ""
}

// abstractOf joins all segments as "Label: text", without length cap
func abstractOf(segments []abstractText) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		text := content.Plain(s.Inner)
		if label := strings.TrimSpace(s.Label); label != "" {
			text = strings.TrimSpace(label + ": " + text)
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return domain.NoAbstract
	}
	return strings.Join(parts, " ")
}

// parsePubDate builds YYYY-MM-DD from partial date. Missing or bad components
// fall back to year 2023, month 01 and day 01.
func parsePubDate(d *pubDate) string {
	if d == nil {
		return domain.SentinelDate
	}

	year, month, day := "", "", ""
	if d.Year != nil {
		year = strings.TrimSpace(*d.Year)
	}
	if d.Month != nil {
		month = strings.TrimSpace(*d.Month)
	}
	if d.Day != nil {
		day = strings.TrimSpace(*d.Day)
	}

	// MedlineDate like "2024 Mar-Apr" is used when structured parts are absent
	if year == "" && d.MedlineDate != "" {
		if m := medlineDateRe.FindStringSubmatch(strings.TrimSpace(d.MedlineDate)); m != nil {
			year = m[1]
			if month == "" {
				month = m[2]
			}
		}
	}

	if !isYear(year) {
		year = "2023"
	}
	return year + "-" + parseMonth(month) + "-" + padNumber(day, 31)
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	_, err := strconv.Atoi(s)
	return err == nil
}

// parseMonth accepts numeric month or english name, abbreviated or not
func parseMonth(s string) string {
	if s == "" {
		return "01"
	}
	if _, err := strconv.Atoi(s); err == nil {
		return padNumber(s, 12)
	}
	if len(s) < 3 {
		return "01"
	}
	abbr := strings.ToUpper(s[:1]) + strings.ToLower(s[1:3])
	t, err := time.Parse("Jan", abbr)
	if err != nil {
		return "01"
	}
	return fmt.Sprintf("%02d", int(t.Month()))
}

// padNumber zero-pads s when it is within 1..upper, returns "01" otherwise
func padNumber(s string, upper int) string {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > upper {
		return "01"
	}
	return fmt.Sprintf("%02d", n)
}
