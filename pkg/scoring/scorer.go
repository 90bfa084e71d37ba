// Package scoring implements the additive keyword relevance model for papers.
//
// Score of a paper for a category is the sum of:
//   - weight of every category keyword found (case-insensitive substring) in "title abstract",
//     using the full abstract even when the displayed one is truncated,
//     plus a flat title bonus when the keyword is also in the title
//   - venue bonus of the paper's journal
//   - age bonus, based on the paper's date relative to the run reference time
package scoring

import (
	"strings"
	"time"

	"github.com/umputun/scidigest/pkg/domain"
	"github.com/umputun/scidigest/pkg/recency"
)

const (
	titleBonus      = 3
	freshBonus      = 5 // age <= 1 day
	freshDays       = 1
	recentBonus     = 3 // age <= 3 days
	recentBonusDays = 3
)

// Scorer computes relevance scores. It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	journals domain.JournalWeights
	ref      time.Time
}

// New makes a scorer for the given venue table and run reference time
func New(journals domain.JournalWeights, ref time.Time) *Scorer {
	return &Scorer{journals: journals, ref: ref}
}

// Score returns relevance of the paper for the category
func (s *Scorer) Score(p domain.Paper, cat domain.Category) int {
	return s.keywordScore(p, cat) + s.journals.Weight(p.Journal) + s.ageScore(p.Date)
}

func (s *Scorer) keywordScore(p domain.Paper, cat domain.Category) int {
	title := strings.ToLower(p.Title)
	text := title + " " + strings.ToLower(p.ScoringText())

	score := 0
	for kw, weight := range cat.Keywords {
		kw = strings.ToLower(kw)
		if !strings.Contains(text, kw) {
			continue
		}
		score += weight
		if strings.Contains(title, kw) {
			score += titleBonus
		}
	}
	return score
}

// ageScore gives 0 for dates it can't parse
func (s *Scorer) ageScore(date string) int {
	d, err := recency.ParseDate(date, s.ref)
	if err != nil {
		return 0
	}
	switch age := recency.AgeDays(d, s.ref); {
	case age <= freshDays:
		return freshBonus
	case age <= recentBonusDays:
		return recentBonus
	default:
		return 0
	}
}
