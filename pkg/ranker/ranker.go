// Package ranker merges adapter outputs and orders them for the digest
package ranker

import (
	"sort"

	"github.com/umputun/scidigest/pkg/domain"
)

// Scorer computes relevance of a paper for a category
type Scorer interface {
	Score(p domain.Paper, cat domain.Category) int
}

// RankPapers scores every paper against the category and sorts by score, descending.
// Ties keep arrival order. The input slice is not modified, the full ranked list is returned.
func RankPapers(papers []domain.Paper, cat domain.Category, scorer Scorer) []domain.Paper {
	res := make([]domain.Paper, len(papers))
	for i, p := range papers {
		p.RelevanceScore = scorer.Score(p, cat)
		res[i] = p
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].RelevanceScore > res[j].RelevanceScore
	})
	return res
}

// SortNews orders news by date, newest first. Dates are YYYY-MM-DD so string order is chronological.
func SortNews(items []domain.NewsItem) []domain.NewsItem {
	res := make([]domain.NewsItem, len(items))
	copy(res, items)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Date > res[j].Date
	})
	return res
}

// MergePapers concatenates paper batches in the given order
func MergePapers(batches ...[]domain.Paper) []domain.Paper {
	var res []domain.Paper
	for _, b := range batches {
		res = append(res, b...)
	}
	return res
}
