package domain

import (
	"sort"
	"strings"
)

// Category is a scoring context defined by keyword weights
type Category struct {
	Name     string         `yaml:"name" json:"name"`
	Keywords map[string]int `yaml:"keywords" json:"keywords"`
}

// Phrases returns category keywords in stable, sorted order
func (c Category) Phrases() []string {
	res := make([]string, 0, len(c.Keywords))
	for k := range c.Keywords {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// JournalWeights maps journal name to its venue bonus
type JournalWeights map[string]int

// Weight returns bonus for the journal, names are matched exactly after trimming
func (j JournalWeights) Weight(journal string) int {
	return j[strings.TrimSpace(journal)]
}

// Bucket is a named group of news feeds
type Bucket struct {
	Name  string   `yaml:"name" json:"name"`
	Feeds []string `yaml:"feeds" json:"feeds"`
}
