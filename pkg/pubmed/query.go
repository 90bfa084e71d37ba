package pubmed

import (
	"fmt"
	"strings"
	"time"

	"github.com/umputun/scidigest/pkg/domain"
)

const queryDateLayout = "2006/01/02"

// BuildQuery makes an E-utilities search term from category keywords and publication date range.
// Every phrase is quoted and scoped to all fields, phrases are OR-combined in sorted order.
func BuildQuery(cat domain.Category, from, to time.Time) string {
	phrases := cat.Phrases()
	terms := make([]string, 0, len(phrases))
	for _, p := range phrases {
		terms = append(terms, fmt.Sprintf("%q[All Fields]", p))
	}
	dateRange := fmt.Sprintf("(%q[Date - Publication] : %q[Date - Publication])",
		from.Format(queryDateLayout), to.Format(queryDateLayout))
	return fmt.Sprintf("(%s) AND %s", strings.Join(terms, " OR "), dateRange)
}
