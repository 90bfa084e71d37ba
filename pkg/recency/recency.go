// Package recency decides whether an item falls into the lookback window.
// All callers pass the same reference time captured once per run.
package recency

import (
	"fmt"
	"time"

	"github.com/umputun/scidigest/pkg/domain"
)

// AgeDays returns the number of calendar days from date to ref, both taken in ref's location.
// Times of day are ignored, so DST shifts don't change the result. Future dates give negative ages.
func AgeDays(date, ref time.Time) int {
	dy, dm, dd := date.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	from := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// IsRecent reports whether date is within windowDays before ref
func IsRecent(date, ref time.Time, windowDays int) bool {
	return AgeDays(date, ref) <= windowDays
}

// ParseDate parses YYYY-MM-DD as midnight in the location of ref
func ParseDate(date string, ref time.Time) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, date, ref.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrDateUnparseable, date)
	}
	return t, nil
}
