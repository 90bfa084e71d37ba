package recency

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/scidigest/pkg/domain"
)

func TestAgeDays(t *testing.T) {
	ref := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{name: "same moment", date: ref, want: 0},
		{name: "earlier today", date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), want: 0},
		{name: "yesterday midnight", date: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), want: 1},
		{name: "three days", date: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), want: 3},
		{name: "late two days ago", date: ref.Add(-47 * time.Hour), want: 2},
		{name: "late yesterday", date: time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC), want: 1},
		{name: "later today", date: ref.Add(2 * time.Hour), want: 0},
		{name: "tomorrow", date: ref.AddDate(0, 0, 1), want: -1},
		{name: "other zone uses ref's calendar", date: time.Date(2024, 3, 15, 1, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeDays(tt.date, ref))
		})
	}
}

func TestAgeDays_DST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// clocks jump forward on 2024-03-10, the span is 95.5 wall hours but 4 calendar days
	ref := time.Date(2024, 3, 12, 0, 30, 0, 0, loc)
	date := time.Date(2024, 3, 8, 0, 0, 0, 0, loc)
	assert.Equal(t, 4, AgeDays(date, ref))

	// and back on 2024-11-03, 25-hour day
	ref = time.Date(2024, 11, 4, 0, 0, 0, 0, loc)
	assert.Equal(t, 1, AgeDays(time.Date(2024, 11, 3, 0, 0, 0, 0, loc), ref))
}

func TestIsRecent(t *testing.T) {
	ref := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.True(t, IsRecent(ref.AddDate(0, 0, -2), ref, 2), "exactly on the window edge")
	assert.False(t, IsRecent(ref.AddDate(0, 0, -3), ref, 2))
	assert.True(t, IsRecent(ref.Add(time.Hour), ref, 2), "future dates are recent")
	assert.True(t, IsRecent(ref.AddDate(0, 0, -7), ref, 7))
	assert.False(t, IsRecent(ref.AddDate(0, 0, -8), ref, 7))
}

func TestParseDate(t *testing.T) {
	ref := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	d, err := ParseDate("2024-03-14", ref)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("Date not available", ref)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDateUnparseable))
}
