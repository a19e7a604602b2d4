package kickoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func TestResolve_SeasonBoundaryPreviousYear(t *testing.T) {
	now := date(2026, time.June, 10, 12, 0)

	k, ok := Resolve("Friday, 5th December", "15:00", now)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.December, 5, 15, 0), k.UTC)
	assert.Equal(t, "2025-12-05T15:00:00Z", k.ISO())
	assert.Equal(t, "05/12/2025 15:00", k.Local)
}

func TestResolve_SeasonBoundaryNextYear(t *testing.T) {
	now := date(2025, time.November, 20, 9, 0)

	k, ok := Resolve("Saturday 3rd January", "12:30", now)
	require.True(t, ok)
	assert.Equal(t, date(2026, time.January, 3, 12, 30), k.UTC)
}

func TestResolve_BSTCorrection(t *testing.T) {
	now := date(2025, time.May, 1, 0, 0)

	k, ok := Resolve("Sunday, 25th May", "15:00", now)
	require.True(t, ok)

	naive := date(2025, time.May, 25, 15, 0)
	assert.Equal(t, naive.Add(-time.Hour), k.UTC)
	assert.Equal(t, "2025-05-25T14:00:00Z", k.ISO())
	assert.Equal(t, "25/05/2025 15:00", k.Local)
}

func TestResolve_BSTBoundaries(t *testing.T) {
	// 2025: BST runs from 30 March 01:00 UTC to 26 October 01:00 UTC.
	now := date(2025, time.July, 1, 0, 0)

	tests := []struct {
		name  string
		label string
		clock string
		want  time.Time
	}{
		{"just before start", "Sunday 30th March", "00:59", date(2025, time.March, 30, 0, 59)},
		{"exactly at start", "Sunday 30th March", "01:00", date(2025, time.March, 30, 0, 0)},
		{"just before end", "Sunday 26th October", "00:59", date(2025, time.October, 25, 23, 59)},
		{"exactly at end", "Sunday 26th October", "01:00", date(2025, time.October, 26, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := Resolve(tt.label, tt.clock, now)
			require.True(t, ok)
			assert.Equal(t, tt.want, k.UTC)
		})
	}
}

func TestResolve_BoundaryDiffersByOneHour(t *testing.T) {
	now := date(2025, time.July, 1, 0, 0)

	before, ok := Resolve("Sunday 30th March", "00:59", now)
	require.True(t, ok)
	at, ok := Resolve("Sunday 30th March", "01:00", now)
	require.True(t, ok)

	naiveBefore := date(2025, time.March, 30, 0, 59)
	naiveAt := date(2025, time.March, 30, 1, 0)
	assert.Equal(t, time.Duration(0), naiveBefore.Sub(before.UTC))
	assert.Equal(t, time.Hour, naiveAt.Sub(at.UTC))
}

func TestResolve_ExplicitYear(t *testing.T) {
	now := date(2026, time.June, 1, 0, 0)

	k, ok := Resolve("Saturday 13th December 2026", "17:30", now)
	require.True(t, ok)
	assert.Equal(t, date(2026, time.December, 13, 17, 30), k.UTC)
}

func TestResolve_Abbreviations(t *testing.T) {
	now := date(2025, time.September, 1, 0, 0)

	k, ok := Resolve("Tue 2nd Dec", "19:45", now)
	require.True(t, ok)
	assert.Equal(t, date(2025, time.December, 2, 19, 45), k.UTC)
}

func TestResolve_Failures(t *testing.T) {
	now := date(2025, time.September, 1, 0, 0)

	tests := []struct {
		name  string
		label string
		clock string
	}{
		{"empty label", "", "15:00"},
		{"no month", "Friday", "15:00"},
		{"no day", "Friday December", "15:00"},
		{"bad clock", "Friday 5th December", "3pm"},
		{"hour out of range", "Friday 5th December", "25:00"},
		{"day out of range", "Monday 31st February", "15:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, ok := Resolve(tt.label, tt.clock, now)
			assert.False(t, ok)
			assert.True(t, k.UTC.IsZero())
			assert.Empty(t, k.Local)
		})
	}
}

func TestInferYear(t *testing.T) {
	tests := []struct {
		name  string
		month time.Month
		now   time.Time
		want  int
	}{
		{"autumn label in spring", time.October, date(2026, time.March, 1, 0, 0), 2025},
		{"spring label in autumn", time.April, date(2025, time.October, 1, 0, 0), 2026},
		{"same half", time.September, date(2025, time.August, 1, 0, 0), 2025},
		{"july reference", time.December, date(2025, time.July, 1, 0, 0), 2025},
		{"july label", time.July, date(2025, time.December, 1, 0, 0), 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferYear(tt.month, tt.now))
		})
	}
}

func TestLastSunday(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.March, 31},
		{2024, time.October, 27},
		{2025, time.March, 30},
		{2025, time.October, 26},
		{2026, time.March, 29},
		{2026, time.October, 25},
	}

	for _, tt := range tests {
		got := LastSunday(tt.year, tt.month)
		assert.Equal(t, tt.want, got, "%d %s", tt.year, tt.month)
		assert.Equal(t, time.Sunday, time.Date(tt.year, tt.month, got, 0, 0, 0, 0, time.UTC).Weekday())
	}
}

func TestFormatLocal(t *testing.T) {
	assert.Equal(t, "01/01/2026 00:00", FormatLocal(date(2026, time.January, 1, 0, 0)))
	assert.Equal(t, "01/07/2026 13:00", FormatLocal(date(2026, time.July, 1, 12, 0)))
}
