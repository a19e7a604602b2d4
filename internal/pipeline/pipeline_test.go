package pipeline

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pfrederiksen/tv-fixtures/internal/filter"
	"github.com/pfrederiksen/tv-fixtures/internal/lines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `
Friday, 5th December
English Championship - Week 19
Hull City v Middlesbrough
ST: 15:00
Sky Sports Red Button
TNT Sports 1
Sky Sports Red Button
Saturday, 6th December
Women's Super League - Week 10
Arsenal v Chelsea
ST: 12:30
BBC Two
UEFA Europa League - Matchday 6
Rangers v Porto
ST: 17:45
TNT Sports 2
English Premier League - Week 15
Everton v Fulham
ST: 17:30
Sky Sports Main Event
`

func june2026() time.Time {
	return time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)
}

func TestRun_Listing(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = june2026()

	res := Run(lines.SplitText(listing), opts)

	require.Len(t, res.Fixtures, 2)
	assert.Equal(t, "primary", res.Source)

	hull := res.Fixtures[0]
	assert.Equal(t, "Hull City", hull.Home)
	assert.Equal(t, "Middlesbrough", hull.Away)
	require.NotNil(t, hull.Competition)
	assert.Equal(t, "English Championship - Week 19", *hull.Competition)
	assert.Equal(t, []string{"Sky Sports Red Button", "TNT Sports 1"}, hull.Channels)
	require.NotNil(t, hull.KickoffUTC)
	assert.Equal(t, "2025-12-05T15:00:00Z", hull.KickoffUTC.Format(time.RFC3339))
	require.NotNil(t, hull.KickoffLocal)
	assert.Equal(t, "05/12/2025 15:00", *hull.KickoffLocal)
	assert.Nil(t, hull.MatchScore)

	assert.Equal(t, "Everton", res.Fixtures[1].Home)

	joined := strings.Join(res.Diagnostics, "\n")
	assert.Contains(t, joined, "filtered Arsenal v Chelsea")
	assert.Contains(t, joined, "filtered Rangers v Porto")
}

func TestRun_AllCompetitions(t *testing.T) {
	opts := Options{UKOnly: false, Now: june2026()}

	res := Run(lines.SplitText(listing), opts)

	// Women's and European fixtures are still excluded.
	require.Len(t, res.Fixtures, 2)
}

func TestDefaultOptions_UKOnly(t *testing.T) {
	assert.True(t, DefaultOptions().UKOnly)
	assert.False(t, Options{}.UKOnly)

	defaults := DefaultOptions()
	defaults.Now = june2026()
	zero := Options{Now: june2026()}

	input := lines.SplitText("Saudi Pro League\nAl Hilal v Al Nassr\nST: 17:00\nTNT Sports 2")

	assert.Empty(t, Run(input, defaults).Fixtures)
	assert.Len(t, Run(input, zero).Fixtures, 1)
}

func TestRun_TeamFilter(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = june2026()
	opts.TeamFilter = "hull city afc"

	res := Run(lines.SplitText(listing), opts)

	require.Len(t, res.Fixtures, 1)
	f := res.Fixtures[0]
	assert.Equal(t, "Hull City", f.Home)
	require.NotNil(t, f.MatchScore)
	assert.Equal(t, 100, *f.MatchScore)
	assert.Contains(t, strings.Join(res.Diagnostics, "\n"), `does not match team "hull city afc"`)
}

func TestRun_TeamFilterEmptyAfterNormalisation(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = june2026()
	opts.TeamFilter = "FC"

	res := Run(lines.SplitText(listing), opts)

	assert.Empty(t, res.Fixtures)
	assert.NotNil(t, res.Fixtures)
}

func TestRun_FallbackToText(t *testing.T) {
	// A DOM walk that split every element apart loses the line adjacency the
	// parser needs; the innerText capture still has it.
	primary := lines.FromText([]string{"Hull City", "v", "Middlesbrough", "15:00", "TNT Sports 1"})
	opts := DefaultOptions()
	opts.Now = june2026()
	opts.Fallback = lines.SplitText("Friday, 5th December\nEnglish Championship - Week 19\nHull City v Middlesbrough\nST: 15:00\nTNT Sports 1")

	res := Run(primary, opts)

	require.Len(t, res.Fixtures, 1)
	assert.Equal(t, "fallback", res.Source)
	assert.Contains(t, res.Diagnostics[0], "primary: 5 lines produced no fixture blocks")
}

func TestRun_BothStrategiesEmpty(t *testing.T) {
	opts := DefaultOptions()
	opts.Fallback = lines.SplitText("nothing to see here")

	res := Run(lines.SplitText("still nothing"), opts)

	assert.Empty(t, res.Fixtures)
	require.Len(t, res.Diagnostics, 2)
	assert.Contains(t, res.Diagnostics[0], "primary")
	assert.Contains(t, res.Diagnostics[1], "fallback")
}

func TestRun_TimeMarkerFirstLine(t *testing.T) {
	res := Run(lines.SplitText("ST: 15:00"), DefaultOptions())

	assert.Empty(t, res.Fixtures)
	assert.Contains(t, res.Diagnostics[0], "no preceding teams line")
}

func TestRun_UnknownKickoffStillEmitted(t *testing.T) {
	input := lines.SplitText("English Premier League\nWigan v Bolton\nST: 15:00\nSky Sports+")
	opts := DefaultOptions()
	opts.Now = june2026()

	res := Run(input, opts)

	require.Len(t, res.Fixtures, 1)
	assert.Nil(t, res.Fixtures[0].KickoffUTC)
	assert.Nil(t, res.Fixtures[0].KickoffLocal)
	assert.Contains(t, strings.Join(res.Diagnostics, "\n"), "kickoff unknown for Wigan v Bolton")
}

func TestRun_DuplicateFixturesMerged(t *testing.T) {
	input := lines.SplitText(`
Friday, 5th December
English Championship - Week 19
Hull City v Middlesbrough
ST: 15:00
TNT Sports 1
English Championship - Week 19
Hull City v Middlesbrough
ST: 15:00
Sky Sports+
TNT Sports 1
`)
	opts := DefaultOptions()
	opts.Now = june2026()

	res := Run(input, opts)

	require.Len(t, res.Fixtures, 1)
	assert.Equal(t, []string{"TNT Sports 1", "Sky Sports+"}, res.Fixtures[0].Channels)
	assert.Contains(t, strings.Join(res.Diagnostics, "\n"), "merged 1 duplicate fixtures")
}

func TestRun_UnresolvedFixturesWithDifferentTimesKept(t *testing.T) {
	input := lines.SplitText(`
Premier League
Hull City v Middlesbrough
ST: 15:00
BBC One
Premier League
Hull City v Middlesbrough
ST: 19:45
Sky Sports
`)
	opts := DefaultOptions()
	opts.Now = june2026()

	res := Run(input, opts)

	require.Len(t, res.Fixtures, 2)
	assert.NotEqual(t, res.Fixtures[0].ID, res.Fixtures[1].ID)
	assert.Equal(t, []string{"BBC One"}, res.Fixtures[0].Channels)
	assert.Equal(t, []string{"Sky Sports"}, res.Fixtures[1].Channels)
	assert.NotContains(t, strings.Join(res.Diagnostics, "\n"), "merged")
}

func TestRun_CompetitionWhitespaceNormalised(t *testing.T) {
	input := lines.SplitText("English   Premier  League\nArsenal v Spurs\nST: 16:30")
	opts := DefaultOptions()
	opts.Now = june2026()

	res := Run(input, opts)

	require.Len(t, res.Fixtures, 1)
	assert.Equal(t, "English Premier League", *res.Fixtures[0].Competition)
}

func TestRun_CustomFilter(t *testing.T) {
	opts := Options{Now: june2026(), Filter: &filter.Filter{UKOnly: true}}

	res := Run(lines.SplitText(listing), opts)

	assert.Empty(t, res.Fixtures)
}

func TestRun_Concurrent(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = june2026()
	input := lines.SplitText(listing)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Run(input, opts)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Len(t, r.Fixtures, 2)
		assert.Equal(t, results[0].Fixtures[0].ID, r.Fixtures[0].ID)
	}
}
