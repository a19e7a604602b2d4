package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Kind(t *testing.T) {
	tests := []struct {
		line string
		want Kind
	}{
		{"Friday, 5th December", DateHeader},
		{"saturday 6th december", DateHeader},
		{"ST: 15:00", TimeMarker},
		{"st:7:45 ", TimeMarker},
		{"Hull City v Middlesbrough", TeamsLine},
		{"Celtic VS Rangers", TeamsLine},
		{"Leeds United v. Burnley", TeamsLine},
		{"Please Note: times are subject to change", StopNote},
		{"Members LOGIN", StopNote},
		{"Members LOGOUT", StopNote},
		{"English Championship - Week 19", StopNote},
		{"Copa del Rey - Round 4", StopNote},
		{"Scottish Premiership", StopNote},
		{"Sky Sports Red Button", Unclassified},
		{"TNT Sports 1", Unclassified},
		{"Vauxhall Motors", Unclassified},
		{"ST: 15:00 approx", Unclassified},
		{"", Unclassified},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line).Kind())
		})
	}
}

func TestClassify_CapturesTime(t *testing.T) {
	c := Classify("ST: 9:30")
	require.True(t, c.IsTimeMarker)
	assert.Equal(t, "9:30", c.Time)
}

func TestClassify_SeparatorPosition(t *testing.T) {
	line := "Aston Villa vs Newcastle United"
	c := Classify(line)
	require.True(t, c.IsVsLine)
	assert.Equal(t, "vs", c.Separator)
	assert.Equal(t, "Aston Villa", line[:c.SeparatorStart])
	assert.Equal(t, "Newcastle United", line[c.SeparatorEnd:])
}

func TestClassify_VsInsideWordIsNotSeparator(t *testing.T) {
	for _, line := range []string{"Vauxhall Motors", "Harrogate Town AFC", "Stevenage", "Viaplay Sports 1"} {
		assert.False(t, Classify(line).IsVsLine, line)
	}
}

func TestSplitTeams(t *testing.T) {
	tests := []struct {
		line     string
		wantHome string
		wantAway string
		wantOK   bool
	}{
		{"Hull City v Middlesbrough", "Hull City", "Middlesbrough", true},
		{"  Brighton & Hove Albion  vs  Wolves ", "Brighton & Hove Albion", "Wolves", true},
		// Only the first separator splits the line.
		{"Man City v Arsenal v Chelsea", "Man City", "Arsenal v Chelsea", true},
		{"Sky Sports Main Event", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			home, away, ok := SplitTeams(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantHome, home)
			assert.Equal(t, tt.wantAway, away)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	line := "Derby County v Stoke City"
	assert.Equal(t, Classify(line), Classify(line))
}

func TestSplitText(t *testing.T) {
	got := SplitText("Friday, 5th December\r\n\n  Hull City v Middlesbrough  \nST: 15:00\n")
	require.Len(t, got, 3)
	assert.Equal(t, RawLine{Text: "Friday, 5th December", Index: 0}, got[0])
	assert.Equal(t, RawLine{Text: "Hull City v Middlesbrough", Index: 1}, got[1])
	assert.Equal(t, RawLine{Text: "ST: 15:00", Index: 2}, got[2])
}

func TestClassify_BroadcastersAreNotStopNotes(t *testing.T) {
	for _, line := range []string{
		"FA Player",
		"MLS Season Pass",
		"International Channel 5",
		"UEFA.tv",
		"FIFA+",
		"EFL iFollow",
	} {
		assert.False(t, Classify(line).IsStopNote, line)
	}

	for _, line := range []string{
		"FA Cup Third Round",
		"Emirates FA Cup",
		"MLS Cup Final",
		"UEFA Champions League",
		"EFL Trophy",
		"International Friendly",
	} {
		assert.True(t, Classify(line).IsStopNote, line)
	}
}

func TestIsBoilerplate(t *testing.T) {
	assert.True(t, IsBoilerplate("  Please Note: times may change"))
	assert.True(t, IsBoilerplate("Members Login"))
	assert.False(t, IsBoilerplate("English Championship - Week 19"))
}
