package lines

import (
	"regexp"
	"strings"
)

// Kind is the dominant tag of a classified line.
type Kind int

const (
	Unclassified Kind = iota
	DateHeader
	TimeMarker
	TeamsLine
	StopNote
)

func (k Kind) String() string {
	switch k {
	case DateHeader:
		return "date-header"
	case TimeMarker:
		return "time-marker"
	case TeamsLine:
		return "teams-line"
	case StopNote:
		return "stop-note"
	default:
		return "unclassified"
	}
}

var (
	weekdayPattern    = regexp.MustCompile(`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	timeMarkerPattern = regexp.MustCompile(`(?i)^ST:\s*(\d{1,2}:\d{2})\s*$`)

	// A standalone "v" or "vs" (optionally "v." / "vs.") with whitespace on both sides.
	separatorPattern = regexp.MustCompile(`(?i)\s(vs?\.?)\s`)

	boilerplatePattern  = regexp.MustCompile(`(?i)^(please note:|members login|members logout)`)
	roundNumberPattern  = regexp.MustCompile(`(?i)-\s*(week|round|matchday|md|gw)\s+`)
	competitionPrefixes = regexp.MustCompile(`(?i)^(english|scottish|welsh|irish|northern irish|spanish|italian|german|french|dutch|portuguese|` +
		`uefa (champions|europa|conference|nations|super|youth|women|euro)|fifa (world cup|club world cup)|` +
		`efl (cup|trophy|championship|league)|fa (cup|trophy|vase|community shield|youth cup)|emirates fa cup|spfl|carabao|` +
		`premier league|champions league|europa league|conference league|la liga|serie a|bundesliga|ligue 1|eredivisie|` +
		`mls (cup|all-star)|international friendl(y|ies)|friendly|world cup)\b`)
)

// Classification is the result of Classify. More than one flag can be set;
// Kind resolves the precedence.
type Classification struct {
	IsDateHeader bool
	IsTimeMarker bool
	IsVsLine     bool
	IsStopNote   bool

	// Time is the captured HH:MM (or H:MM) of a time marker.
	Time string
	// SeparatorStart and SeparatorEnd delimit the matched separator, including
	// the surrounding whitespace, so text[:SeparatorStart] is the home side and
	// text[SeparatorEnd:] the away side.
	SeparatorStart int
	SeparatorEnd   int
	Separator      string
}

// Classify tags a single line. It is pure and deterministic.
func Classify(line string) Classification {
	line = strings.TrimSpace(line)
	var c Classification
	if line == "" {
		return c
	}

	c.IsDateHeader = weekdayPattern.MatchString(line)

	if m := timeMarkerPattern.FindStringSubmatch(line); m != nil {
		c.IsTimeMarker = true
		c.Time = m[1]
	}

	if loc := separatorPattern.FindStringSubmatchIndex(line); loc != nil {
		c.IsVsLine = true
		c.SeparatorStart = loc[0]
		c.SeparatorEnd = loc[1]
		c.Separator = line[loc[2]:loc[3]]
	}

	c.IsStopNote = boilerplatePattern.MatchString(line) ||
		roundNumberPattern.MatchString(line) ||
		competitionPrefixes.MatchString(line)

	return c
}

// Kind returns the dominant tag: date header, then time marker, then teams
// line, then stop note.
func (c Classification) Kind() Kind {
	switch {
	case c.IsDateHeader:
		return DateHeader
	case c.IsTimeMarker:
		return TimeMarker
	case c.IsVsLine:
		return TeamsLine
	case c.IsStopNote:
		return StopNote
	default:
		return Unclassified
	}
}

// SplitTeams splits a teams line on its matched separator. Both sides are
// trimmed. ok is false when the line is not a teams line.
func SplitTeams(line string) (home, away string, ok bool) {
	line = strings.TrimSpace(line)
	c := Classify(line)
	if !c.IsVsLine {
		return "", "", false
	}
	return strings.TrimSpace(line[:c.SeparatorStart]), strings.TrimSpace(line[c.SeparatorEnd:]), true
}

// IsDateHeader reports whether line begins with a weekday name.
func IsDateHeader(line string) bool {
	return weekdayPattern.MatchString(strings.TrimSpace(line))
}

// IsTimeMarker reports whether line is an "ST: HH:MM" marker.
func IsTimeMarker(line string) bool {
	return timeMarkerPattern.MatchString(strings.TrimSpace(line))
}

// IsBoilerplate reports whether line is site chrome such as "Please note:"
// or a members login link.
func IsBoilerplate(line string) bool {
	return boilerplatePattern.MatchString(strings.TrimSpace(line))
}
