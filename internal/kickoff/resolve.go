package kickoff

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // embedded zoneinfo for Europe/London
)

const (
	// LocalLayout is the UK display format, DD/MM/YYYY HH:mm.
	LocalLayout = "02/01/2006 15:04"

	composeLayout = "2 January 2006 15:04"
)

var (
	ordinalPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	dayPattern     = regexp.MustCompile(`\b(\d{1,2})\b`)
	yearPattern    = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	clockPattern   = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

var london = loadLondon()

func loadLondon() *time.Location {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		return nil
	}
	return loc
}

// Kickoff is a resolved kickoff instant.
type Kickoff struct {
	UTC   time.Time
	Local string
}

// ISO returns the instant as an ISO-8601 UTC string.
func (k Kickoff) ISO() string {
	return k.UTC.Format(time.RFC3339)
}

// Resolve converts a date label such as "Friday, 5th December" and a clock
// time "15:00" into a UTC instant, relative to now for year inference.
// ok is false when either part cannot be parsed; it never panics.
func Resolve(dateLabel, clock string, now time.Time) (Kickoff, bool) {
	naive, ok := parseGMT(dateLabel, clock, now)
	if !ok {
		return Kickoff{}, false
	}

	utc := naive
	if InBST(naive) {
		// The listing printed BST wall-clock time, one hour ahead of UTC.
		utc = naive.Add(-time.Hour)
	}

	return Kickoff{UTC: utc, Local: FormatLocal(utc)}, true
}

// parseGMT composes "<day> <month> <year> <clock>" and parses it as GMT.
func parseGMT(dateLabel, clock string, now time.Time) (time.Time, bool) {
	label := ordinalPattern.ReplaceAllString(strings.TrimSpace(dateLabel), "$1")
	if label == "" {
		return time.Time{}, false
	}

	month, ok := findMonth(label)
	if !ok {
		return time.Time{}, false
	}

	year := InferYear(month, now)
	if m := yearPattern.FindString(label); m != "" {
		year, _ = strconv.Atoi(m)
		label = strings.Replace(label, m, "", 1)
	}

	d := dayPattern.FindString(label)
	if d == "" {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(d)

	clock = strings.TrimSpace(clock)
	if !clockPattern.MatchString(clock) {
		return time.Time{}, false
	}

	composed := strings.Join([]string{strconv.Itoa(day), month.String(), strconv.Itoa(year), clock}, " ")
	t, err := time.ParseInLocation(composeLayout, composed, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatLocal renders an instant as Europe/London wall-clock time.
func FormatLocal(t time.Time) string {
	if london != nil {
		return t.In(london).Format(LocalLayout)
	}
	local := t.UTC()
	if InBST(local) {
		local = local.Add(time.Hour)
	}
	return local.Format(LocalLayout)
}
