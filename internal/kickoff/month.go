package kickoff

import (
	"regexp"
	"strings"
	"time"
)

var monthPattern = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|oct|nov|dec)\b`)

// parseMonth converts a month name or abbreviation to time.Month.
// Returns 0 for anything else.
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))

	months := map[string]time.Month{
		"jan": time.January, "january": time.January,
		"feb": time.February, "february": time.February,
		"mar": time.March, "march": time.March,
		"apr": time.April, "april": time.April,
		"may": time.May,
		"jun": time.June, "june": time.June,
		"jul": time.July, "july": time.July,
		"aug": time.August, "august": time.August,
		"sep": time.September, "sept": time.September, "september": time.September,
		"oct": time.October, "october": time.October,
		"nov": time.November, "november": time.November,
		"dec": time.December, "december": time.December,
	}

	return months[name]
}

// findMonth returns the first month named in label.
func findMonth(label string) (time.Month, bool) {
	m := monthPattern.FindString(label)
	if m == "" {
		return 0, false
	}
	month := parseMonth(m)
	return month, month != 0
}

// InferYear picks the calendar year a month-only label belongs to, keeping an
// August to May season consistent whenever the scrape runs:
//   - Aug..Dec label seen during Jan..Jun refers to the previous year
//   - Jan..Jun label seen during Aug..Dec refers to the next year
//   - otherwise the reference year
func InferYear(month time.Month, now time.Time) int {
	year := now.Year()
	switch {
	case month >= time.August && now.Month() <= time.June:
		return year - 1
	case month <= time.June && now.Month() >= time.August:
		return year + 1
	default:
		return year
	}
}
