package kickoff

import "time"

// LastSunday returns the day of month of the last Sunday in month m of year.
func LastSunday(year int, m time.Month) int {
	// Day 0 of the following month is the last day of m.
	last := time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC)
	return last.Day() - (int(last.Weekday())+7)%7
}

// bstWindow returns the half-open [start, end) interval of British Summer
// Time for year, both at 01:00 UTC.
func bstWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.March, LastSunday(year, time.March), 1, 0, 0, 0, time.UTC)
	end := time.Date(year, time.October, LastSunday(year, time.October), 1, 0, 0, 0, time.UTC)
	return start, end
}

// InBST reports whether t falls within British Summer Time for its own
// calendar year.
func InBST(t time.Time) bool {
	t = t.UTC()
	start, end := bstWindow(t.Year())
	return !t.Before(start) && t.Before(end)
}
