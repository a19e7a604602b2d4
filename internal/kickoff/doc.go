// Package kickoff turns a listing's local calendar-day label and clock time
// into a UTC instant.
//
// Listings print UK wall-clock times under headers such as "Friday, 5th
// December" with no year. Resolve infers the season year from a reference
// instant, parses the time as GMT and then removes an hour when the instant
// falls inside British Summer Time.
package kickoff
