// Package cli implements the command-line interface for tv-fixtures.
//
// The cli package provides the Cobra-based command that captures one or more
// listings pages (URLs, saved HTML, plain text captures or stdin), runs each
// through the extraction pipeline concurrently, merges the results and
// prints them as text, JSON or an iCalendar feed, sorted by date,
// competition or home team.
package cli
