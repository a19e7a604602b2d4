package calendar

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/tv-fixtures/internal/fixture"
)

// Duration is the length given to every match entry.
const Duration = 2 * time.Hour

// maxLineOctets is the longest content line allowed before folding.
const maxLineOctets = 75

// GenerateICS generates an iCalendar (.ics) feed with one event per fixture.
// Fixtures without a known kickoff are left out.
func GenerateICS(fixtures []*fixture.Fixture, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//TV Fixtures//tv-fixtures//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Football on TV\r\n")

	for _, fx := range fixtures {
		if fx == nil || !fx.HasKickoff() {
			continue
		}
		writeEvent(&ics, fx, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, fx *fixture.Fixture, now time.Time) {
	start := *fx.KickoffUTC

	ics.WriteString("BEGIN:VEVENT\r\n")
	writeLine(ics, "UID", fx.ID+"@tv-fixtures")
	writeLine(ics, "DTSTAMP", formatICSTime(now))
	writeLine(ics, "DTSTART", formatICSTime(start))
	writeLine(ics, "DTEND", formatICSTime(start.Add(Duration)))
	writeLine(ics, "SUMMARY", escapeICS(fx.Title()))

	if description := describe(fx); description != "" {
		writeLine(ics, "DESCRIPTION", escapeICS(description))
	}
	if len(fx.Channels) > 0 {
		writeLine(ics, "LOCATION", escapeICS(strings.Join(fx.Channels, ", ")))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

func writeLine(ics *strings.Builder, name, value string) {
	ics.WriteString(foldLine(fmt.Sprintf("%s:%s", name, value)))
}

// foldLine terminates line with CRLF, splitting it into physical lines of at
// most 75 octets. Continuation lines start with a single space and runes are
// never split.
func foldLine(line string) string {
	var b strings.Builder
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineOctets - 1
	}
	b.WriteString(line)
	b.WriteString("\r\n")
	return b.String()
}

func describe(fx *fixture.Fixture) string {
	var parts []string
	if c := fx.CompetitionName(); c != "" {
		parts = append(parts, c)
	}
	if len(fx.Channels) > 0 {
		parts = append(parts, "Channels: "+strings.Join(fx.Channels, ", "))
	}
	if fx.KickoffLocal != nil {
		parts = append(parts, "Kick-off (UK): "+*fx.KickoffLocal)
	}
	return strings.Join(parts, "\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format (RFC 5545)
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
