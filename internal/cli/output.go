package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/tv-fixtures/internal/calendar"
	"github.com/pfrederiksen/tv-fixtures/internal/fixture"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

func (f OutputFormat) valid() bool {
	return f == FormatText || f == FormatJSON || f == FormatICS
}

// SourceResult summarises one input.
type SourceResult struct {
	Input string `json:"input"`
	// Strategy is the capture that produced the fixtures: "primary" or "fallback".
	Strategy string `json:"strategy"`
	Fixtures int    `json:"fixtures"`
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt    time.Time          `json:"checked_at"`
	Filter       string             `json:"filter"`
	Team         string             `json:"team,omitempty"`
	NewOnly      bool               `json:"new_only,omitempty"`
	Sources      []SourceResult     `json:"sources"`
	Fixtures     []*fixture.Fixture `json:"fixtures"`
	FixtureCount int                `json:"fixture_count"`
	Diagnostics  []string           `json:"diagnostics,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(result.Fixtures, result.CheckedAt))
		return err
	default:
		return errors.Newf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := sonic.ConfigStd.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	label := "fixtures"
	if result.NewOnly {
		label = "new fixtures"
	}

	if result.FixtureCount == 0 {
		fmt.Fprintf(w, "No %s found.\n", label)
		if verbose {
			for _, d := range result.Diagnostics {
				fmt.Fprintf(w, "  - %s\n", d)
			}
		}
		return nil
	}

	for _, fx := range result.Fixtures {
		when := "TBC"
		if fx.KickoffLocal != nil {
			when = *fx.KickoffLocal
		}

		fmt.Fprintf(w, "%-16s  %s", when, fx.Title())
		if c := fx.CompetitionName(); c != "" {
			fmt.Fprintf(w, " (%s)", c)
		}
		fmt.Fprintln(w)

		if len(fx.Channels) > 0 {
			fmt.Fprintf(w, "%18s%s\n", "", strings.Join(fx.Channels, ", "))
		}
		if verbose {
			fmt.Fprintf(w, "%18sID: %s\n", "", fx.ID)
			if fx.MatchScore != nil {
				fmt.Fprintf(w, "%18sMatch: %d\n", "", *fx.MatchScore)
			}
		}
	}

	if result.FixtureCount == 1 {
		label = strings.TrimSuffix(label, "s")
	}
	fmt.Fprintf(w, "\nTotal: %d %s (%s)\n", result.FixtureCount, label, result.Filter)

	return nil
}
