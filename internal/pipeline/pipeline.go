package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/tv-fixtures/internal/filter"
	"github.com/pfrederiksen/tv-fixtures/internal/fixture"
	"github.com/pfrederiksen/tv-fixtures/internal/kickoff"
	"github.com/pfrederiksen/tv-fixtures/internal/lines"
	"github.com/pfrederiksen/tv-fixtures/internal/parser"
	"github.com/pfrederiksen/tv-fixtures/internal/teamname"
)

// Options configures a run.
type Options struct {
	// TeamFilter keeps only fixtures where either team matches. Empty
	// disables team filtering.
	TeamFilter string
	// UKOnly restricts fixtures to UK domestic competitions. Ignored when
	// Filter is set. The zero value keeps every competition; start from
	// DefaultOptions for the UK-only default.
	UKOnly bool
	// Now is the reference instant for season-year inference. Zero means
	// time.Now().
	Now time.Time
	// Fallback is a flat whole-page text capture parsed when the primary
	// lines yield no fixture blocks.
	Fallback []lines.RawLine
	// Filter overrides the default competition filter.
	Filter *filter.Filter
}

// DefaultOptions returns UK-only options with no team filter.
func DefaultOptions() Options {
	return Options{UKOnly: true}
}

// Result is the outcome of a run.
type Result struct {
	Fixtures    []*fixture.Fixture `json:"fixtures"`
	Diagnostics []string           `json:"diagnostics"`
	// Source is "primary" or "fallback", whichever produced the blocks.
	Source string `json:"source"`
}

// Run extracts fixtures from primary, falling back to opts.Fallback.
// Callers normally build opts from DefaultOptions; a zero Options runs with
// UK-only filtering off.
func Run(primary []lines.RawLine, opts Options) Result {
	res := Result{Fixtures: []*fixture.Fixture{}, Diagnostics: []string{}, Source: "primary"}
	diag := func(format string, args ...any) {
		res.Diagnostics = append(res.Diagnostics, fmt.Sprintf(format, args...))
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	blocks, skips := parser.Parse(primary)
	for _, s := range skips {
		diag("primary: %s", s)
	}
	if len(blocks) == 0 {
		diag("primary: %d lines produced no fixture blocks", len(primary))
		if len(opts.Fallback) > 0 {
			res.Source = "fallback"
			blocks, skips = parser.Parse(opts.Fallback)
			for _, s := range skips {
				diag("fallback: %s", s)
			}
			if len(blocks) == 0 {
				diag("fallback: %d lines produced no fixture blocks", len(opts.Fallback))
			}
		} else {
			diag("fallback: no text capture available")
		}
	}
	if len(blocks) == 0 {
		return res
	}

	resolved := make([]*fixture.Fixture, 0, len(blocks))
	for _, b := range blocks {
		resolved = append(resolved, resolve(b, now, diag))
	}

	f := opts.Filter
	if f == nil {
		f = filter.Default(opts.UKOnly)
	}
	kept, rejected := f.Apply(resolved)
	for _, r := range rejected {
		diag("filtered %s: %s", r.Fixture.Title(), r.Reason)
	}

	if team := strings.TrimSpace(opts.TeamFilter); team != "" {
		kept = filterTeam(kept, team, diag)
	}

	unique, merged := fixture.Dedupe(kept)
	if merged > 0 {
		diag("merged %d duplicate fixtures", merged)
	}

	res.Fixtures = unique
	return res
}

func resolve(b parser.Block, now time.Time, diag func(string, ...any)) *fixture.Fixture {
	var competition *string
	if c := strings.Join(strings.Fields(b.CompetitionRaw), " "); c != "" {
		competition = &c
	}

	k, ok := kickoff.Resolve(b.DateLabel, b.TimeString, now)
	if !ok {
		diag("line %d: kickoff unknown for %s v %s (date %q, time %q)", b.Line, b.Home, b.Away, b.DateLabel, b.TimeString)
		return fixture.NewUnresolved(b.Home, b.Away, b.DateLabel, b.TimeString, competition, b.Channels)
	}

	return fixture.New(b.Home, b.Away, &k.UTC, &k.Local, competition, b.Channels)
}

func filterTeam(fixtures []*fixture.Fixture, team string, diag func(string, ...any)) []*fixture.Fixture {
	if teamname.Normalize(team) == "" {
		diag("team filter %q is empty after normalisation; nothing matches", team)
		return []*fixture.Fixture{}
	}

	out := make([]*fixture.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if !teamname.Matches(team, f.Home) && !teamname.Matches(team, f.Away) {
			diag("filtered %s: does not match team %q", f.Title(), team)
			continue
		}
		score := max(teamname.Score(team, f.Home), teamname.Score(team, f.Away))
		f.MatchScore = &score
		out = append(out, f)
	}
	return out
}
