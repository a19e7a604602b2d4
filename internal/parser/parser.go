package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pfrederiksen/tv-fixtures/internal/lines"
)

// Block is a fixture as found on the page, before any time resolution.
type Block struct {
	DateLabel      string
	CompetitionRaw string
	Home           string
	Away           string
	TimeString     string
	Channels       []string
	// Line is the index of the time marker that anchored the block.
	Line int
}

type state int

const (
	stateSeekDate state = iota
	stateSeekFixture
	stateCollectChannels
)

func (s state) String() string {
	switch s {
	case stateSeekDate:
		return "SeekDate"
	case stateSeekFixture:
		return "SeekFixture"
	case stateCollectChannels:
		return "CollectChannels"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// accumulator is the per-call parse state.
type accumulator struct {
	state       state
	currentDate string
	current     *Block
	blocks      []Block
	skips       []string
}

func (a *accumulator) skip(format string, args ...any) {
	a.skips = append(a.skips, fmt.Sprintf(format, args...))
}

func (a *accumulator) emit() {
	if a.current != nil {
		a.blocks = append(a.blocks, *a.current)
		a.current = nil
	}
	if a.currentDate == "" {
		a.state = stateSeekDate
	} else {
		a.state = stateSeekFixture
	}
}

// Parse scans seq once and returns the fixture blocks it contains together
// with a diagnostic for every time marker it had to skip.
func Parse(seq []lines.RawLine) ([]Block, []string) {
	acc := &accumulator{state: stateSeekDate}

	for i := 0; i < len(seq); {
		text := strings.TrimSpace(seq[i].Text)
		c := lines.Classify(text)

		switch acc.state {
		case stateSeekDate, stateSeekFixture:
			switch {
			case c.IsDateHeader:
				acc.currentDate = text
				acc.state = stateSeekFixture
			case c.IsTimeMarker:
				if blk, ok := acc.open(seq, i, c.Time); ok {
					acc.current = blk
					acc.state = stateCollectChannels
				}
			}
			i++

		case stateCollectChannels:
			if c.IsDateHeader || c.IsTimeMarker || c.IsVsLine {
				// Terminates the block; the line is re-read in the next state.
				acc.emit()
				continue
			}
			if !c.IsStopNote {
				if ch := CleanChannel(text); ch != "" {
					acc.current.Channels = append(acc.current.Channels, ch)
				}
			}
			i++
		}
	}

	if acc.state == stateCollectChannels {
		acc.emit()
	}

	return acc.blocks, acc.skips
}

// open builds a block for the time marker at index i from the lines before it.
func (a *accumulator) open(seq []lines.RawLine, i int, clock string) (*Block, bool) {
	marker := strings.TrimSpace(seq[i].Text)
	if i < 1 {
		a.skip("line %d: time marker %q has no preceding teams line", seq[i].Index, marker)
		return nil, false
	}

	teamsText := strings.TrimSpace(seq[i-1].Text)
	home, away, ok := lines.SplitTeams(teamsText)
	if !ok {
		a.skip("line %d: time marker %q follows %q, which is not a teams line", seq[i].Index, marker, teamsText)
		return nil, false
	}
	if reason := invalidTeams(home, away); reason != "" {
		a.skip("line %d: teams line %q rejected: %s", seq[i-1].Index, teamsText, reason)
		return nil, false
	}

	competition := ""
	if i >= 2 {
		prev := strings.TrimSpace(seq[i-2].Text)
		pc := lines.Classify(prev)
		if !pc.IsDateHeader && !pc.IsTimeMarker && !pc.IsVsLine && !lines.IsBoilerplate(prev) {
			competition = prev
		}
	}

	return &Block{
		DateLabel:      a.currentDate,
		CompetitionRaw: competition,
		Home:           home,
		Away:           away,
		TimeString:     clock,
		Line:           seq[i].Index,
	}, true
}

func invalidTeams(home, away string) string {
	switch {
	case home == "" || away == "":
		return "empty team name"
	case strings.EqualFold(home, away):
		return "home and away are the same"
	case lines.IsDateHeader(home) || lines.IsDateHeader(away):
		return "team name looks like a date header"
	case lines.IsTimeMarker(home) || lines.IsTimeMarker(away):
		return "team name looks like a time marker"
	}
	return ""
}

var (
	markupPattern     = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanChannel strips markup, emoji and pictographic noise from a channel
// line and collapses whitespace. It returns "" when nothing is left.
func CleanChannel(text string) string {
	text = markupPattern.ReplaceAllString(text, " ")
	text = strings.Map(func(r rune) rune {
		if isEmojiNoise(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

func isEmojiNoise(r rune) bool {
	switch {
	case r == 0x200D, r == 0x20E3: // zero-width joiner, keycap
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r >= 0x1F000 && r <= 0x1FAFF: // emoticons, pictographs, flags
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // arrows, stars
		return true
	case r >= 0xE0020 && r <= 0xE007F: // tag sequences
		return true
	}
	return false
}
