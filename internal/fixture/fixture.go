package fixture

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/tv-fixtures/internal/teamname"
)

// Fixture is a single televised match. Optional fields are nil when unknown.
type Fixture struct {
	ID           string     `json:"id"`
	Home         string     `json:"home"`
	Away         string     `json:"away"`
	KickoffUTC   *time.Time `json:"kickoffUtc"`
	KickoffLocal *string    `json:"kickoffLocal"`
	Competition  *string    `json:"competition"`
	Channels     []string   `json:"channels"`
	MatchScore   *int       `json:"matchScore"`
}

// GenerateID creates a deterministic ID from the normalised team names and
// kickoff instant. An unknown kickoff contributes an empty component; use
// GenerateUnresolvedID when the listing's raw date and time are at hand.
func GenerateID(home, away string, kickoff *time.Time) string {
	when := ""
	if kickoff != nil {
		when = kickoff.UTC().Format(time.RFC3339)
	}
	return hashID(home, away, when)
}

// GenerateUnresolvedID identifies a fixture whose kickoff could not be
// resolved by the date label and clock it was listed under, so two listings
// of the same pairing at different times stay distinct.
func GenerateUnresolvedID(home, away, dateLabel, clock string) string {
	label := strings.ToLower(strings.Join(strings.Fields(dateLabel), " "))
	return hashID(home, away, "unresolved:"+label+"@"+strings.TrimSpace(clock))
}

func hashID(home, away, when string) string {
	h := sha1.New()
	h.Write([]byte(teamname.Normalize(home) + "|" + teamname.Normalize(away) + "|" + when))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// New creates a Fixture with its ID populated and channels deduplicated.
func New(home, away string, kickoff *time.Time, local, competition *string, channels []string) *Fixture {
	return &Fixture{
		ID:           GenerateID(home, away, kickoff),
		Home:         home,
		Away:         away,
		KickoffUTC:   kickoff,
		KickoffLocal: local,
		Competition:  competition,
		Channels:     DedupeChannels(channels),
	}
}

// NewUnresolved creates a Fixture with an unknown kickoff, identified by the
// raw date label and clock it was listed under.
func NewUnresolved(home, away, dateLabel, clock string, competition *string, channels []string) *Fixture {
	f := New(home, away, nil, nil, competition, channels)
	f.ID = GenerateUnresolvedID(home, away, dateLabel, clock)
	return f
}

// CompetitionName returns the competition or "".
func (f *Fixture) CompetitionName() string {
	if f.Competition == nil {
		return ""
	}
	return *f.Competition
}

// HasKickoff reports whether the kickoff instant is known.
func (f *Fixture) HasKickoff() bool {
	return f.KickoffUTC != nil
}

// Title renders "Home v Away".
func (f *Fixture) Title() string {
	return f.Home + " v " + f.Away
}

// DedupeChannels removes exact duplicates, keeping first-seen order.
// It never returns nil.
func DedupeChannels(channels []string) []string {
	seen := make(map[string]bool, len(channels))
	out := make([]string, 0, len(channels))
	for _, ch := range channels {
		if ch == "" || seen[ch] {
			continue
		}
		seen[ch] = true
		out = append(out, ch)
	}
	return out
}

// Merge folds other's channels into f and fills f's missing fields from
// other. f wins wherever both are set.
func (f *Fixture) Merge(other *Fixture) {
	f.Channels = DedupeChannels(append(f.Channels, other.Channels...))
	if f.Competition == nil {
		f.Competition = other.Competition
	}
	if f.MatchScore == nil {
		f.MatchScore = other.MatchScore
	}
}

// Dedupe collapses fixtures sharing an ID into the first occurrence,
// merging channels. It returns the unique fixtures in first-seen order and
// the number of duplicates merged.
func Dedupe(fixtures []*Fixture) ([]*Fixture, int) {
	index := make(map[string]*Fixture, len(fixtures))
	unique := make([]*Fixture, 0, len(fixtures))
	merged := 0
	for _, f := range fixtures {
		if first, ok := index[f.ID]; ok {
			first.Merge(f)
			merged++
			continue
		}
		index[f.ID] = f
		unique = append(unique, f)
	}
	return unique, merged
}
