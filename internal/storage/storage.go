package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"

	"github.com/pfrederiksen/tv-fixtures/internal/fixture"
	"github.com/pfrederiksen/tv-fixtures/internal/teamname"
)

const (
	// DefaultDataDir is where snapshots live unless overridden.
	DefaultDataDir = "~/.local/share/tv-fixtures"
	// Retention is how long a fixture stays in a snapshot after it was
	// last listed.
	Retention = 30 * 24 * time.Hour
)

// Entry is a fixture together with the last time a run listed it.
type Entry struct {
	Fixture  *fixture.Fixture `json:"fixture"`
	LastSeen time.Time        `json:"last_seen"`
}

// Snapshot is the set of fixtures reported so far.
type Snapshot struct {
	Fixtures  map[string]*Entry `json:"fixtures"` // keyed by Fixture.ID
	UpdatedAt string            `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{Fixtures: make(map[string]*Entry)}
}

// Diff returns the fixtures in current that previous has not seen, in
// current's order.
func Diff(previous *Snapshot, current []*fixture.Fixture) []*fixture.Fixture {
	if previous == nil {
		previous = NewSnapshot()
	}
	fresh := make([]*fixture.Fixture, 0)
	for _, fx := range current {
		if _, seen := previous.Fixtures[fx.ID]; !seen {
			fresh = append(fresh, fx)
		}
	}
	return fresh
}

// Record marks fixtures as seen at now and drops entries not listed within
// Retention.
func (s *Snapshot) Record(fixtures []*fixture.Fixture, now time.Time) {
	for _, fx := range fixtures {
		s.Fixtures[fx.ID] = &Entry{Fixture: fx, LastSeen: now.UTC()}
	}
	cutoff := now.Add(-Retention)
	for id, e := range s.Fixtures {
		if e == nil || e.LastSeen.Before(cutoff) {
			delete(s.Fixtures, id)
		}
	}
}

// Storage handles persistence of fixture snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "getting home directory")
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	return &Storage{dataDir: dataDir}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-z0-9]+`)

// snapshotPath returns the snapshot file for a team filter
func (s *Storage) snapshotPath(team string) string {
	key := strings.Trim(unsafeKeyChars.ReplaceAllString(teamname.Normalize(team), "-"), "-")
	if key == "" {
		return filepath.Join(s.dataDir, "snapshot.json")
	}
	return filepath.Join(s.dataDir, "snapshot_"+key+".json")
}

// LoadSnapshot loads the snapshot for team. A missing file is an empty
// snapshot.
func (s *Storage) LoadSnapshot(team string) (*Snapshot, error) {
	data, err := os.ReadFile(s.snapshotPath(team))
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, errors.Wrap(err, "reading snapshot")
	}

	var snapshot Snapshot
	if err := sonic.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrap(err, "parsing snapshot")
	}
	if snapshot.Fixtures == nil {
		snapshot.Fixtures = make(map[string]*Entry)
	}

	return &snapshot, nil
}

// SaveSnapshot writes the snapshot for team, replacing the file atomically.
func (s *Storage) SaveSnapshot(snapshot *Snapshot, team string, now time.Time) error {
	path := s.snapshotPath(team)
	snapshot.UpdatedAt = now.UTC().Format(time.RFC3339)

	data, err := sonic.ConfigStd.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding snapshot")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrap(err, "writing snapshot")
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(err, "replacing snapshot")
	}

	return nil
}
