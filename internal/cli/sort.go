package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/tv-fixtures/internal/fixture"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate        SortOrder = "date"
	SortByCompetition SortOrder = "competition"
	SortByHome        SortOrder = "home"
)

func (s SortOrder) valid() bool {
	switch s {
	case SortByDate, SortByCompetition, SortByHome:
		return true
	}
	return false
}

// sortFixtures sorts fixtures in place. Ties keep their input order.
func sortFixtures(fixtures []*fixture.Fixture, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.SliceStable(fixtures, func(i, j int) bool {
			return compareByKickoff(fixtures[i], fixtures[j])
		})
	case SortByCompetition:
		sort.SliceStable(fixtures, func(i, j int) bool {
			ci := strings.ToLower(fixtures[i].CompetitionName())
			cj := strings.ToLower(fixtures[j].CompetitionName())
			if ci != cj {
				// Fixtures without a competition go last
				if ci == "" || cj == "" {
					return cj == ""
				}
				return ci < cj
			}
			return compareByKickoff(fixtures[i], fixtures[j])
		})
	case SortByHome:
		sort.SliceStable(fixtures, func(i, j int) bool {
			hi, hj := strings.ToLower(fixtures[i].Home), strings.ToLower(fixtures[j].Home)
			if hi != hj {
				return hi < hj
			}
			return compareByKickoff(fixtures[i], fixtures[j])
		})
	}
}

// compareByKickoff reports whether i kicks off before j. Unknown kickoffs
// sort after known ones.
func compareByKickoff(i, j *fixture.Fixture) bool {
	if i.HasKickoff() && j.HasKickoff() {
		return i.KickoffUTC.Before(*j.KickoffUTC)
	}
	return i.HasKickoff() && !j.HasKickoff()
}
