// Package filter decides which fixtures are kept by competition and gender
// taxonomy.
//
// A fixture is rejected when any women's-football term appears in its
// competition or team names, or when its competition names an excluded
// international or continental tournament. In UK-only mode the competition
// must additionally name one of the domestic competitions on the allow-list.
// Matching is case-insensitive substring matching over fixed keyword lists.
//
// Example usage:
//
//	f := filter.Default(true)
//	kept, rejected := f.Apply(fixtures)
//
//	// Widen to every men's competition that is not explicitly excluded
//	all := f.Clone()
//	all.UKOnly = false
package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/tv-fixtures/internal/fixture"
)

// DefaultWomenTerms mark women's football anywhere in a fixture.
var DefaultWomenTerms = []string{"women", "ladies", "wsl", "womens"}

// DefaultExcludedKeywords mark international and continental competitions.
var DefaultExcludedKeywords = []string{
	"champions league",
	"europa league",
	"conference league",
	"uefa",
	"la liga",
	"serie a",
	"bundesliga",
	"ligue 1",
	"eredivisie",
	"world cup",
	"international",
	"nations league",
	"euro 20",
	"copa",
	"mls",
}

// DefaultDomesticCompetitions is the UK-only allow-list.
var DefaultDomesticCompetitions = []string{
	"premier league",
	"championship",
	"league one",
	"league two",
	"fa cup",
	"efl",
	"carabao cup",
	"league cup",
	"scottish premiership",
	"scottish championship",
	"scottish league",
	"scottish cup",
	"spfl",
	"welsh premier",
	"cymru premier",
	"irish premiership",
	"nifl",
	"league of ireland",
	"national league",
}

// Filter holds the keyword taxonomies. The zero value keeps everything
// except when UKOnly is set, in which case an empty allow-list excludes
// everything.
type Filter struct {
	WomenTerms           []string `json:"women_terms,omitempty" yaml:"women_terms"`
	ExcludedKeywords     []string `json:"excluded_keywords,omitempty" yaml:"excluded_keywords"`
	DomesticCompetitions []string `json:"domestic_competitions,omitempty" yaml:"domestic_competitions"`
	UKOnly               bool     `json:"uk_only" yaml:"uk_only"`
}

// Default returns a filter populated with the built-in keyword lists.
func Default(ukOnly bool) *Filter {
	f := &Filter{
		WomenTerms:           DefaultWomenTerms,
		ExcludedKeywords:     DefaultExcludedKeywords,
		DomesticCompetitions: DefaultDomesticCompetitions,
		UKOnly:               ukOnly,
	}
	return f.Clone()
}

// Check reports whether f keeps the fixture and, when it does not, why.
func (f *Filter) Check(fx *fixture.Fixture) (bool, string) {
	competition := strings.ToLower(fx.CompetitionName())
	haystack := strings.Join([]string{competition, strings.ToLower(fx.Home), strings.ToLower(fx.Away)}, " ")

	if term, ok := containsAny(haystack, f.WomenTerms); ok {
		return false, fmt.Sprintf("women's football term %q", term)
	}

	if kw, ok := containsAny(competition, f.ExcludedKeywords); ok {
		return false, fmt.Sprintf("excluded competition keyword %q", kw)
	}

	if f.UKOnly {
		if _, ok := containsAny(competition, f.DomesticCompetitions); !ok {
			return false, "not a UK domestic competition"
		}
	}

	return true, ""
}

// Keep reports whether f keeps the fixture.
func (f *Filter) Keep(fx *fixture.Fixture) bool {
	ok, _ := f.Check(fx)
	return ok
}

// Rejection pairs a dropped fixture with the reason it was dropped.
type Rejection struct {
	Fixture *fixture.Fixture
	Reason  string
}

// Apply splits fixtures into kept and rejected, preserving order.
func (f *Filter) Apply(fixtures []*fixture.Fixture) ([]*fixture.Fixture, []Rejection) {
	kept := make([]*fixture.Fixture, 0, len(fixtures))
	var rejected []Rejection
	for _, fx := range fixtures {
		if ok, reason := f.Check(fx); ok {
			kept = append(kept, fx)
		} else {
			rejected = append(rejected, Rejection{Fixture: fx, Reason: reason})
		}
	}
	return kept, rejected
}

// String returns a human-readable description of the active criteria.
// Format: "UK only | 4 women's terms | 15 excluded keywords | 19 domestic competitions"
func (f *Filter) String() string {
	var parts []string

	if f.UKOnly {
		parts = append(parts, "UK only")
	} else {
		parts = append(parts, "All competitions")
	}

	parts = append(parts, fmt.Sprintf("%d women's terms", len(f.WomenTerms)))
	parts = append(parts, fmt.Sprintf("%d excluded keywords", len(f.ExcludedKeywords)))

	if f.UKOnly {
		parts = append(parts, fmt.Sprintf("%d domestic competitions", len(f.DomesticCompetitions)))
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	return &Filter{
		WomenTerms:           cloneStrings(f.WomenTerms),
		ExcludedKeywords:     cloneStrings(f.ExcludedKeywords),
		DomesticCompetitions: cloneStrings(f.DomesticCompetitions),
		UKOnly:               f.UKOnly,
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// containsAny returns the first non-empty term found in haystack.
// Terms are compared lowercase.
func containsAny(haystack string, terms []string) (string, bool) {
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if strings.Contains(haystack, term) {
			return term, true
		}
	}
	return "", false
}
