package teamname

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Similarity scores two names from 0 to 100 after normalisation:
//   - 100 for equal names
//   - round(90 * shorter/longer) when one contains the other
//   - otherwise round(80 * matching/max(tokens)) over tokens longer than two
//     characters, where a token of a matches if some token of b equals it or
//     contains or is contained by it
//
// The token branch counts from a's side only, so the result is not symmetric.
// Use Score when argument order must not matter.
func Similarity(a, b string) int {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 100
	}

	la, lb := utf8.RuneCountInString(na), utf8.RuneCountInString(nb)
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		shorter, longer := la, lb
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return round(90 * float64(shorter) / float64(longer))
	}

	ta, tb := significantTokens(na), significantTokens(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	matching := 0
	for _, x := range ta {
		for _, y := range tb {
			if x == y || strings.Contains(x, y) || strings.Contains(y, x) {
				matching++
				break
			}
		}
	}

	return round(80 * float64(matching) / float64(max(len(ta), len(tb))))
}

// Score is the symmetric similarity: max(Similarity(a, b), Similarity(b, a)).
func Score(a, b string) int {
	return max(Similarity(a, b), Similarity(b, a))
}

// Matches reports whether the normalised filter is a substring or superstring
// of the normalised team name. A filter that normalises to nothing matches
// no team.
func Matches(filter, team string) bool {
	nf, nt := Normalize(filter), Normalize(team)
	if nf == "" || nt == "" {
		return false
	}
	return strings.Contains(nt, nf) || strings.Contains(nf, nt)
}

func significantTokens(s string) []string {
	var out []string
	for _, tok := range strings.Fields(s) {
		if utf8.RuneCountInString(tok) > 2 {
			out = append(out, tok)
		}
	}
	return out
}

func round(f float64) int {
	return int(math.Round(f))
}
