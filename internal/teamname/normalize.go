package teamname

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	suffixTokens = regexp.MustCompile(`\b(fc|afc|cf|sc|ac|as|ss|rc|rfc)\b`)
	punctuation  = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// foldDiacritics maps "Atlético" to "Atletico".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Normalize returns the canonical comparison form of a team name: lowercase,
// accents folded, club suffix tokens and punctuation removed, whitespace
// collapsed. Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	s := strings.TrimSpace(strings.ToLower(foldDiacritics(name)))
	s = suffixTokens.ReplaceAllString(s, " ")
	s = punctuation.ReplaceAllString(s, "")
	// Stripping punctuation can expose a token ("f.c." -> "fc").
	s = suffixTokens.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
