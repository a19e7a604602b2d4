package lines

import "strings"

// RawLine is one line of scraped text. Index is its position in the capture.
type RawLine struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// FromText builds a line sequence from already-split strings, trimming each
// entry and dropping empty ones. Indexes are assigned after filtering.
func FromText(texts []string) []RawLine {
	out := make([]RawLine, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, RawLine{Text: t, Index: len(out)})
	}
	return out
}

// SplitText splits a whole-page text capture (innerText) on newlines.
func SplitText(text string) []RawLine {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return FromText(strings.Split(text, "\n"))
}
