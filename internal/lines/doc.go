// Package lines holds the raw scraped line type and the line classifier.
//
// A page is reduced to an ordered sequence of trimmed text lines before any
// fixture extraction happens. Classify tags each line as a date header
// ("Friday, 5th December"), a kickoff time marker ("ST: 15:00"), a teams line
// ("Hull City v Middlesbrough") or a stop note (boilerplate, round numbers and
// competition headings that must never be read as channels).
package lines
