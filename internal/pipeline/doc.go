// Package pipeline runs the full extraction over a captured line sequence:
// parse fixture blocks (retrying over a flat-text capture when the primary
// capture yields nothing), resolve kickoff times, apply the competition
// filter and an optional team filter, and deduplicate.
//
// Run never fails. Every skipped line, filtered fixture and fallback attempt
// is recorded in Result.Diagnostics. Run keeps no state between calls and is
// safe for concurrent use.
package pipeline
