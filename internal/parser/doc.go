// Package parser groups classified lines into fixture blocks.
//
// A block is anchored by an "ST: HH:MM" time marker. The line before it must
// name the two teams, the line before that (when it is not a date header)
// names the competition, and the lines after it are channels until the next
// date header, time marker or teams line. Parse is a single forward pass over
// three states: SeekDate, SeekFixture and CollectChannels. All context lives
// in a per-call accumulator.
package parser
