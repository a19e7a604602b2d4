// Package storage provides JSON-based persistence for fixture snapshots.
//
// The CLI records every fixture it reports so later runs can show only the
// fixtures that are new since the last check. Snapshots are stored per team
// filter (snapshot_<team>.json) with a combined file when no team filter is
// set (snapshot.json). The default storage location is
// ~/.local/share/tv-fixtures/.
package storage
