// Package fixture defines the resolved fixture record produced by the
// extraction pipeline.
//
// Every fixture carries a deterministic SHA1-based ID built from its
// normalised team names and kickoff, so the same match listed twice on a
// page, or scraped from two layouts, collapses to one record.
package fixture
