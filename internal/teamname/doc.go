// Package teamname canonicalises football team names and scores how alike
// two names are, so that "Arsenal FC", "arsenal" and "Arsenal F.C." compare
// as the same club.
package teamname
