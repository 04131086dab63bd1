// Package textnorm holds the text cleanup shared by the canonicalizer and the
// domain model, so both sides agree on what two strings being "equal" means.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// trailing "1", "2" ... tokens left behind by the page counter of the renderer
var counterArtifact = regexp.MustCompile(`(?:\s*"\d+")+\s*$`)

// Clean replaces non-breaking spaces, composes the string to NFC and collapses
// every whitespace run into a single space.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// StripCounter removes trailing page-counter artifacts like `Hgr.II "1"`.
func StripCounter(s string) string {
	return counterArtifact.ReplaceAllString(s, "")
}

// Normalize is Clean applied after StripCounter. Titles and text nodes of a
// canonical document go through it.
func Normalize(s string) string {
	return Clean(StripCounter(Clean(s)))
}
