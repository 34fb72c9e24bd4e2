package engine

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// FoldFunc normalizes a single rune before comparison.
type FoldFunc func(rune) rune

// Folder returns the fold function for the given options. Case folding is
// always applied; diacritic folding additionally strips combining marks so
// that "é" compares equal to "e".
//
// Folding is per-rune to keep a 1:1 index mapping between the candidate and
// its folded form: matched indexes always refer to the original string.
func Folder(diacritics bool) FoldFunc {
	if !diacritics {
		return unicode.ToLower
	}
	return func(r rune) rune {
		return unicode.ToLower(stripMarks(r))
	}
}

// stripMarks decomposes a rune and drops its combining marks, returning the
// base character. ASCII is passed through untouched.
func stripMarks(r rune) rune {
	if r < utf8.RuneSelf {
		return r
	}
	decomposed := norm.NFD.String(string(r))
	for _, d := range decomposed {
		if !unicode.Is(unicode.Mn, d) {
			return d
		}
	}
	return r
}

// foldString applies fold to every rune of s.
func foldString(s string, fold FoldFunc) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = fold(r)
	}
	return runes
}

// Fold returns s with fold applied to every rune.
func Fold(s string, fold FoldFunc) string {
	return string(foldString(s, fold))
}
