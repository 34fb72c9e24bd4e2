// Package engine implements the matching algorithms behind typeahead
// searches: strict contiguous-substring matching, loose in-order
// subsequence matching scored by gap size, and prefix matching.
package engine

import "fmt"

// Engine names accepted by FromName and reported by Engine.Name.
const (
	NameStrict = "strict"
	NameLoose  = "loose"
	NamePrefix = "prefix"
)

// Options control how candidates are normalized before matching.
type Options struct {
	// Diacritics enables diacritic-insensitive matching ("é" matches "e").
	// Matching is always case-insensitive.
	Diacritics bool
}

// Engine decides whether a query matches a candidate string.
//
// Match reports the rune indexes of the candidate that participated in the
// match (used for highlighting) and a score. Lower scores are better; for
// strict and prefix engines the score is only informational and result
// order follows the original record order.
type Engine interface {
	Name() string
	Match(query, candidate string) (indexes []int, score int, ok bool)
}

// FromName returns the engine for a config name.
func FromName(name string, opts Options) (Engine, error) {
	switch name {
	case NameStrict, "":
		return NewStrict(opts), nil
	case NameLoose:
		return NewLoose(opts), nil
	case NamePrefix:
		return NewPrefix(opts), nil
	}
	return nil, fmt.Errorf("unknown engine %q", name)
}

// NewStrict returns the contiguous-substring engine. A candidate matches
// iff the query occurs in it as a contiguous run after folding.
func NewStrict(opts Options) Engine {
	return &strictEngine{fold: Folder(opts.Diacritics)}
}

// NewLoose returns the subsequence engine. A candidate matches iff every
// query rune occurs in it in order, not necessarily contiguously. The
// score is the leading offset plus the sum of gaps between consecutive
// matched runes, so tighter matches rank first.
func NewLoose(opts Options) Engine {
	return &looseEngine{fold: Folder(opts.Diacritics)}
}

// NewPrefix returns the prefix engine: a candidate matches iff it starts
// with the query after folding.
func NewPrefix(opts Options) Engine {
	return &prefixEngine{fold: Folder(opts.Diacritics)}
}

type strictEngine struct {
	fold FoldFunc
}

func (e *strictEngine) Name() string { return NameStrict }

func (e *strictEngine) Match(query, candidate string) ([]int, int, bool) {
	q := foldString(query, e.fold)
	if len(q) == 0 {
		return nil, 0, false
	}
	c := []rune(candidate)
	if len(c) < len(q) {
		return nil, 0, false
	}
	for start := 0; start+len(q) <= len(c); start++ {
		hit := true
		for i, qr := range q {
			if e.fold(c[start+i]) != qr {
				hit = false
				break
			}
		}
		if !hit {
			continue
		}
		indexes := make([]int, len(q))
		for i := range indexes {
			indexes[i] = start + i
		}
		return indexes, start, true
	}
	return nil, 0, false
}

type looseEngine struct {
	fold FoldFunc
}

func (e *looseEngine) Name() string { return NameLoose }

func (e *looseEngine) Match(query, candidate string) ([]int, int, bool) {
	q := foldString(query, e.fold)
	if len(q) == 0 {
		return nil, 0, false
	}
	indexes := make([]int, 0, len(q))
	score := 0
	last := -1
	next := 0
	for i, r := range []rune(candidate) {
		if e.fold(r) != q[next] {
			continue
		}
		if last < 0 {
			score += i
		} else {
			score += i - last - 1
		}
		indexes = append(indexes, i)
		last = i
		next++
		if next == len(q) {
			return indexes, score, true
		}
	}
	return nil, 0, false
}

type prefixEngine struct {
	fold FoldFunc
}

func (e *prefixEngine) Name() string { return NamePrefix }

func (e *prefixEngine) Match(query, candidate string) ([]int, int, bool) {
	q := foldString(query, e.fold)
	if len(q) == 0 {
		return nil, 0, false
	}
	c := []rune(candidate)
	if len(c) < len(q) {
		return nil, 0, false
	}
	for i, qr := range q {
		if e.fold(c[i]) != qr {
			return nil, 0, false
		}
	}
	indexes := make([]int, len(q))
	for i := range indexes {
		indexes[i] = i
	}
	return indexes, 0, true
}
