package source

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"

	"typeahead/pkg/engine"
)

// Index is a patricia-trie prefix index over a resolved record store. It
// serves as a candidate-narrowing fast path for prefix searches on large
// static lists; strict and loose searches always scan linearly.
type Index struct {
	trie *patricia.Trie
	fold engine.FoldFunc
}

// BuildIndex indexes the given keys of every record. Key values are folded
// with fold before insertion so lookups share the engine's normalization.
func BuildIndex(records []Record, keys []string, fold engine.FoldFunc) *Index {
	if len(keys) == 0 {
		keys = []string{""}
	}
	trie := patricia.NewTrie()
	for pos, rec := range records {
		for _, key := range keys {
			value := rec.Key(key)
			if value == "" {
				continue
			}
			folded := patricia.Prefix(engine.Fold(value, fold))
			if item := trie.Get(folded); item != nil {
				trie.Set(folded, append(item.([]int), pos))
			} else {
				trie.Insert(folded, []int{pos})
			}
		}
	}
	return &Index{trie: trie, fold: fold}
}

// Lookup returns the positions of records whose indexed value starts with
// prefix, in original store order.
func (ix *Index) Lookup(prefix string) []int {
	folded := patricia.Prefix(engine.Fold(prefix, ix.fold))

	var positions []int
	_ = ix.trie.VisitSubtree(folded, func(_ patricia.Prefix, item patricia.Item) error {
		positions = append(positions, item.([]int)...)
		return nil
	})

	sort.Ints(positions)
	return dedupeSorted(positions)
}

// dedupeSorted removes adjacent duplicates from a sorted position list; a
// record indexed under several keys may hit the same subtree repeatedly.
func dedupeSorted(positions []int) []int {
	if len(positions) < 2 {
		return positions
	}
	out := positions[:1]
	for _, p := range positions[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
