package textnorm

import "sort"

// WordSet is an immutable-by-convention set of lowercase words.
type WordSet map[string]struct{}

// NewWordSet builds a set from the given words. Words are stored as is; callers
// pass them already lowercased.
func NewWordSet(words ...string) WordSet {
	set := make(WordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func (s WordSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

func (s WordSet) Len() int {
	return len(s)
}

// Words returns the set content sorted alphabetically.
func (s WordSet) Words() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Intersect returns the words present in both sets, sorted.
func (s WordSet) Intersect(other WordSet) []string {
	var common []string
	for w := range s {
		if other.Has(w) {
			common = append(common, w)
		}
	}
	sort.Strings(common)
	return common
}
