// Package truncate shortens word tokens to the narrowest width that keeps
// every distinct word in a corpus distinguishable.
package truncate

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// wordPattern matches a maximal run of letters, digits and underscores in any
// script.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// WordSet holds the distinct word tokens of a corpus.
type WordSet map[string]struct{}

// NewWordSet returns an empty set.
func NewWordSet() WordSet {
	return make(WordSet)
}

// Add inserts words into the set.
func (s WordSet) Add(words ...string) {
	for _, w := range words {
		s[w] = struct{}{}
	}
}

// AddContent extracts every word token from content and inserts it.
func (s WordSet) AddContent(content string) {
	s.Add(Words(content)...)
}

// Has reports whether w is in the set.
func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Len returns the number of distinct words.
func (s WordSet) Len() int {
	return len(s)
}

// Sorted returns the words in lexical order.
func (s WordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Words returns every word token in content, in order, duplicates included.
func Words(content string) []string {
	return wordPattern.FindAllString(content, -1)
}

// Prefix returns the first width characters of word, or word itself when it
// is not longer than width.
func Prefix(word string, width int) string {
	if width <= 0 {
		return ""
	}
	n := 0
	for i := range word {
		if n == width {
			return word[:i]
		}
		n++
	}
	return word
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
