package truncate

// FindMinWidth returns the smallest width X in [1, upper] such that cutting
// every word to its first X characters keeps all words distinct, where upper
// is the shorter of maxLength and the longest word. ok is false when the set
// is empty or no width in range works.
//
// Candidates are tried one by one from 1 upward and each is checked against
// the whole set.
func FindMinWidth(words WordSet, maxLength int) (width int, ok bool) {
	if len(words) == 0 {
		return 0, false
	}

	longest := 0
	for w := range words {
		if n := runeLen(w); n > longest {
			longest = n
		}
	}
	upper := min(longest, maxLength)

	seen := make(map[string]struct{}, len(words))
	for x := 1; x <= upper; x++ {
		clear(seen)
		if distinctAt(words, x, seen) {
			return x, true
		}
	}
	return 0, false
}

// distinctAt reports whether no two words share the same width-character
// prefix. It stops at the first collision.
func distinctAt(words WordSet, width int, seen map[string]struct{}) bool {
	for w := range words {
		p := Prefix(w, width)
		if _, dup := seen[p]; dup {
			return false
		}
		seen[p] = struct{}{}
	}
	return true
}

// Collides reports whether two distinct words of the set share a prefix at
// width.
func Collides(words WordSet, width int) bool {
	return !distinctAt(words, width, make(map[string]struct{}, len(words)))
}
