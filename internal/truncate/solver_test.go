package truncate

import (
	"math/rand"
	"testing"
)

func setOf(words ...string) WordSet {
	s := NewWordSet()
	s.Add(words...)
	return s
}

func TestFindMinWidthCorpusExample(t *testing.T) {
	words := NewWordSet()
	words.AddContent("cat caterpillar")
	words.AddContent("dog dogma")

	if words.Len() != 4 {
		t.Fatalf("expected 4 distinct words, got %v", words.Sorted())
	}
	for x := 1; x <= 3; x++ {
		if !Collides(words, x) {
			t.Fatalf("width %d should collide", x)
		}
	}

	width, ok := FindMinWidth(words, 80)
	if !ok || width != 4 {
		t.Fatalf("FindMinWidth = %d, %v; want 4, true", width, ok)
	}
}

func TestFindMinWidthEdges(t *testing.T) {
	if _, ok := FindMinWidth(NewWordSet(), 80); ok {
		t.Fatalf("empty set must not yield a width")
	}
	if _, ok := FindMinWidth(setOf("a", "b"), 0); ok {
		t.Fatalf("max length 0 must not yield a width")
	}
	if w, ok := FindMinWidth(setOf("alpha", "beta"), 80); !ok || w != 1 {
		t.Fatalf("FindMinWidth = %d, %v; want 1, true", w, ok)
	}
	// "cat" is a prefix of "caterpillar", so 4 is required but 3 is the cap.
	if _, ok := FindMinWidth(setOf("cat", "caterpillar"), 3); ok {
		t.Fatalf("cap below the needed width must not yield a width")
	}
	// A single word is always distinct from itself.
	if w, ok := FindMinWidth(setOf("lonely"), 80); !ok || w != 1 {
		t.Fatalf("FindMinWidth = %d, %v; want 1, true", w, ok)
	}
}

func TestFindMinWidthCountsCharacters(t *testing.T) {
	words := setOf("über", "übel", "ünd")
	w, ok := FindMinWidth(words, 80)
	if !ok || w != 4 {
		t.Fatalf("FindMinWidth = %d, %v; want 4, true", w, ok)
	}
}

// Every returned width is injective and every smaller candidate collides; a
// miss means every candidate in range collides.
func TestFindMinWidthBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("abé_1")

	for iter := 0; iter < 300; iter++ {
		words := NewWordSet()
		for n := rng.Intn(12); n >= 0; n-- {
			length := 1 + rng.Intn(6)
			rs := make([]rune, length)
			for i := range rs {
				rs[i] = alphabet[rng.Intn(len(alphabet))]
			}
			words.Add(string(rs))
		}
		maxLength := 1 + rng.Intn(7)

		longest := 0
		for w := range words {
			longest = max(longest, runeLen(w))
		}
		upper := min(longest, maxLength)

		width, ok := FindMinWidth(words, maxLength)
		if ok {
			if width < 1 || width > upper {
				t.Fatalf("width %d out of range [1,%d] for %v", width, upper, words.Sorted())
			}
			if !injective(words, width) {
				t.Fatalf("width %d is not injective for %v", width, words.Sorted())
			}
			for x := 1; x < width; x++ {
				if injective(words, x) {
					t.Fatalf("smaller width %d already works for %v", x, words.Sorted())
				}
			}
			continue
		}
		for x := 1; x <= upper; x++ {
			if injective(words, x) {
				t.Fatalf("no width reported but %d works for %v", x, words.Sorted())
			}
		}
	}
}

func injective(words WordSet, width int) bool {
	seen := map[string]string{}
	for w := range words {
		p := Prefix(w, width)
		if other, ok := seen[p]; ok && other != w {
			return false
		}
		seen[p] = w
	}
	return true
}

func TestPrefix(t *testing.T) {
	cases := []struct {
		word  string
		width int
		want  string
	}{
		{"hello", 3, "hel"},
		{"hello", 5, "hello"},
		{"hello", 9, "hello"},
		{"héllo", 2, "hé"},
		{"日本語", 1, "日"},
		{"x", 0, ""},
	}
	for _, tc := range cases {
		if got := Prefix(tc.word, tc.width); got != tc.want {
			t.Errorf("Prefix(%q, %d) = %q, want %q", tc.word, tc.width, got, tc.want)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("def snake_case(x1): return 'naïve' + 日本 # ok")
	want := []string{"def", "snake_case", "x1", "return", "naïve", "日本", "ok"}
	if len(got) != len(want) {
		t.Fatalf("Words = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Words = %q, want %q", got, want)
		}
	}
}
