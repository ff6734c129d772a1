package truncate

// WidthTable carries the widths resolved for a run into the render pass. A
// nil table means truncation is off.
type WidthTable struct {
	// Global is the corpus-wide width; only meaningful when HasGlobal is set.
	Global    int
	HasGlobal bool
	Overrides []Override
}

// NewWidthTable solves the global width for words and bundles it with the
// overrides.
func NewWidthTable(words WordSet, maxLength int, overrides []Override) *WidthTable {
	global, ok := FindMinWidth(words, maxLength)
	return &WidthTable{Global: global, HasGlobal: ok, Overrides: overrides}
}

// WidthFor returns the width to apply to path. A matching override always
// wins over the global width, present or not.
func (t *WidthTable) WidthFor(path string) (int, bool) {
	if t == nil {
		return 0, false
	}
	if w, ok := MatchOverride(path, t.Overrides); ok {
		return w, true
	}
	if t.HasGlobal {
		return t.Global, true
	}
	return 0, false
}
