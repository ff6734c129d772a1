package render

import (
	"fmt"
	"strings"
)

// Span locates a labelled region of the document by byte offsets.
type Span struct {
	Label string
	Start int
	End   int
}

// Document accumulates output lines. Lines are joined with "\n"; the
// document is only read once assembly is finished.
type Document struct {
	b     strings.Builder
	lines int
	files int
	spans []Span
}

// AddLines appends raw lines.
func (d *Document) AddLines(lines ...string) {
	for _, line := range lines {
		if d.lines > 0 {
			d.b.WriteByte('\n')
		}
		d.b.WriteString(line)
		d.lines++
	}
}

// AddSection appends a rendered file and records where it landed.
func (d *Document) AddSection(s Section) {
	start := d.b.Len()
	if d.lines > 0 {
		start++
	}
	d.AddLines(s.Lines()...)
	d.spans = append(d.spans, Span{Label: s.Path, Start: start, End: d.b.Len()})
	d.files++
}

// Files returns how many sections were added.
func (d *Document) Files() int {
	return d.files
}

// Spans returns the byte ranges of every section, in order.
func (d *Document) Spans() []Span {
	return append([]Span(nil), d.spans...)
}

// String returns the assembled text.
func (d *Document) String() string {
	return d.b.String()
}

// Preamble describes the parameters echoed at the top of a verbose document.
type Preamble struct {
	Tool           string
	Truncate       bool
	Width          int
	HasWidth       bool
	HasOverrides   bool
	MaxLength      int
	MinifyPython   bool
	FollowSymlinks bool
	HasExclusions  bool
	Encoding       string
	Args           []string
}

// DefaultMaxLength is the max word length that the preamble treats as unset.
const DefaultMaxLength = 80

// Lines renders the preamble.
func (p Preamble) Lines() []string {
	var out []string
	out = append(out,
		"# Introduction",
		fmt.Sprintf("This output was created by %s. It gathers and processes files with optional transformations.", p.Tool),
		"",
	)

	if p.Truncate {
		out = append(out, "# Truncation Details")
		if p.HasWidth {
			out = append(out,
				fmt.Sprintf("- A minimal truncation length of %d was determined to preserve word uniqueness.", p.Width),
				fmt.Sprintf("- Words longer than %d characters may have been truncated in files without overrides.", p.Width),
			)
		} else {
			out = append(out,
				"- No suitable minimal truncation length was found within the allowed range, so no global width preserves word uniqueness.",
				"- Global truncation was not applied to files without overrides.",
			)
		}
		if p.HasOverrides {
			out = append(out, "- Truncation overrides were applied to specific file patterns.")
		}
		if p.MaxLength != DefaultMaxLength {
			out = append(out, fmt.Sprintf("- The maximum allowed word length for truncation was set to %d.", p.MaxLength))
		}
	}
	out = append(out, "")

	if p.MinifyPython {
		out = append(out, "# Python Minification", "- Python files were minified by removing comments and blank lines.", "")
	}
	if p.FollowSymlinks {
		out = append(out, "# Symlink Following", "- Symbolic links were followed during file traversal.", "")
	}
	if p.HasExclusions {
		out = append(out, "# Exclusions", "- Certain files or directories were excluded based on patterns.", "")
	}
	if p.Encoding != "" && !strings.EqualFold(p.Encoding, "utf-8") {
		out = append(out, "# Encoding", fmt.Sprintf("- Default encoding set to: %s", p.Encoding), "")
	}

	out = append(out,
		"# Script Run Parameters",
		"```",
		strings.Join(p.Args, " "),
		"```",
		"",
	)
	return out
}

// SummaryLines renders the trailing summary for a verbose document.
func SummaryLines(filesProcessed int) []string {
	return []string{
		"# Summary",
		fmt.Sprintf("- Number of files processed: %d", filesProcessed),
		"",
	}
}
