package render

import (
	"strings"
	"testing"
)

func TestDocumentSections(t *testing.T) {
	var doc Document
	doc.AddSection(Section{Path: "a.txt", Language: "plaintext", Content: "one"})
	doc.AddSection(Section{Path: "b.go", Language: "go", Content: "two"})

	want := "## a.txt\n```plaintext\none\n```\n\n## b.go\n```go\ntwo\n```\n"
	if got := doc.String(); got != want {
		t.Fatalf("document = %q, want %q", got, want)
	}
	if doc.Files() != 2 {
		t.Fatalf("Files = %d", doc.Files())
	}

	spans := doc.Spans()
	if len(spans) != 2 {
		t.Fatalf("spans = %v", spans)
	}
	text := doc.String()
	if got := text[spans[0].Start:spans[0].End]; got != "## a.txt\n```plaintext\none\n```\n" {
		t.Fatalf("first span = %q", got)
	}
	if got := text[spans[1].Start:spans[1].End]; !strings.HasPrefix(got, "## b.go") {
		t.Fatalf("second span = %q", got)
	}
}

func TestPreambleLines(t *testing.T) {
	p := Preamble{
		Tool:          "glean",
		Truncate:      true,
		Width:         4,
		HasWidth:      true,
		HasOverrides:  true,
		MaxLength:     60,
		HasExclusions: true,
		Encoding:      "latin-1",
		Args:          []string{"-f", "*.py", "-t"},
	}
	text := strings.Join(p.Lines(), "\n")
	for _, want := range []string{
		"# Introduction",
		"minimal truncation length of 4",
		"overrides were applied",
		"set to 60",
		"# Exclusions",
		"Default encoding set to: latin-1",
		"-f *.py -t",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("preamble missing %q:\n%s", want, text)
		}
	}
	for _, absent := range []string{"# Python Minification", "# Symlink Following"} {
		if strings.Contains(text, absent) {
			t.Errorf("preamble should not contain %q", absent)
		}
	}

	p = Preamble{Tool: "glean", Truncate: true, MaxLength: DefaultMaxLength, Encoding: "UTF-8"}
	text = strings.Join(p.Lines(), "\n")
	if !strings.Contains(text, "No suitable minimal truncation length") {
		t.Errorf("missing no-width notice:\n%s", text)
	}
	if strings.Contains(text, "# Encoding") || strings.Contains(text, "set to 80") {
		t.Errorf("defaults should not be echoed:\n%s", text)
	}
}

func TestSummaryLines(t *testing.T) {
	got := strings.Join(SummaryLines(3), "\n")
	if got != "# Summary\n- Number of files processed: 3\n" {
		t.Fatalf("summary = %q", got)
	}
}
