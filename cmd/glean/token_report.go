package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/agusx1211/glean/internal/render"
)

const defaultTokenModel = "gpt-4"

type tokenCounter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	tkm *tiktoken.Tiktoken
}

func newTiktokenCounter(model string) (tokenCounter, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get tokenizer for model %q: %w", model, err)
	}
	return tiktokenCounter{tkm: tkm}, nil
}

func (c tiktokenCounter) Count(text string) int {
	return len(c.tkm.Encode(text, nil, nil))
}

type tokenItem struct {
	Label  string
	Tokens int
	Files  int
}

func sortTokenItems(items []tokenItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Tokens == items[j].Tokens {
			return items[i].Label < items[j].Label
		}
		return items[i].Tokens > items[j].Tokens
	})
}

// buildTokenReport counts the tokens of the whole document and of each file
// section. The first line is always the total.
func buildTokenReport(doc string, spans []render.Span, model string, counter tokenCounter) string {
	total := counter.Count(doc)

	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", total)
	if len(spans) == 0 {
		return b.String()
	}

	files := make([]tokenItem, 0, len(spans))
	dirTokens := make(map[string]int)
	dirFiles := make(map[string]int)
	fileTokens := 0
	for _, s := range spans {
		if s.Start < 0 || s.End > len(doc) || s.Start > s.End {
			continue
		}
		n := counter.Count(doc[s.Start:s.End])
		fileTokens += n
		files = append(files, tokenItem{Label: s.Label, Tokens: n, Files: 1})
		for dir := filepath.Dir(s.Label); dir != "." && dir != string(filepath.Separator); dir = filepath.Dir(dir) {
			dirTokens[dir] += n
			dirFiles[dir]++
		}
	}
	nonFile := max(total-fileTokens, 0)

	fmt.Fprintf(&b, "\nmodel: %s\n", model)
	fmt.Fprintf(&b, "file tokens: %d\n", fileTokens)
	fmt.Fprintf(&b, "non-file tokens: %d\n", nonFile)

	dirs := make([]tokenItem, 0, len(dirTokens))
	for dir, n := range dirTokens {
		dirs = append(dirs, tokenItem{Label: formatDirPathForReport(dir), Tokens: n, Files: dirFiles[dir]})
	}
	sortTokenItems(dirs)
	if len(dirs) > 0 {
		fmt.Fprintf(&b, "\ntop directories (subtree):\n")
		writeTokenItems(&b, dirs, fileTokens, true)
	}

	sortTokenItems(files)
	fmt.Fprintf(&b, "\ntop files:\n")
	writeTokenItems(&b, files, fileTokens, false)
	return b.String()
}

const maxReportLines = 20

func writeTokenItems(b *strings.Builder, items []tokenItem, whole int, withFiles bool) {
	limit := min(len(items), maxReportLines)
	for _, it := range items[:limit] {
		if withFiles {
			fmt.Fprintf(b, "%d\t%s\t(%s, %d files)\n", it.Tokens, it.Label, formatPercent(it.Tokens, whole), it.Files)
			continue
		}
		fmt.Fprintf(b, "%d\t%s\t(%s)\n", it.Tokens, it.Label, formatPercent(it.Tokens, whole))
	}
	if len(items) > limit {
		fmt.Fprintf(b, "...\n")
	}
}

func formatPercent(part, whole int) string {
	if whole <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(whole))
}

func formatDirPathForReport(dir string) string {
	dir = filepath.ToSlash(dir)
	if strings.HasSuffix(dir, "/") {
		return dir
	}
	return dir + "/"
}
