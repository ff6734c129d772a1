package render

import (
	"path/filepath"
	"regexp"
	"strings"
)

var lineComment = regexp.MustCompile(`(?m)#.*$`)

// IsPython reports whether path gets Python minification.
func IsPython(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".py"
}

// MinifyPython drops `#` comments up to the end of the line, trailing
// whitespace, and blank lines. Indentation is kept. The comment strip is
// textual, so a `#` inside a string literal ends the line too.
func MinifyPython(content string) string {
	content = lineComment.ReplaceAllString(content, "")
	lines := strings.Split(content, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r\f\v")
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
