package truncate

// Content cuts every word token in content to at most width characters and
// leaves everything between tokens untouched. Applying it twice with the same
// width is a no-op.
func Content(content string, width int) string {
	if width <= 0 {
		return content
	}
	return wordPattern.ReplaceAllStringFunc(content, func(word string) string {
		return Prefix(word, width)
	})
}
